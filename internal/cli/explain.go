package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sf-metadata-coverage/internal/app"
)

type explainOptions struct {
	APIVersion string
	ProjectDir string
	JSON       bool
}

func newExplainCommand() *cobra.Command {
	opts := explainOptions{}
	cmd := &cobra.Command{
		Use:     "explain <type>",
		Short:   "Show the coverage report entry of one metadata type",
		Example: "  sf-metadata-coverage explain ApexClass\n  sf-metadata-coverage explain Settings:Account --api-version 64.0",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.APIVersion, "api-version", "", "API version of the coverage report (defaults to the project version)")
	cmd.Flags().StringVar(&opts.ProjectDir, "project-dir", ".", "Directory containing sfdx-project.json")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the report entry as JSON")
	return cmd
}

func runExplain(ctx context.Context, cmd *cobra.Command, typeName string, opts explainOptions) error {
	service, err := newAppService(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()
	result, err := service.Explain(ctx, app.ExplainRequest{
		TypeName:   typeName,
		ProjectDir: resolveString(cmd, opts.ProjectDir, "project_dir", "project-dir"),
		APIVersion: opts.APIVersion,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.JSON {
		return writeJSON(out, result)
	}
	if !result.Found {
		fmt.Fprintf(out, "%s is not in the coverage report for API %s.\n", result.Key, result.APIVersion)
		return nil
	}
	fmt.Fprintln(out, renderExplain(result))
	return nil
}
