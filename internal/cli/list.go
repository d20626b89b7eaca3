package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type listOptions struct {
	JSON bool
}

func newListCommand() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached coverage reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print cached reports as JSON")
	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	service, err := newAppService(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()
	result, err := service.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.JSON {
		return writeJSON(out, result.Reports)
	}
	if len(result.Reports) == 0 {
		fmt.Fprintln(out, "No cached coverage reports.")
		return nil
	}
	fmt.Fprintln(out, renderCachedReports(result.Reports))
	return nil
}
