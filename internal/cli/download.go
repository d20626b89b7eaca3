package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sf-metadata-coverage/internal/app"
)

type downloadOptions struct {
	APIVersion string
	ProjectDir string
}

func newDownloadCommand() *cobra.Command {
	opts := downloadOptions{}
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the coverage report for an API version, replacing any cached copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDownload(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.APIVersion, "api-version", "", "API version to download (defaults to the project version)")
	cmd.Flags().StringVar(&opts.ProjectDir, "project-dir", ".", "Directory containing sfdx-project.json")
	return cmd
}

func runDownload(ctx context.Context, cmd *cobra.Command, opts downloadOptions) error {
	service, err := newAppService(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()
	result, err := service.Download(ctx, app.DownloadRequest{
		ProjectDir: resolveString(cmd, opts.ProjectDir, "project_dir", "project-dir"),
		APIVersion: opts.APIVersion,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded Metadata Coverage Report v%d (%d types, versions %d-%d)\n",
		result.Major, result.TypeCount, result.Versions.Min, result.Versions.Max)
	return nil
}
