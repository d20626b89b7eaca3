package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sf-metadata-coverage/internal/app"
)

type prefetchOptions struct {
	Count       int
	ReleasesURL string
}

func newPrefetchCommand() *cobra.Command {
	opts := prefetchOptions{}
	cmd := &cobra.Command{
		Use:   "prefetch",
		Short: "Download the coverage reports of the latest platform releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrefetch(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.Count, "count", app.DefaultPrefetchCount, "Number of latest releases to download")
	cmd.Flags().StringVar(&opts.ReleasesURL, "releases-url", "", "Release list endpoint")
	return cmd
}

func runPrefetch(ctx context.Context, cmd *cobra.Command, opts prefetchOptions) error {
	if flagChanged(cmd, "releases-url") {
		viper.Set("releases_url", opts.ReleasesURL)
	}
	service, err := newAppService(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()
	result, runErr := service.Prefetch(ctx, app.PrefetchRequest{
		Count: resolveInt(cmd, opts.Count, "prefetch_count", "count"),
	})
	if len(result.Outcomes) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), renderPrefetch(result.Outcomes))
	}
	return runErr
}
