package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"sf-metadata-coverage/internal/app"
	"sf-metadata-coverage/internal/policies"
	"sf-metadata-coverage/internal/types"
)

const msgCoverageFailed = "some metadata types are not supported"

type checkOptions struct {
	SourceDirs []string
	Manifest   string
	Metadata   []string
	APIVersion string
	ProjectDir string
	OutputDir  string
	JSON       bool
	Channels   map[string]*bool
	Defaults   []string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{Channels: map[string]*bool{}}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that metadata types are supported by the selected channels",
		Example: "  sf-metadata-coverage check --source-dir force-app --metadata-api --source-tracking\n" +
			"  sf-metadata-coverage check --manifest manifest/package.xml --2gp-managed --json\n" +
			"  sf-metadata-coverage check --metadata ApexClass --metadata Settings:Account --changesets",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.SourceDirs, "source-dir", "d", nil, "Source directories to scan for metadata")
	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "x", "", "Path to a package.xml manifest")
	cmd.Flags().StringSliceVarP(&opts.Metadata, "metadata", "m", nil, "Metadata entries as Type or Type:Member")
	cmd.Flags().StringVar(&opts.APIVersion, "api-version", "", "API version of the coverage report (defaults to the manifest or project version)")
	cmd.Flags().StringVar(&opts.ProjectDir, "project-dir", ".", "Directory containing sfdx-project.json")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory to write coverage-result.json and coverage-summary.yaml")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the validation result as JSON")
	cmd.Flags().StringSliceVar(&opts.Defaults, "channels", nil, "Required channels by name, used when no channel flag is set")
	for _, entry := range types.ChannelFlags {
		value := false
		opts.Channels[entry.Flag] = &value
		cmd.Flags().BoolVar(&value, entry.Flag, false, "Require support by "+string(entry.Channel))
	}
	cmd.MarkFlagsOneRequired("source-dir", "manifest", "metadata")
	cmd.MarkFlagsMutuallyExclusive("source-dir", "manifest", "metadata")
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	selected := map[string]bool{}
	for flag, value := range opts.Channels {
		selected[flag] = *value
	}
	channels, err := policies.NewChannelPolicy(resolveStrings(cmd, opts.Defaults, "channels", "channels")).Resolve(selected)
	if err != nil {
		return err
	}
	if err := policies.RequireChannels(channels); err != nil {
		return err
	}
	manifest := strings.TrimSpace(opts.Manifest)
	if manifest != "" {
		if _, err := os.Stat(manifest); err != nil {
			return errInvalidArg("manifest file does not exist: " + manifest)
		}
	}

	service, err := newAppService(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = service.Close() }()
	result, err := service.Check(ctx, app.CheckRequest{
		SourceDirs:   opts.SourceDirs,
		ManifestPath: manifest,
		Metadata:     opts.Metadata,
		ProjectDir:   resolveString(cmd, opts.ProjectDir, "project_dir", "project-dir"),
		APIVersion:   opts.APIVersion,
		Channels:     channels,
		OutputDir:    opts.OutputDir,
	})
	if err != nil {
		return err
	}
	app.EmitHints(result.Hints)

	out := cmd.OutOrStdout()
	if opts.JSON {
		return writeJSON(out, result.Result)
	}
	if result.Result.Success {
		fmt.Fprintln(out, result.Result.Message)
		return nil
	}
	fmt.Fprintln(out, renderUnsupported(result.Result.Unsupported))
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s (%d unsupported for API %s)", msgCoverageFailed, len(result.Result.Unsupported), result.APIVersion))
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode JSON output").
			WithCause(err)
	}
	return nil
}

func errInvalidArg(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}
