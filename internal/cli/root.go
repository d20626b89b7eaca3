package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sf-metadata-coverage/internal/adapters"
	"sf-metadata-coverage/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "SF_METADATA_COVERAGE"

const defaultCacheDir = "~/.cache/sf-metadata-coverage"

type RootConfig struct {
	ConfigFile   string
	LogLevel     string
	CacheDir     string
	CacheBackend string
	Refetch      bool
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "sf-metadata-coverage",
		Short:         "Check metadata types against the Metadata Coverage Report",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			logger := log.With().Str("run_id", uuid.NewString()).Str("command", cmd.Name()).Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.CacheDir, "cache-dir", defaultCacheDir, "Directory holding downloaded coverage reports")
	cmd.PersistentFlags().StringVar(&cfg.CacheBackend, "cache-backend", app.CacheBackendFile, "Report cache backend (file|sqlite)")
	cmd.PersistentFlags().BoolVar(&cfg.Refetch, "refetch-corrupt", false, "Download again when the cached report is corrupt")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("cache_dir", cmd.PersistentFlags().Lookup("cache-dir"))
	_ = viper.BindPFlag("cache_backend", cmd.PersistentFlags().Lookup("cache-backend"))

	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newDownloadCommand())
	cmd.AddCommand(newPrefetchCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newExplainCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetDefault("report_url", adapters.DefaultReportURL)
	viper.SetDefault("releases_url", adapters.DefaultReleasesURL)
	viper.SetDefault("http_timeout_sec", 60)
	viper.SetDefault("http_retries", 3)
	viper.SetDefault("refetch_corrupt", false)
	viper.SetDefault("project_dir", ".")
	viper.SetDefault("prefetch_count", app.DefaultPrefetchCount)

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("sf-metadata-coverage")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/sf-metadata-coverage")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// setupLogging writes logs to stderr so stdout stays parseable.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	message := errorMessage(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition:
		if strings.HasPrefix(message, msgCoverageFailed) {
			return 4
		}
		return 3
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
