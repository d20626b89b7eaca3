package cli

import (
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sf-metadata-coverage/internal/app"
)

func newAppService(cmd *cobra.Command) (app.Service, error) {
	cacheDir, err := homedir.Expand(strings.TrimSpace(viper.GetString("cache_dir")))
	if err != nil {
		return app.Service{}, errInvalidArg("invalid cache directory: " + err.Error())
	}
	return app.NewService(app.Config{
		CacheDir:       cacheDir,
		CacheBackend:   viper.GetString("cache_backend"),
		ReportURL:      viper.GetString("report_url"),
		ReleasesURL:    viper.GetString("releases_url"),
		HTTPTimeoutSec: viper.GetInt("http_timeout_sec"),
		HTTPRetries:    viper.GetInt("http_retries"),
		RefetchCorrupt: resolveBool(cmd, refetchCorruptFlag(cmd), "refetch_corrupt", "refetch-corrupt"),
		TypeRegistries: viper.GetStringSlice("type_registry"),
		Progress:       newProgress(),
	})
}

func refetchCorruptFlag(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	value, err := cmd.Flags().GetBool("refetch-corrupt")
	if err != nil {
		return false
	}
	return value
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
