package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/josephgoksu/RepoWing/internal/analyzer"
	"github.com/josephgoksu/RepoWing/internal/config"
)

// appConfig holds the resolved configuration for the running command.
var appConfig *config.Config

// InitConfig reads the config file, .env and REPOWING_* environment
// variables, then resolves and validates appConfig.
func InitConfig() error {
	// It's okay if .env doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(config.EnvPrefix)                   // e.g., REPOWING_GITHUB_TOKEN
	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // github.token -> GITHUB_TOKEN

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(config.ConfigName)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config %s: %w", viper.ConfigFileUsed(), err)
		}
		slog.Debug("no config file found, using defaults and environment")
	} else {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	config.SetDefaults(viper.GetViper(), analyzer.DefaultManifestPaths)

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}
