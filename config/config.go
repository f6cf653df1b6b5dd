// Package config loads server configuration through viper: defaults first,
// then an optional parlor.yaml, then PARLOR_* environment variables. Other
// packages read settings with viper.Get* at the call site.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	WebHost          = "web.host"
	WebPort          = "web.port"
	LogLevel         = "log_level"
	GameDefaultSeats = "game.default_seats"
)

// Load initializes viper. path names an explicit config file; when empty,
// a parlor.yaml in the working directory is used if present.
func Load(path string) error {
	viper.SetDefault(WebHost, "localhost")
	viper.SetDefault(WebPort, 8193)
	viper.SetDefault(LogLevel, "info")
	viper.SetDefault(GameDefaultSeats, 2)

	viper.SetEnvPrefix("PARLOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		return viper.ReadInConfig()
	}

	viper.SetConfigName("parlor")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}
