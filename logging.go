package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/parlorhouse/parlor/config"
)

// initLogger configures the process-wide logger from configuration and
// should be called once on startup, after config.Load.
func initLogger() {
	level, err := logrus.ParseLevel(viper.GetString(config.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
		logrus.WithField("log_level", viper.GetString(config.LogLevel)).
			Warn("unrecognized log level, using info")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}
