package utils

import (
	"github.com/blagojts/viper"
	"github.com/spf13/pflag"
)

// SetupConfigFile defines the settings for the configuration file support.
// When cfgFile is empty, ./config.yaml is read if present. An explicitly
// given cfgFile must exist.
func SetupConfigFile(v *viper.Viper, cfgFile string, fs *pflag.FlagSet) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Ignore error if config file not found.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return err
		}
	}

	return nil
}
