package main

import (
	"log"

	"github.com/blagojts/viper"
	"github.com/spf13/pflag"
	"github.com/timescale/tpch-provision/internal/utils"
	"github.com/timescale/tpch-provision/pkg/provision"
)

// loadConfig reads the provisioning config from the environment, the
// optional config file and the command line flags in fs.
func loadConfig(cfgFile string, fs *pflag.FlagSet) (*provision.Config, error) {
	v := viper.New()
	if err := provision.BindEnv(v); err != nil {
		return nil, err
	}
	if err := utils.SetupConfigFile(v, cfgFile, fs); err != nil {
		return nil, err
	}
	if f := v.ConfigFileUsed(); f != "" {
		log.Printf("info: using config file %s", f)
	}

	config := &provision.Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}
	return config, nil
}
