package main

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"
	"github.com/timescale/tpch-provision/pkg/provision"
	"gopkg.in/yaml.v2"
)

const (
	outputFlag    = "output"
	writeConfigTo = "./config.yaml"
)

var configHeader = "# Generator settings for tpch_provision.\n" +
	"# " + provision.EnvScalingFactor + " and " + provision.EnvDataPath +
	" are read from the environment and may also be set here as\n" +
	"# scaling-factor and data-path.\n"

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate example config yaml file and save it to " + writeConfigTo,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := cmd.Flags().GetString(outputFlag)
			if err != nil {
				return err
			}
			if err := writeExampleConfig(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote example config to: %s\n", out)
			return nil
		},
	}
	cmd.Flags().String(outputFlag, writeConfigTo, "Where to write the example config")
	return cmd
}

func exampleConfig() ([]byte, error) {
	config := provision.Config{Generator: provision.DefaultGeneratorConfig()}
	body, err := yaml.Marshal(&config)
	if err != nil {
		return nil, fmt.Errorf("could not convert example config to yaml: %v", err)
	}
	return append([]byte(configHeader), body...), nil
}

func writeExampleConfig(path string) error {
	content, err := exampleConfig()
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("could not write sample config to file %s: %v", path, err)
	}
	return nil
}
