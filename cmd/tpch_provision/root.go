package main

import (
	"github.com/comail/colog"
	"github.com/spf13/cobra"
	"github.com/timescale/tpch-provision/pkg/provision"
	"github.com/timescale/tpch-provision/pkg/runner"
)

const (
	configFlag = "config"
	debugFlag  = "debug"
)

func newRootCmd(r runner.Runner) *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "tpch_provision",
		Short: "Generate a TPC-H dataset into $" + provision.EnvDataPath + " unless it already exists",
		Long: "Generate a TPC-H dataset with dbgen.\n\n" +
			"The scale factor is read from $" + provision.EnvScalingFactor +
			" and the target directory from $" + provision.EnvDataPath + ". Both are required.\n" +
			"If the target directory exists, nothing is done.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setLogLevel,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			_, err = provision.New(config, r).Run(cmd.Context())
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, configFlag, "", "config file (default is ./config.yaml)")
	cmd.PersistentFlags().Bool(debugFlag, false, "Print debug output")
	(&provision.GeneratorConfig{}).AddToFlagSet(cmd.Flags())

	cmd.AddCommand(
		newConfigCmd(),
		newStatusCmd(&cfgFile),
	)
	return cmd
}

func setLogLevel(cmd *cobra.Command, _ []string) error {
	debug, err := cmd.Flags().GetBool(debugFlag)
	if err != nil {
		return err
	}
	if debug {
		colog.SetMinLevel(colog.LDebug)
	}
	return nil
}
