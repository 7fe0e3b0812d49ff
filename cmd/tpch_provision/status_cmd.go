package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/timescale/tpch-provision/internal/utils"
	"github.com/timescale/tpch-provision/pkg/provision"
	"github.com/timescale/tpch-provision/pkg/tables"
)

func newStatusCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List the TPC-H table files present in $" + provision.EnvDataPath,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig(*cfgFile, nil)
			if err != nil {
				return err
			}
			if config.DataPath == "" {
				return &provision.MissingConfigurationError{Name: provision.EnvDataPath}
			}

			exists, err := utils.DirExists(config.DataPath)
			if err != nil {
				return err
			}
			if !exists {
				fmt.Fprintf(cmd.OutOrStdout(), "%s does not exist\n", config.DataPath)
				return nil
			}

			inv, err := tables.Scan(config.DataPath)
			if err != nil {
				return err
			}
			printInventory(cmd.OutOrStdout(), inv)
			return nil
		},
	}
}

func printInventory(w io.Writer, inv *tables.Inventory) {
	fmt.Fprintf(w, "%s\n", inv.Dir)
	for _, e := range inv.Tables {
		if e.Present {
			fmt.Fprintf(w, "  %-10s %s\n", e.Table, utils.HumanBytes(uint64(e.Size)))
		} else {
			fmt.Fprintf(w, "  %-10s missing\n", e.Table)
		}
	}
	for _, f := range inv.Extra {
		fmt.Fprintf(w, "  extra      %s\n", f)
	}
	fmt.Fprintf(w, "%d/%d tables, %s\n",
		len(inv.Tables)-len(inv.Missing()), len(inv.Tables), utils.HumanBytes(uint64(inv.TotalSize())))
}
