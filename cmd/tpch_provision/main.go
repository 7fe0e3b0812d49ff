// tpch_provision makes sure a local TPC-H dataset exists for tests.
//
// It reads the scale factor from TPCH_SCALING_FACTOR and the target directory
// from TPCH_DATA_PATH. If the directory already exists nothing is done.
// Otherwise the dbgen generator is cloned, built and run, and the produced
// .tbl files are moved into the directory.
//
// The exit status is 0 on success, the exit status of the failing external
// command when one failed, and 1 for any other error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/comail/colog"
	"github.com/timescale/tpch-provision/pkg/runner"
)

func main() {
	colog.Register()
	colog.SetDefaultLevel(colog.LInfo)
	colog.SetMinLevel(colog.LInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(runner.NewExecRunner(os.Stdout, os.Stderr)).ExecuteContext(ctx)
	stop()

	if err != nil {
		log.Printf("error: %v", err)
		os.Exit(runner.ExitCode(err))
	}
}
