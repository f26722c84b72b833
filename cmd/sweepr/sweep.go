package main

import (
	"fmt"

	"github.com/sweepr/sweepr/internal/config"
	"github.com/sweepr/sweepr/internal/core/application"
	"github.com/urfave/cli/v2"
)

var sweep = cli.Command{
	Name:      "sweep",
	Usage:     "move the confirmed funds of every account of the seed to the given address",
	ArgsUsage: "<seed> <address>",
	Flags: []cli.Flag{
		networkFlag,
		urlFlag,
		feeTargetFlag,
		stopGapFlag,
		dryRunFlag,
		datadirFlag,
		persistFlag,
		resumeFlag,
	},
	Action: sweepAction,
}

func sweepAction(ctx *cli.Context) error {
	mnemonic, address, err := parseArgs(ctx, "sweep", true)
	if err != nil {
		return err
	}
	if err := applyFlags(ctx); err != nil {
		return err
	}

	svc, err := getSweepService()
	if err != nil {
		return err
	}
	defer dumpStats()

	runCtx, cancel := runContext()
	defer cancel()

	req := application.SweepRequest{
		Mnemonic:    mnemonic,
		Destination: address,
		Network:     config.GetNetwork(),
		DryRun:      ctx.Bool(dryRunFlag.Name),
	}

	report, err := svc.Sweep(runCtx, req)
	if err != nil {
		return err
	}

	for _, o := range report.Swept() {
		if report.DryRun {
			fmt.Printf("%s %s %s\n", o.Template, o.TxID, o.RawTx)
			continue
		}
		fmt.Printf("%s %s\n", o.Template, o.TxID)
	}
	printFailures(report.Outcomes)

	if report.Failed() {
		return errIncomplete
	}
	return nil
}
