package main

import (
	"fmt"

	"github.com/sweepr/sweepr/internal/config"
	"github.com/sweepr/sweepr/internal/core/application"
	"github.com/urfave/cli/v2"
)

var scan = cli.Command{
	Name:      "scan",
	Usage:     "find the accounts of the seed holding funds without spending them",
	ArgsUsage: "<seed>",
	Flags: []cli.Flag{
		networkFlag,
		urlFlag,
		stopGapFlag,
		datadirFlag,
		persistFlag,
		resumeFlag,
	},
	Action: scanAction,
}

func scanAction(ctx *cli.Context) error {
	mnemonic, _, err := parseArgs(ctx, "scan", false)
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

	report, err := svc.Scan(runCtx, application.ScanRequest{
		Mnemonic: mnemonic,
		Network:  config.GetNetwork(),
	})
	if err != nil {
		return err
	}

	for _, o := range report.Outcomes {
		if o.Balance.Total() <= 0 {
			continue
		}
		fmt.Printf(
			"%s confirmed=%d unconfirmed=%d\n",
			o.Template, o.Balance.Confirmed, o.Balance.Unconfirmed,
		)
	}
	printFailures(report.Outcomes)

	if report.Failed() {
		return errIncomplete
	}
	return nil
}
