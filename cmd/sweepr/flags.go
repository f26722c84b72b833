package main

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/sweepr/sweepr/internal/config"
	"github.com/urfave/cli/v2"
)

var (
	networkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "the bitcoin network: mainnet, testnet, signet or regtest",
	}
	urlFlag = &cli.StringFlag{
		Name:  "url",
		Usage: "the esplora api url, defaults to mempool.space for the network",
	}
	feeTargetFlag = &cli.UintFlag{
		Name:  "fee-target",
		Usage: "the confirmation target in blocks of the sweep transactions",
	}
	stopGapFlag = &cli.IntFlag{
		Name:  "stop-gap",
		Usage: "the number of consecutive unused addresses ending a scan",
	}
	dryRunFlag = &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "sign the sweep transactions and print them without broadcasting",
	}
	datadirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "the directory where wallet states are persisted",
		Value: btcutil.AppDataDir("sweepr", false),
	}
	persistFlag = &cli.BoolFlag{
		Name:  "persist",
		Usage: "store wallet states on disk instead of memory",
	}
	resumeFlag = &cli.BoolFlag{
		Name:  "resume",
		Usage: "scan at least up to the last used addresses found by previous runs, implies --persist",
	}
)

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	networkFlag.Name:   config.NetworkKey,
	urlFlag.Name:       config.ExplorerURLKey,
	feeTargetFlag.Name: config.FeeTargetKey,
	stopGapFlag.Name:   config.StopGapKey,
	datadirFlag.Name:   config.DatadirKey,
	persistFlag.Name:   config.PersistKey,
	resumeFlag.Name:    config.ResumeKey,
}

// applyFlags overrides the config with the flags explicitly set by the
// user and validates the result.
func applyFlags(ctx *cli.Context) error {
	for flag, key := range flagKeys {
		if ctx.IsSet(flag) {
			config.Set(key, ctx.Value(flag))
		}
	}
	return config.Validate()
}
