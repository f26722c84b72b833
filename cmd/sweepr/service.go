package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dgraph-io/badger/v3"
	log "github.com/sirupsen/logrus"
	"github.com/sweepr/sweepr/internal/config"
	"github.com/sweepr/sweepr/internal/core/application"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/internal/infrastructure/esplora"
	dbbadger "github.com/sweepr/sweepr/internal/infrastructure/storage/badger"
	"github.com/sweepr/sweepr/pkg/stats"
	"github.com/urfave/cli/v2"
)

// errIncomplete is returned when at least one template did not complete.
// Failures are already printed, it only sets the exit code.
var errIncomplete = errors.New("run completed with failures")

func getSweepService() (application.SweepService, error) {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	if err := config.InitDatadir(); err != nil {
		return nil, err
	}

	chain, err := esplora.NewService(
		config.GetExplorerURL(),
		config.GetInt(config.RequestsPerSecondKey),
		config.GetCallTimeout(),
	)
	if err != nil {
		return nil, err
	}

	var dbLogger badger.Logger
	if log.GetLevel() >= log.DebugLevel {
		dbLogger = log.StandardLogger()
	}

	cfg := application.Config{
		StopGap:      config.GetInt(config.StopGapKey),
		Parallelism:  config.GetInt(config.ParallelismKey),
		FeeTarget:    uint32(config.GetInt(config.FeeTargetKey)),
		CallTimeout:  config.GetCallTimeout(),
		Resume:       config.GetBool(config.ResumeKey),
		ChainClient:  chain,
		StoreFactory: dbbadger.NewStateStoreFactory(config.GetStoreDir(), dbLogger),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.SweepService(), nil
}

// runContext returns a context canceled on interrupt.
func runContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
}

// parseArgs splits the positional args into the seed words and, if
// withAddress, the trailing destination address. The seed can be given
// either quoted or as separate words.
func parseArgs(
	ctx *cli.Context, command string, withAddress bool,
) (mnemonic, address string, err error) {
	args := ctx.Args().Slice()
	if withAddress {
		if len(args) < 2 {
			return "", "", &invalidUsageError{ctx, command}
		}
		address = args[len(args)-1]
		args = args[:len(args)-1]
	}
	if len(args) <= 0 {
		return "", "", &invalidUsageError{ctx, command}
	}
	return strings.Join(args, " "), address, nil
}

func dumpStats() {
	stats.PrintMemoryStatistics()

	path := config.GetString(config.StatsFileKey)
	if len(path) <= 0 {
		return
	}
	if err := stats.DumpPrometheusDefaults(path); err != nil {
		log.WithError(err).Warn("failed to dump stats")
	}
}

// printFailures reports every failed template on stderr.
func printFailures(outcomes []domain.WalletOutcome) {
	for _, o := range outcomes {
		if !o.Failed() {
			continue
		}
		log.WithField("template", o.Template).Errorf("%s: %v", o.State, o.Err)
	}
}
