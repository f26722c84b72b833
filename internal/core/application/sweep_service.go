package application

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/pkg/stats"
	"github.com/sweepr/sweepr/pkg/wallet"
	"golang.org/x/sync/errgroup"
)

// SweepService moves all the funds of a seed to a single address.
type SweepService interface {
	// Sweep syncs the wallets of every template, then builds, signs and
	// broadcasts one drain transaction for each of those holding confirmed
	// funds. Only input errors are returned, every other failure is
	// reported in the outcome of the template it belongs to.
	Sweep(ctx context.Context, req SweepRequest) (*domain.SweepReport, error)
	// Scan syncs the wallets of every template and reports their balances.
	Scan(ctx context.Context, req ScanRequest) (*domain.ScanReport, error)
	Templates() []domain.Template
}

type sweepService struct {
	catalog     PathCatalog
	factory     *WalletFactory
	syncer      *SyncCoordinator
	oracle      *FeeOracle
	builder     *SweepBuilder
	broadcaster *Broadcaster
	resume      bool
}

func NewSweepService(cfg Config) (SweepService, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &sweepService{
		catalog: NewPathCatalog(cfg.Templates),
		factory: NewWalletFactory(cfg.StoreFactory, cfg.Parallelism),
		syncer: NewSyncCoordinator(
			cfg.ChainClient, cfg.StopGap, cfg.CallTimeout, cfg.Resume,
		),
		oracle:      NewFeeOracle(cfg.ChainClient, cfg.FeeTarget, cfg.CallTimeout),
		builder:     NewSweepBuilder(),
		broadcaster: NewBroadcaster(cfg.ChainClient, cfg.CallTimeout),
		resume:      cfg.Resume,
	}, nil
}

func (s *sweepService) Templates() []domain.Template {
	return s.catalog.Templates()
}

func (s *sweepService) Sweep(
	ctx context.Context, req SweepRequest,
) (*domain.SweepReport, error) {
	seed, err := parseSeed(req.Mnemonic, req.Passphrase)
	if err != nil {
		return nil, err
	}
	net, err := parseNetwork(req.Network)
	if err != nil {
		return nil, err
	}
	destination, err := parseDestination(req.Destination, net)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger := log.WithField("run", runID)
	logger.Infof(
		"sweeping %d templates on %s to %s",
		len(s.catalog.templates), wallet.NetworkName(net), req.Destination,
	)

	run := s.newRun(seed, net, runID)
	defer run.close()

	var (
		feeRate decimal.Decimal
		feeErr  error
		results []SyncResult
	)
	// Fee estimates are fetched while wallets sync.
	g := new(errgroup.Group)
	if len(run.wallets) > 0 {
		g.Go(func() error {
			feeRate, feeErr = s.oracle.FeeRate(ctx, req.FeeTarget)
			return nil
		})
	}
	g.Go(func() error {
		results = s.syncer.SyncAll(ctx, runID, run.wallets)
		return nil
	})
	_ = g.Wait()

	funded := run.applySync(results)
	if len(funded) > 0 {
		if feeErr != nil {
			logger.WithError(feeErr).Warn("fee rate not available")
		} else {
			logger.Debugf("using fee rate of %s sat/vbyte", feeRate)
		}
	}

	g = new(errgroup.Group)
	for _, w := range funded {
		w := w
		outcome := run.outcome(w.Template.Name)
		g.Go(func() error {
			s.sweepWallet(ctx, w, destination, feeRate, feeErr, req.DryRun, outcome)
			return nil
		})
	}
	_ = g.Wait()

	report := &domain.SweepReport{
		RunID:       runID,
		Network:     wallet.NetworkName(net),
		Destination: req.Destination,
		DryRun:      req.DryRun,
		Outcomes:    run.report(),
	}

	amount, fee := report.Total()
	logger.Infof(
		"swept %d of %d funded templates, sent %d sats paying %d sats of fees",
		len(report.Swept()), len(funded), amount, fee,
	)
	return report, nil
}

func (s *sweepService) Scan(
	ctx context.Context, req ScanRequest,
) (*domain.ScanReport, error) {
	seed, err := parseSeed(req.Mnemonic, req.Passphrase)
	if err != nil {
		return nil, err
	}
	net, err := parseNetwork(req.Network)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	run := s.newRun(seed, net, runID)
	defer run.close()

	results := s.syncer.SyncAll(ctx, runID, run.wallets)
	funded := run.applySync(results)

	log.WithField("run", runID).Infof(
		"found %d funded templates out of %d", len(funded), len(run.outcomes),
	)

	return &domain.ScanReport{
		RunID:    runID,
		Network:  wallet.NetworkName(net),
		Outcomes: run.report(),
	}, nil
}

func (s *sweepService) sweepWallet(
	ctx context.Context, w FundedWallet, destination []byte,
	feeRate decimal.Decimal, feeErr error, dryRun bool,
	outcome *domain.WalletOutcome,
) {
	name := w.Template.Name
	logger := log.WithField("template", name)

	if feeErr != nil {
		fail(outcome, domain.WalletStateBuildFailed, domain.NewWalletError(
			name, domain.ErrFeeUnavailable, feeErr,
		))
		return
	}

	tx, err := s.builder.BuildAndSign(w, destination, feeRate)
	if err != nil {
		logger.WithError(err).Warn("failed to build sweep transaction")
		fail(outcome, domain.WalletStateBuildFailed, err)
		return
	}

	txHex, _ := tx.Hex()
	outcome.TxID = tx.TxID()
	outcome.RawTx = txHex
	outcome.Amount = tx.Amount
	outcome.Fee = tx.Fee
	outcome.FeeRate = tx.FeeRate
	outcome.VirtualSize = tx.VirtualSize
	advance(outcome, domain.WalletStateSigned)

	logger.Debugf(
		"signed tx %s spending %d utxos: %d sats, fee %d sats (%d vbytes)",
		outcome.TxID, len(w.Utxos), tx.Amount, tx.Fee, tx.VirtualSize,
	)
	if dryRun {
		return
	}

	res := s.broadcaster.Broadcast(ctx, tx)
	if res.Err != nil {
		logger.WithError(res.Err).Warn("failed to broadcast sweep transaction")
		fail(outcome, domain.WalletStateBroadcastFailed, res.Err)
		return
	}
	outcome.TxID = res.TxID
	advance(outcome, domain.WalletStateBroadcast)
	logger.Infof("broadcasted tx %s", res.TxID)
}

// sweepRun tracks the wallets and outcomes of a single run. Outcomes are
// in catalog order, wallets only include the templates that could be
// built.
type sweepRun struct {
	outcomes []*domain.WalletOutcome
	byName   map[string]*domain.WalletOutcome
	wallets  []*CandidateWallet
}

func (s *sweepService) newRun(
	seed []byte, net *chaincfg.Params, runID string,
) *sweepRun {
	templates := s.catalog.Templates()
	wallets, errs := s.factory.CreateAll(seed, net, templates, runID, s.resume)

	run := &sweepRun{
		outcomes: make([]*domain.WalletOutcome, 0, len(templates)),
		byName:   make(map[string]*domain.WalletOutcome),
		wallets:  make([]*CandidateWallet, 0, len(templates)),
	}
	for i, t := range templates {
		var outcome *domain.WalletOutcome
		if errs[i] != nil {
			outcome = domain.NewInvalidOutcome(t.Name, errs[i])
		} else {
			outcome = domain.NewWalletOutcome(t.Name)
			run.wallets = append(run.wallets, wallets[i])
		}
		run.outcomes = append(run.outcomes, outcome)
		run.byName[t.Name] = outcome
	}
	return run
}

func (r *sweepRun) outcome(template string) *domain.WalletOutcome {
	return r.byName[template]
}

// applySync moves every synced wallet to its next state and returns the
// funded ones.
func (r *sweepRun) applySync(results []SyncResult) []FundedWallet {
	funded := FilterFunded(results)
	isFunded := make(map[string]bool, len(funded))
	for _, w := range funded {
		isFunded[w.Template.Name] = true
	}

	for _, res := range results {
		outcome := r.outcome(res.Wallet.Template.Name)
		if res.Err != nil {
			fail(outcome, domain.WalletStateSyncFailed, res.Err)
			continue
		}
		outcome.Balance = res.Balance
		advance(outcome, domain.WalletStateSynced)
		if isFunded[res.Wallet.Template.Name] {
			advance(outcome, domain.WalletStateFunded)
		} else {
			advance(outcome, domain.WalletStateEmpty)
		}
	}
	return funded
}

func (r *sweepRun) report() []domain.WalletOutcome {
	outcomes := make([]domain.WalletOutcome, 0, len(r.outcomes))
	for _, o := range r.outcomes {
		stats.RecordWalletOutcome(o.State.String())
		outcomes = append(outcomes, *o)
	}
	return outcomes
}

func (r *sweepRun) close() {
	for _, w := range r.wallets {
		if err := w.Close(); err != nil {
			log.WithField("template", w.Template.Name).WithError(err).Warn(
				"failed to close state store",
			)
		}
	}
}

func advance(outcome *domain.WalletOutcome, state domain.WalletState) {
	if err := outcome.Advance(state); err != nil {
		log.WithField("template", outcome.Template).WithError(err).Error(
			"unexpected wallet state",
		)
	}
}

func fail(outcome *domain.WalletOutcome, state domain.WalletState, err error) {
	if ferr := outcome.Fail(state, err); ferr != nil {
		log.WithField("template", outcome.Template).WithError(ferr).Error(
			"unexpected wallet state",
		)
	}
}
