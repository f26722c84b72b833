package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WalletOutcome is the result of a sweep run for a single template.
type WalletOutcome struct {
	Template    string
	State       WalletState
	Balance     Balance
	TxID        string
	RawTx       string
	Amount      int64
	Fee         int64
	FeeRate     decimal.Decimal
	VirtualSize int64
	Err         error
}

// NewWalletOutcome returns an outcome in Created state.
func NewWalletOutcome(template string) *WalletOutcome {
	return &WalletOutcome{Template: template, State: WalletStateCreated}
}

// NewInvalidOutcome returns the outcome of a template that could not be
// turned into a wallet.
func NewInvalidOutcome(template string, err error) *WalletOutcome {
	return &WalletOutcome{Template: template, State: WalletStateInvalid, Err: err}
}

// Advance moves the outcome to the given state.
func (o *WalletOutcome) Advance(next WalletState) error {
	if !o.State.CanTransitionTo(next) {
		return fmt.Errorf(
			"%w: %s -> %s", ErrInvalidStateTransition, o.State, next,
		)
	}
	o.State = next
	return nil
}

// Fail moves the outcome to the given failure state and records the cause.
func (o *WalletOutcome) Fail(next WalletState, err error) error {
	if !next.IsFailure() {
		return fmt.Errorf("%w: %s is not a failure", ErrInvalidStateTransition, next)
	}
	if err := o.Advance(next); err != nil {
		return err
	}
	o.Err = err
	return nil
}

// Failed ...
func (o WalletOutcome) Failed() bool {
	return o.State.IsFailure()
}

// SweepReport collects the outcome of every template of a run, in catalog
// order.
type SweepReport struct {
	RunID       string
	Network     string
	Destination string
	DryRun      bool
	Outcomes    []WalletOutcome
}

// Failed returns whether at least one template did not complete, either
// because it could not be built, synced, signed or broadcast.
func (r SweepReport) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Failed() {
			return true
		}
	}
	return false
}

// Swept returns the outcomes of the templates whose funds were moved, or
// whose transaction is ready in dry run mode.
func (r SweepReport) Swept() []WalletOutcome {
	target := WalletStateBroadcast
	if r.DryRun {
		target = WalletStateSigned
	}
	swept := make([]WalletOutcome, 0)
	for _, o := range r.Outcomes {
		if o.State == target {
			swept = append(swept, o)
		}
	}
	return swept
}

// Failures ...
func (r SweepReport) Failures() []WalletOutcome {
	failures := make([]WalletOutcome, 0)
	for _, o := range r.Outcomes {
		if o.Failed() {
			failures = append(failures, o)
		}
	}
	return failures
}

// Total returns the amount sent and the fees paid by the swept templates.
func (r SweepReport) Total() (amount, fee int64) {
	for _, o := range r.Swept() {
		amount += o.Amount
		fee += o.Fee
	}
	return
}

// ScanReport collects the outcome of a discovery only run, in catalog
// order.
type ScanReport struct {
	RunID    string
	Network  string
	Outcomes []WalletOutcome
}

// Failed ...
func (r ScanReport) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Failed() {
			return true
		}
	}
	return false
}

// Funded returns the outcomes of the templates holding confirmed funds.
func (r ScanReport) Funded() []WalletOutcome {
	funded := make([]WalletOutcome, 0)
	for _, o := range r.Outcomes {
		if o.State == WalletStateFunded {
			funded = append(funded, o)
		}
	}
	return funded
}
