package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/internal/core/ports"
)

// FeeOracle resolves the fee rate to pay for a confirmation target.
type FeeOracle struct {
	chain         ports.ChainClient
	defaultTarget uint32
	callTimeout   time.Duration
}

func NewFeeOracle(
	chain ports.ChainClient, defaultTarget uint32, callTimeout time.Duration,
) *FeeOracle {
	if defaultTarget == 0 {
		defaultTarget = domain.DefaultFeeTarget
	}
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &FeeOracle{chain, defaultTarget, callTimeout}
}

// FeeRate returns the fee rate, in sat/vbyte, estimated for the given
// target, or for the default one if nil. No rate is made up if the
// provider does not return one for the target.
func (o *FeeOracle) FeeRate(
	ctx context.Context, target *uint32,
) (decimal.Decimal, error) {
	resolved := o.defaultTarget
	if target != nil {
		resolved = *target
	}

	ctx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	estimates, err := o.chain.GetFeeEstimates(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrFeeUnavailable, err)
	}

	rate, ok := estimates[resolved]
	if !ok {
		return decimal.Zero, fmt.Errorf(
			"%w: no estimate for %d blocks target", domain.ErrFeeUnavailable, resolved,
		)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf(
			"%w: estimate for %d blocks target is %s",
			domain.ErrFeeUnavailable, resolved, rate,
		)
	}
	return rate, nil
}
