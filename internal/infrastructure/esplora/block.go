package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func (e *esplora) GetBlockHeight(ctx context.Context) (int64, error) {
	resp, err := e.get(ctx, "tip_height", "/blocks/tip/height")
	if err != nil {
		return -1, err
	}

	blockHeight, err := strconv.ParseInt(strings.TrimSpace(resp), 10, 64)
	if err != nil {
		return -1, err
	}

	return blockHeight, nil
}

func (e *esplora) GetFeeEstimates(
	ctx context.Context,
) (map[uint32]decimal.Decimal, error) {
	resp, err := e.get(ctx, "fee_estimates", "/fee-estimates")
	if err != nil {
		return nil, fmt.Errorf("error on retrieving fee estimates: %w", err)
	}

	raw := make(map[string]float64)
	if err := json.Unmarshal([]byte(resp), &raw); err != nil {
		return nil, fmt.Errorf("error on retrieving fee estimates: %w", err)
	}

	estimates := make(map[uint32]decimal.Decimal, len(raw))
	for target, rate := range raw {
		blocks, err := strconv.ParseUint(target, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid fee estimate target %s", target)
		}
		estimates[uint32(blocks)] = decimal.NewFromFloat(rate)
	}
	return estimates, nil
}
