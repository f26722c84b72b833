package application_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sweepr/sweepr/internal/core/application"
	"github.com/sweepr/sweepr/internal/core/domain"
)

func TestFeeOracle(t *testing.T) {
	ctx := context.Background()
	estimates := map[uint32]decimal.Decimal{
		1:  decimal.NewFromFloat(20.5),
		2:  decimal.NewFromInt(10),
		6:  decimal.Zero,
		25: decimal.NewFromInt(-1),
	}

	chain := &mockChainClient{}
	chain.On("GetFeeEstimates", mock.Anything).Return(estimates, nil)
	oracle := application.NewFeeOracle(chain, 0, time.Second)

	target := func(n uint32) *uint32 { return &n }

	t.Run("valid", func(t *testing.T) {
		tests := []struct {
			name     string
			target   *uint32
			expected decimal.Decimal
		}{
			{"default target", nil, decimal.NewFromInt(10)},
			{"given target", target(1), decimal.NewFromFloat(20.5)},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				rate, err := oracle.FeeRate(ctx, tt.target)
				require.NoError(t, err)
				require.True(t, tt.expected.Equal(rate), rate.String())
			})
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, n := range []uint32{3, 6, 25} {
			_, err := oracle.FeeRate(ctx, target(n))
			require.ErrorIs(t, err, domain.ErrFeeUnavailable, n)
		}
	})

	t.Run("fetch error", func(t *testing.T) {
		chain := &mockChainClient{}
		chain.On("GetFeeEstimates", mock.Anything).Return(
			nil, fmt.Errorf("503 service unavailable"),
		)
		oracle := application.NewFeeOracle(chain, 0, time.Second)

		_, err := oracle.FeeRate(ctx, nil)
		require.ErrorIs(t, err, domain.ErrFeeUnavailable)
	})
}
