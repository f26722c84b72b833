package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sweepr/sweepr/internal/core/domain"
)

func TestInputError(t *testing.T) {
	t.Parallel()

	cause := errors.New("unknown word")
	err := domain.NewInputError(domain.ErrInvalidMnemonic, cause)

	require.ErrorIs(t, err, domain.ErrInput)
	require.ErrorIs(t, err, domain.ErrInvalidMnemonic)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, domain.ErrInvalidAddress)
	require.Equal(t, "invalid mnemonic: unknown word", err.Error())
}

func TestWalletError(t *testing.T) {
	t.Parallel()

	cause := errors.New("dust output")
	err := error(domain.NewWalletError("bip84", domain.ErrTxBuild, cause))

	require.ErrorIs(t, err, domain.ErrTxBuild)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, domain.ErrInput)
	require.NotErrorIs(t, err, domain.ErrSign)
	require.Equal(t, "bip84: failed to build transaction: dust output", err.Error())

	template, ok := domain.TemplateOf(err)
	require.True(t, ok)
	require.Equal(t, "bip84", template)

	syncErr := error(domain.NewSyncError("bip44", cause))
	require.ErrorIs(t, syncErr, domain.ErrSync)
	template, ok = domain.TemplateOf(syncErr)
	require.True(t, ok)
	require.Equal(t, "bip44", template)

	_, ok = domain.TemplateOf(cause)
	require.False(t, ok)
}

func TestWalletErrorWrappingStage(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("%w: no estimate for 2 blocks target", domain.ErrFeeUnavailable)
	err := domain.NewWalletError("bip86", domain.ErrFeeUnavailable, cause)

	require.ErrorIs(t, err, domain.ErrFeeUnavailable)
	require.Equal(
		t, "bip86: fee rate unavailable: no estimate for 2 blocks target", err.Error(),
	)
}
