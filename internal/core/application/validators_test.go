package application

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
	"github.com/sweepr/sweepr/internal/core/domain"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon cactus"

func TestParseSeed(t *testing.T) {
	t.Run("should be deterministic", func(t *testing.T) {
		seed1, err := parseSeed(testMnemonic, "")
		require.NoError(t, err)
		seed2, err := parseSeed(testMnemonic, "")
		require.NoError(t, err)
		require.Equal(t, seed1, seed2)
	})

	t.Run("should accept 24 words", func(t *testing.T) {
		_, err := parseSeed(
			"abandon abandon abandon abandon abandon abandon abandon abandon "+
				"abandon abandon abandon abandon abandon abandon abandon abandon "+
				"abandon abandon abandon abandon abandon abandon abandon art", "",
		)
		require.NoError(t, err)
	})

	t.Run("should fail with input error", func(t *testing.T) {
		for _, m := range []string{
			"",
			"abandon abandon abandon",
			"abandon abandon abandon abandon abandon abandon " +
				"abandon abandon abandon abandon abandon abandon",
		} {
			_, err := parseSeed(m, "")
			require.ErrorIs(t, err, domain.ErrInput)
			require.ErrorIs(t, err, domain.ErrInvalidMnemonic)
		}
	})
}

func TestParseNetwork(t *testing.T) {
	net, err := parseNetwork("RegTest")
	require.NoError(t, err)
	require.Equal(t, &chaincfg.RegressionNetParams, net)

	_, err = parseNetwork("invalid")
	require.ErrorIs(t, err, domain.ErrInput)
	require.ErrorIs(t, err, domain.ErrInvalidNetwork)
}

func TestParseDestination(t *testing.T) {
	script, err := parseDestination(
		"bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", &chaincfg.MainNetParams,
	)
	require.NoError(t, err)
	require.Equal(
		t, "0014e8df018c7e326cc253faac7e46cdc51e68542c42", hex.EncodeToString(script),
	)

	_, err = parseDestination(
		"bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", &chaincfg.RegressionNetParams,
	)
	require.ErrorIs(t, err, domain.ErrInput)
	require.ErrorIs(t, err, domain.ErrInvalidAddress)
}
