package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sweepr/sweepr/internal/core/domain"
)

func TestBalance(t *testing.T) {
	t.Parallel()

	utxos := []domain.Utxo{
		{TxID: "a", Value: 1000, Confirmed: true},
		{TxID: "b", Value: 500},
		{TxID: "c", Value: 250, Confirmed: true},
	}

	b := domain.NewBalance(utxos)
	require.Equal(t, int64(1250), b.Confirmed)
	require.Equal(t, int64(500), b.Unconfirmed)
	require.Equal(t, int64(1750), b.Total())

	confirmed := domain.ConfirmedUtxos(utxos)
	require.Len(t, confirmed, 2)
	require.Equal(t, "a", confirmed[0].TxID)
	require.Equal(t, "c", confirmed[1].TxID)
}

func TestFrontier(t *testing.T) {
	t.Parallel()

	f := domain.NewFrontier()
	require.Equal(t, -1, f.Last(domain.ExternalChain))
	require.Equal(t, -1, f.Last(domain.InternalChain))

	f.Use(domain.ExternalChain, 3)
	f.Use(domain.ExternalChain, 1)
	f.Use(domain.InternalChain, 0)
	require.Equal(t, 3, f.Last(domain.ExternalChain))
	require.Equal(t, 0, f.Last(domain.InternalChain))
}

func TestDefaultTemplates(t *testing.T) {
	t.Parallel()

	templates := domain.DefaultTemplates()
	require.Len(t, templates, 10)

	names := map[string]struct{}{}
	for _, tmpl := range templates {
		require.True(t, tmpl.ScriptType.IsValid(), tmpl.Name)
		require.Regexp(t, `^m(/\d+')+/$`, tmpl.Prefix)
		names[tmpl.Name] = struct{}{}
	}
	require.Len(t, names, len(templates))
}
