package application

import "github.com/sweepr/sweepr/internal/core/domain"

// FilterFunded keeps the wallets that synced successfully and hold
// confirmed funds. Unconfirmed funds are never swept since they could
// still be double spent.
func FilterFunded(results []SyncResult) []FundedWallet {
	funded := make([]FundedWallet, 0, len(results))
	for _, r := range results {
		if r.Err != nil || r.Balance.Confirmed <= 0 {
			continue
		}
		funded = append(funded, FundedWallet{
			CandidateWallet: r.Wallet,
			Balance:         r.Balance,
			Utxos:           domain.ConfirmedUtxos(r.Utxos),
		})
	}
	return funded
}
