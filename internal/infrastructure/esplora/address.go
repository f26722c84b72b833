package esplora

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sweepr/sweepr/internal/core/ports"
)

func (e *esplora) GetAddressStats(
	ctx context.Context, address string,
) (ports.AddressStats, error) {
	resp, err := e.get(ctx, "address", fmt.Sprintf("/address/%s", address))
	if err != nil {
		return nil, fmt.Errorf("error on retrieving address stats: %w", err)
	}

	var stats addressStats
	if err := json.Unmarshal([]byte(resp), &stats); err != nil {
		return nil, fmt.Errorf("error on retrieving address stats: %w", err)
	}
	return stats, nil
}

func (e *esplora) GetAddressUtxos(
	ctx context.Context, address string,
) ([]ports.Utxo, error) {
	resp, err := e.get(
		ctx, "address_utxo", fmt.Sprintf("/address/%s/utxo", address),
	)
	if err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %w", err)
	}

	var outs []utxo
	if err := json.Unmarshal([]byte(resp), &outs); err != nil {
		return nil, fmt.Errorf("error on retrieving utxos: %w", err)
	}

	unspents := make([]ports.Utxo, 0, len(outs))
	for _, u := range outs {
		unspents = append(unspents, u)
	}
	return unspents, nil
}
