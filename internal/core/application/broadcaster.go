package application

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/internal/core/ports"
)

// Broadcaster relays sweep transactions to the network.
type Broadcaster struct {
	chain       ports.ChainClient
	callTimeout time.Duration
}

func NewBroadcaster(chain ports.ChainClient, callTimeout time.Duration) *Broadcaster {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &Broadcaster{chain, callTimeout}
}

// Broadcast submits the transaction once. A rejection is returned as is,
// it is never retried.
func (b *Broadcaster) Broadcast(
	ctx context.Context, tx *SweepTransaction,
) BroadcastOutcome {
	txHex, err := tx.Hex()
	if err != nil {
		return BroadcastOutcome{
			Err: domain.NewWalletError(tx.Template, domain.ErrBroadcast, err),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, b.callTimeout)
	defer cancel()

	txid, err := b.chain.BroadcastTransaction(ctx, txHex)
	if err != nil {
		return BroadcastOutcome{
			Err: domain.NewWalletError(tx.Template, domain.ErrBroadcast, err),
		}
	}

	if expected := tx.TxID(); txid != expected {
		log.WithField("template", tx.Template).Warnf(
			"provider returned txid %s, expected %s", txid, expected,
		)
		if len(txid) <= 0 {
			txid = expected
		}
	}
	return BroadcastOutcome{TxID: txid}
}
