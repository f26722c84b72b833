package dbbadger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const metaKey = "meta"

// syncMeta records which run produced the stored utxo set.
type syncMeta struct {
	RunID     string
	TipHeight int64
	Frontier  domain.Frontier
	UpdatedAt int64
}

type stateStore struct {
	store *badgerhold.Store
	stop  chan struct{}
}

// NewStateStore opens (or creates if not exists) the state store in the
// given directory. An empty directory means an in-memory store.
func NewStateStore(dbDir string, logger badger.Logger) (ports.StateStore, error) {
	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	s := &stateStore{store, make(chan struct{})}
	if len(dbDir) > 0 {
		go s.runValueLogGC(30 * time.Minute)
	}
	return s, nil
}

func (s *stateStore) ApplySync(
	ctx context.Context, snapshot domain.SyncSnapshot,
) error {
	if len(snapshot.RunID) <= 0 {
		return fmt.Errorf("missing run id")
	}

	return s.store.Badger().Update(func(txn *badger.Txn) error {
		if err := s.store.TxDeleteMatching(
			txn, &domain.Utxo{}, &badgerhold.Query{},
		); err != nil {
			return err
		}

		for i := range snapshot.Utxos {
			u := snapshot.Utxos[i]
			if err := s.store.TxUpsert(txn, utxoKey(u.Key()), &u); err != nil {
				return err
			}
		}

		meta := syncMeta{
			RunID:     snapshot.RunID,
			TipHeight: snapshot.TipHeight,
			Frontier:  snapshot.Frontier,
			UpdatedAt: time.Now().Unix(),
		}
		return s.store.TxUpsert(txn, metaKey, &meta)
	})
}

func (s *stateStore) Balance(
	ctx context.Context, runID string,
) (domain.Balance, error) {
	utxos, err := s.ListUtxos(ctx, runID)
	if err != nil {
		return domain.Balance{}, err
	}
	return domain.NewBalance(utxos), nil
}

func (s *stateStore) ListUtxos(
	ctx context.Context, runID string,
) ([]domain.Utxo, error) {
	meta, err := s.getMeta()
	if err != nil {
		return nil, err
	}
	if meta == nil || meta.RunID != runID {
		return nil, domain.ErrStaleBalance
	}

	var utxos []domain.Utxo
	if err := s.store.Find(&utxos, nil); err != nil {
		return nil, err
	}

	sort.Slice(utxos, func(i, j int) bool {
		a, b := utxos[i], utxos[j]
		if a.Branch != b.Branch {
			return a.Branch < b.Branch
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		if a.TxID != b.TxID {
			return a.TxID < b.TxID
		}
		return a.VOut < b.VOut
	})
	return utxos, nil
}

func (s *stateStore) Frontier(ctx context.Context) (domain.Frontier, error) {
	meta, err := s.getMeta()
	if err != nil {
		return domain.Frontier{}, err
	}
	if meta == nil {
		return domain.NewFrontier(), nil
	}
	return meta.Frontier, nil
}

func (s *stateStore) Close() error {
	close(s.stop)
	return s.store.Close()
}

func (s *stateStore) getMeta() (*syncMeta, error) {
	var meta syncMeta
	if err := s.store.Get(metaKey, &meta); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &meta, nil
}

func (s *stateStore) runValueLogGC(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.store.Badger().RunValueLogGC(0.5); err != nil &&
				err != badger.ErrNoRewrite {
				log.Error(err)
			}
		case <-s.stop:
			return
		}
	}
}

func utxoKey(key domain.UtxoKey) string {
	return fmt.Sprintf("%s:%d", key.TxID, key.VOut)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
