package application

import (
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/internal/core/ports"
	"github.com/sweepr/sweepr/pkg/wallet"
	"golang.org/x/sync/errgroup"
)

// WalletFactory turns templates into candidate wallets.
type WalletFactory struct {
	storeFactory ports.StateStoreFactory
	parallelism  int
}

func NewWalletFactory(
	storeFactory ports.StateStoreFactory, parallelism int,
) *WalletFactory {
	if parallelism <= 0 {
		parallelism = domain.DefaultParallelism
	}
	return &WalletFactory{storeFactory, parallelism}
}

// Create builds the receive and change descriptors of the template and
// opens the wallet state store. It never touches the network.
func (f *WalletFactory) Create(
	seed []byte, net *chaincfg.Params,
	template domain.Template, paths domain.PathPair, scope ports.StoreScope,
) (*CandidateWallet, error) {
	// Every wallet gets its own master key so that no key is ever shared
	// between goroutines.
	masterKey, err := wallet.NewMasterKey(seed, net)
	if err != nil {
		return nil, domain.NewWalletError(
			template.Name, domain.ErrInvalidDescriptor, err,
		)
	}

	external, err := wallet.NewDescriptor(wallet.NewDescriptorOpts{
		MasterKey:  masterKey,
		Path:       paths.External,
		ScriptType: template.ScriptType,
		Network:    net,
	})
	if err != nil {
		return nil, domain.NewWalletError(
			template.Name, domain.ErrInvalidDescriptor, err,
		)
	}
	internal, err := wallet.NewDescriptor(wallet.NewDescriptorOpts{
		MasterKey:  masterKey,
		Path:       paths.Internal,
		ScriptType: template.ScriptType,
		Network:    net,
	})
	if err != nil {
		return nil, domain.NewWalletError(
			template.Name, domain.ErrInvalidDescriptor, err,
		)
	}

	store, err := f.storeFactory.Open(scope)
	if err != nil {
		return nil, domain.NewWalletError(template.Name, domain.ErrStateStore, err)
	}

	return &CandidateWallet{
		Template: template,
		Paths:    paths,
		Network:  net,
		External: external,
		Internal: internal,
		Store:    store,
	}, nil
}

// CreateAll builds the wallets of all the given templates with a bounded
// pool of workers. Wallets and errors are returned in template order; a
// template either has a wallet or an error.
func (f *WalletFactory) CreateAll(
	seed []byte, net *chaincfg.Params, templates []domain.Template,
	runID string, resume bool,
) ([]*CandidateWallet, []error) {
	wallets := make([]*CandidateWallet, len(templates))
	errs := make([]error, len(templates))

	g := new(errgroup.Group)
	g.SetLimit(f.parallelism)

	for i, t := range templates {
		i, t := i, t
		g.Go(func() error {
			paths, err := Paths(t)
			if err != nil {
				log.WithField("template", t.Name).WithError(err).Warn(
					"invalid template",
				)
				errs[i] = err
				return nil
			}
			scope := ports.StoreScope{
				Network:  wallet.NetworkName(net),
				Template: t.Name,
				RunID:    runID,
				Resume:   resume,
			}
			w, err := f.Create(seed, net, t, paths, scope)
			if err != nil {
				log.WithField("template", t.Name).WithError(err).Warn(
					"failed to create wallet",
				)
				errs[i] = err
				return nil
			}
			wallets[i] = w
			return nil
		})
	}
	// workers never return errors
	_ = g.Wait()

	return wallets, errs
}
