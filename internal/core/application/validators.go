package application

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/pkg/wallet"
)

func parseSeed(mnemonic, passphrase string) ([]byte, error) {
	words, err := wallet.ParseMnemonic(mnemonic)
	if err != nil {
		return nil, domain.NewInputError(domain.ErrInvalidMnemonic, err)
	}
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic:   words,
		Passphrase: passphrase,
	})
	if err != nil {
		return nil, domain.NewInputError(domain.ErrInvalidMnemonic, err)
	}
	return w.Seed(), nil
}

func parseNetwork(name string) (*chaincfg.Params, error) {
	net, err := wallet.NetworkFromName(name)
	if err != nil {
		return nil, domain.NewInputError(domain.ErrInvalidNetwork, err)
	}
	return net, nil
}

// parseDestination returns the output script paying to the given address,
// which must belong to the given network.
func parseDestination(addr string, net *chaincfg.Params) ([]byte, error) {
	decoded, err := wallet.DecodeAddress(addr, net)
	if err != nil {
		return nil, domain.NewInputError(domain.ErrInvalidAddress, err)
	}
	script, err := txscript.PayToAddrScript(decoded)
	if err != nil {
		return nil, domain.NewInputError(domain.ErrInvalidAddress, err)
	}
	return script, nil
}
