package wallet

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

var networksByName = map[string]*chaincfg.Params{
	"mainnet": &chaincfg.MainNetParams,
	"bitcoin": &chaincfg.MainNetParams,
	"testnet": &chaincfg.TestNet3Params,
	"signet":  &chaincfg.SigNetParams,
	"regtest": &chaincfg.RegressionNetParams,
}

// NetworkFromName returns the chain params of the named network. Names are
// case insensitive.
func NetworkFromName(name string) (*chaincfg.Params, error) {
	net, ok := networksByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, ErrInvalidNetwork
	}
	return net, nil
}

// NetworkName returns the canonical name of the given network.
func NetworkName(net *chaincfg.Params) string {
	switch net.Net {
	case chaincfg.MainNetParams.Net:
		return "mainnet"
	case chaincfg.TestNet3Params.Net:
		return "testnet"
	case chaincfg.SigNetParams.Net:
		return "signet"
	case chaincfg.RegressionNetParams.Net:
		return "regtest"
	}
	return net.Name
}
