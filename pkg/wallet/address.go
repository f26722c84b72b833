package wallet

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// DecodeAddress parses the given address and makes sure it is meant for
// the given network. Bech32 addresses are accepted in upper case too.
func DecodeAddress(addr string, net *chaincfg.Params) (btcutil.Address, error) {
	if net == nil {
		return nil, ErrNullNetwork
	}
	addr = strings.TrimSpace(addr)
	if len(addr) <= 0 {
		return nil, ErrInvalidAddress
	}
	if isUpperBech32(addr, net) {
		addr = strings.ToLower(addr)
	}

	decoded, err := btcutil.DecodeAddress(addr, net)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	if !decoded.IsForNet(net) {
		return nil, ErrInvalidAddressNetwork
	}
	return decoded, nil
}

// AddressScript returns the output script paying to the given address.
func AddressScript(addr string, net *chaincfg.Params) ([]byte, error) {
	decoded, err := DecodeAddress(addr, net)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(decoded)
}

func isUpperBech32(addr string, net *chaincfg.Params) bool {
	hrp := strings.ToUpper(net.Bech32HRPSegwit) + "1"
	return len(net.Bech32HRPSegwit) > 0 &&
		strings.HasPrefix(addr, hrp) && addr == strings.ToUpper(addr)
}
