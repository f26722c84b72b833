package domain

import (
	"github.com/sweepr/sweepr/pkg/wallet"
)

// Template is an account convention: the hardened account path prefix and
// the kind of scripts its keys lock funds to.
type Template struct {
	Name       string
	Prefix     string
	ScriptType wallet.ScriptType
}

// PathPair holds the receive and change branch paths of a template.
type PathPair struct {
	External wallet.DerivationPath
	Internal wallet.DerivationPath
}

// DefaultTemplates returns the catalog of account conventions swept when no
// other catalog is configured.
func DefaultTemplates() []Template {
	return []Template{
		{"bip44", "m/44'/0'/0'/", wallet.ScriptTypeLegacy},
		{"bip49", "m/49'/0'/0'/", wallet.ScriptTypeNestedSegwit},
		{"bip84", "m/84'/0'/0'/", wallet.ScriptTypeNativeSegwit},
		{"bip86", "m/86'/0'/0'/", wallet.ScriptTypeTaproot},
		{"bip44-testnet", "m/44'/1'/0'/", wallet.ScriptTypeLegacy},
		{"bip49-testnet", "m/49'/1'/0'/", wallet.ScriptTypeNestedSegwit},
		{"bip84-testnet", "m/84'/1'/0'/", wallet.ScriptTypeNativeSegwit},
		{"bip86-testnet", "m/86'/1'/0'/", wallet.ScriptTypeTaproot},
		{"bip84-account1", "m/84'/0'/1'/", wallet.ScriptTypeNativeSegwit},
		{"bip86-account1", "m/86'/0'/1'/", wallet.ScriptTypeTaproot},
	}
}
