package wallet

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ScriptType identifies how the keys of an account are turned into
// output scripts.
type ScriptType int

const (
	// ScriptTypeUnknown is the zero value and is never valid.
	ScriptTypeUnknown ScriptType = iota
	// ScriptTypeLegacy is pay-to-pubkey-hash, pkh().
	ScriptTypeLegacy
	// ScriptTypeNestedSegwit is pay-to-witness-pubkey-hash wrapped in
	// pay-to-script-hash, sh(wpkh()).
	ScriptTypeNestedSegwit
	// ScriptTypeNativeSegwit is pay-to-witness-pubkey-hash, wpkh().
	ScriptTypeNativeSegwit
	// ScriptTypeTaproot is a BIP86 key-path only taproot output, tr().
	ScriptTypeTaproot
)

var scriptTypeNames = map[ScriptType]string{
	ScriptTypeLegacy:       "pkh",
	ScriptTypeNestedSegwit: "sh(wpkh)",
	ScriptTypeNativeSegwit: "wpkh",
	ScriptTypeTaproot:      "tr",
}

func (t ScriptType) String() string {
	if name, ok := scriptTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns whether the script type is one of the supported ones.
func (t ScriptType) IsValid() bool {
	_, ok := scriptTypeNames[t]
	return ok
}

// ParseScriptType returns the script type matching the given descriptor
// function name (pkh, sh(wpkh), wpkh, tr).
func ParseScriptType(name string) (ScriptType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range scriptTypeNames {
		if n == name {
			return t, nil
		}
	}
	return ScriptTypeUnknown, fmt.Errorf("%w: %s", ErrUnsupportedScriptType, name)
}

// Descriptor binds the extended key found at a derivation path to a script
// type and a network. Every child index of the key maps to exactly one
// output script and address.
type Descriptor struct {
	scriptType ScriptType
	path       DerivationPath
	net        *chaincfg.Params
	key        *hdkeychain.ExtendedKey
}

// NewDescriptorOpts is the struct given to NewDescriptor method
type NewDescriptorOpts struct {
	MasterKey  *hdkeychain.ExtendedKey
	Path       DerivationPath
	ScriptType ScriptType
	Network    *chaincfg.Params
}

func (o NewDescriptorOpts) validate() error {
	if o.MasterKey == nil {
		return ErrNullMasterKey
	}
	if !o.MasterKey.IsPrivate() {
		return fmt.Errorf("master key must be private")
	}
	if len(o.Path) <= 0 {
		return ErrNullDerivationPath
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	if !o.ScriptType.IsValid() {
		return ErrUnsupportedScriptType
	}
	if o.ScriptType != ScriptTypeLegacy && len(o.Network.Bech32HRPSegwit) <= 0 {
		return fmt.Errorf(
			"%w: network %s does not support segwit",
			ErrUnsupportedScriptType, o.Network.Name,
		)
	}
	return nil
}

// NewDescriptor derives the extended key at the given path and returns the
// descriptor for it.
func NewDescriptor(opts NewDescriptorOpts) (*Descriptor, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	key := opts.MasterKey
	for _, step := range opts.Path {
		child, err := key.Derive(step)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", opts.Path, err)
		}
		key = child
	}
	// Computing the public key once caches it inside the extended key so
	// that later derivations never write to it.
	if _, err := key.ECPubKey(); err != nil {
		return nil, err
	}

	return &Descriptor{
		scriptType: opts.ScriptType,
		path:       opts.Path,
		net:        opts.Network,
		key:        key,
	}, nil
}

// ScriptType ...
func (d *Descriptor) ScriptType() ScriptType {
	return d.scriptType
}

// Path ...
func (d *Descriptor) Path() DerivationPath {
	return d.path
}

// Network ...
func (d *Descriptor) Network() *chaincfg.Params {
	return d.net
}

// String returns the descriptor in the usual output descriptor notation,
// with the extended public key in place of the private one.
func (d *Descriptor) String() string {
	xpub, err := d.key.Neuter()
	if err != nil {
		return ""
	}
	key := fmt.Sprintf("[%s]%s/*", strings.TrimPrefix(d.path.String(), "m/"), xpub)
	if d.scriptType == ScriptTypeNestedSegwit {
		return fmt.Sprintf("sh(wpkh(%s))", key)
	}
	return fmt.Sprintf("%s(%s)", d.scriptType, key)
}

// DerivedKey is the key pair found at a child index of a descriptor along
// with the output script it controls.
type DerivedKey struct {
	Index        uint32
	Path         DerivationPath
	PrivKey      *btcec.PrivateKey
	PubKey       *btcec.PublicKey
	Address      btcutil.Address
	Script       []byte
	RedeemScript []byte
}

// Derive returns the key, script and address at the given child index.
func (d *Descriptor) Derive(index uint32) (*DerivedKey, error) {
	if index > MaxHardenedValue {
		return nil, fmt.Errorf("%w: index %d is hardened", ErrInvalidDerivationPath, index)
	}

	child, err := d.key.Derive(index)
	if err != nil {
		return nil, err
	}
	privKey, err := child.ECPrivKey()
	if err != nil {
		return nil, err
	}
	pubKey := privKey.PubKey()

	addr, redeemScript, err := d.address(pubKey)
	if err != nil {
		return nil, err
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, err
	}

	return &DerivedKey{
		Index:        index,
		Path:         d.path.Child(index),
		PrivKey:      privKey,
		PubKey:       pubKey,
		Address:      addr,
		Script:       script,
		RedeemScript: redeemScript,
	}, nil
}

// Address returns the encoded address at the given child index.
func (d *Descriptor) Address(index uint32) (string, error) {
	key, err := d.Derive(index)
	if err != nil {
		return "", err
	}
	return key.Address.EncodeAddress(), nil
}

func (d *Descriptor) address(
	pubKey *btcec.PublicKey,
) (btcutil.Address, []byte, error) {
	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())

	switch d.scriptType {
	case ScriptTypeLegacy:
		addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, d.net)
		return addr, nil, err

	case ScriptTypeNestedSegwit:
		witnessAddr, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, d.net)
		if err != nil {
			return nil, nil, err
		}
		redeemScript, err := txscript.PayToAddrScript(witnessAddr)
		if err != nil {
			return nil, nil, err
		}
		addr, err := btcutil.NewAddressScriptHash(redeemScript, d.net)
		return addr, redeemScript, err

	case ScriptTypeNativeSegwit:
		addr, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, d.net)
		return addr, nil, err

	case ScriptTypeTaproot:
		outputKey := txscript.ComputeTaprootKeyNoScript(pubKey)
		addr, err := btcutil.NewAddressTaproot(
			schnorr.SerializePubKey(outputKey), d.net,
		)
		return addr, nil, err
	}

	return nil, nil, ErrUnsupportedScriptType
}
