package wallet

import "strings"

// ParseMnemonic splits a seed phrase into its words and checks it is a
// valid 12 or 24 words english bip39 mnemonic.
func ParseMnemonic(phrase string) ([]string, error) {
	words := strings.Fields(strings.ToLower(phrase))
	if len(words) <= 0 {
		return nil, ErrNullMnemonic
	}
	if len(words) != 12 && len(words) != 24 {
		return nil, ErrInvalidMnemonicLength
	}
	if !isMnemonicValid(words) {
		return nil, ErrInvalidMnemonic
	}
	return words, nil
}
