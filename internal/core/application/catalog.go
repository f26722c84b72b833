package application

import (
	"fmt"
	"strings"

	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/pkg/wallet"
)

// PathCatalog is the fixed list of templates swept by a run.
type PathCatalog struct {
	templates []domain.Template
}

// NewPathCatalog ...
func NewPathCatalog(templates []domain.Template) PathCatalog {
	t := make([]domain.Template, len(templates))
	copy(t, templates)
	return PathCatalog{t}
}

// Templates returns a copy of the catalog entries.
func (c PathCatalog) Templates() []domain.Template {
	t := make([]domain.Template, len(c.templates))
	copy(t, c.templates)
	return t
}

// Paths returns the receive and change paths of the given template, that
// is its prefix followed by 0 and 1.
func Paths(template domain.Template) (domain.PathPair, error) {
	external, err := ParsePath(
		fmt.Sprintf("%s%d", template.Prefix, domain.ExternalChain),
	)
	if err != nil {
		return domain.PathPair{}, err
	}
	internal, err := ParsePath(
		fmt.Sprintf("%s%d", template.Prefix, domain.InternalChain),
	)
	if err != nil {
		return domain.PathPair{}, err
	}
	return domain.PathPair{External: external, Internal: internal}, nil
}

// ParsePath parses an absolute derivation path. Any failure is an input
// error.
func ParsePath(path string) (wallet.DerivationPath, error) {
	if !strings.HasPrefix(strings.TrimSpace(path), "m/") {
		return nil, domain.NewInputError(
			domain.ErrInvalidPath,
			fmt.Errorf("%s: path must be absolute", path),
		)
	}
	parsed, err := wallet.ParseDerivationPath(path)
	if err != nil {
		return nil, domain.NewInputError(
			domain.ErrInvalidPath, fmt.Errorf("%s: %w", path, err),
		)
	}
	return parsed, nil
}
