package application

import (
	"fmt"
	"time"

	"github.com/sweepr/sweepr/internal/core/domain"
	"github.com/sweepr/sweepr/internal/core/ports"
)

const (
	// DefaultCallTimeout bounds every single request to the chain provider.
	DefaultCallTimeout = 30 * time.Second
	// maxFeeRounds bounds the fee/size fixed point search.
	maxFeeRounds = 10
)

// Config is the immutable configuration of a sweep pipeline. Zero values
// are replaced by defaults.
type Config struct {
	Templates   []domain.Template
	StopGap     int
	Parallelism int
	FeeTarget   uint32
	CallTimeout time.Duration
	// Resume makes wallets reuse the state of previous runs and scan at
	// least up to the last used index found back then.
	Resume bool

	ChainClient  ports.ChainClient
	StoreFactory ports.StateStoreFactory

	sweep SweepService
}

func (c *Config) Validate() error {
	if c.ChainClient == nil {
		return fmt.Errorf("missing chain client")
	}
	if c.StoreFactory == nil {
		return fmt.Errorf("missing state store factory")
	}
	if c.StopGap < 0 {
		return fmt.Errorf("stop gap must not be negative")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative")
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("call timeout must not be negative")
	}
	names := make(map[string]struct{})
	for _, t := range c.Templates {
		if _, ok := names[t.Name]; ok {
			return fmt.Errorf("duplicated template %s", t.Name)
		}
		names[t.Name] = struct{}{}
	}
	return nil
}

func (c *Config) SweepService() SweepService {
	svc, _ := c.sweepService()
	return svc
}

func (c *Config) sweepService() (SweepService, error) {
	if c.sweep == nil {
		svc, err := NewSweepService(*c)
		if err != nil {
			return nil, err
		}
		c.sweep = svc
	}
	return c.sweep, nil
}

func (c Config) withDefaults() Config {
	if len(c.Templates) <= 0 {
		c.Templates = domain.DefaultTemplates()
	}
	if c.StopGap == 0 {
		c.StopGap = domain.DefaultStopGap
	}
	if c.Parallelism == 0 {
		c.Parallelism = domain.DefaultParallelism
	}
	if c.FeeTarget == 0 {
		c.FeeTarget = domain.DefaultFeeTarget
	}
	if c.CallTimeout == 0 {
		c.CallTimeout = DefaultCallTimeout
	}
	return c
}
