package gojaprotochain

import (
	"errors"

	"github.com/joeycumines/go-protochain/protochain"
)

// Option configures module behavior. Options are immutable value
// types that validate on construction.
type Option interface {
	apply(*config) error
}

type config struct {
	resolver *protochain.Resolver
}

func resolveOptions(opts []Option) (*config, error) {
	cfg := &config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithResolver provides the [protochain.Resolver] that owns all records
// created or accepted by the module. If not provided, a new resolver is
// constructed, with default options.
func WithResolver(r *protochain.Resolver) Option {
	return withResolver{r: r}
}

type withResolver struct {
	r *protochain.Resolver
}

func (o withResolver) apply(cfg *config) error {
	if o.r == nil {
		return errors.New("resolver must not be nil")
	}
	cfg.resolver = o.r
	return nil
}
