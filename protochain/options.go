package protochain

import (
	"errors"
	"fmt"

	"github.com/joeycumines/logiface"
)

// DefaultMaxDepth is the default value for [WithMaxDepth].
const DefaultMaxDepth = 1 << 10

// Mode selects how flag violations are reported, see [WithMode].
type Mode int

const (
	// Strict returns flag violations as errors. It is the default.
	Strict Mode = iota + 1
	// Relaxed silently ignores flag violations, leaving state unchanged.
	Relaxed
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return `strict`
	case Relaxed:
		return `relaxed`
	default:
		return fmt.Sprintf(`Mode(%d)`, int(m))
	}
}

// Option configures a [Resolver].
type Option interface {
	apply(*config) error
}

type (
	config struct {
		logger   *logiface.Logger[logiface.Event]
		mode     Mode
		maxDepth int
		cache    bool
	}

	optionFunc func(*config) error
)

func (f optionFunc) apply(c *config) error { return f(c) }

func resolveOptions(opts []Option) (*config, error) {
	cfg := &config{
		mode:     Strict,
		maxDepth: DefaultMaxDepth,
	}
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

// WithMode sets the resolver's [Mode], which is fixed once the resolver is
// constructed.
func WithMode(mode Mode) Option {
	return optionFunc(func(c *config) error {
		if mode != Strict && mode != Relaxed {
			return fmt.Errorf(`invalid mode: %s`, mode)
		}
		c.mode = mode
		return nil
	})
}

// WithMaxDepth bounds the number of prototype links any single chain walk
// may follow. Exceeding it fails the operation with a [*ChainDepthError], or
// a [*CyclicPrototypeError] if the chain turns out to be cyclic.
func WithMaxDepth(depth int) Option {
	return optionFunc(func(c *config) error {
		if depth <= 0 {
			return errors.New(`max depth must be positive`)
		}
		c.maxDepth = depth
		return nil
	})
}

// WithLogger configures a logger, which receives debug events for link
// changes and ignored (relaxed mode) rejections, and warnings for tripped
// depth guards. A nil logger disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return optionFunc(func(c *config) error {
		c.logger = logger
		return nil
	})
}

// WithLookupCache enables memoization of the record on which each (receiver,
// key) pair was last resolved. The cache is invalidated by every structural
// mutation (property additions and removals, link changes), and has no
// observable effect other than performance.
func WithLookupCache(enabled bool) Option {
	return optionFunc(func(c *config) error {
		c.cache = enabled
		return nil
	})
}
