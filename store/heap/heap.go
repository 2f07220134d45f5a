package heap

import (
	"github.com/wippyai/ecs-layout/registry"
	"github.com/wippyai/ecs-layout/schema"
	"github.com/wippyai/ecs-layout/store"
)

// DefaultCapacity is the initial memory size.
const DefaultCapacity = 4096

type config struct {
	reg      registry.Registry
	width    schema.Width
	capacity uint32
	limit    uint32
}

// Option configures a heap store.
type Option func(*config)

// WithWidth sets the slot width for text and sequence references. The
// default is the build target's pointer width.
func WithWidth(w schema.Width) Option {
	return func(c *config) { c.width = w }
}

// WithCapacity sets the initial memory size in bytes.
func WithCapacity(n uint32) Option {
	return func(c *config) { c.capacity = n }
}

// WithLimit caps the memory size in bytes.
func WithLimit(n uint32) Option {
	return func(c *config) { c.limit = n }
}

// WithRegistry delegates registration to reg.
func WithRegistry(reg registry.Registry) Option {
	return func(c *config) { c.reg = reg }
}

// New creates a store over a fresh heap Memory.
func New(opts ...Option) (*store.Store, error) {
	cfg := config{
		width:    schema.TargetWidth,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.limit != 0 && cfg.capacity > cfg.limit {
		cfg.capacity = cfg.limit
	}

	var sopts []store.Option
	if cfg.reg != nil {
		sopts = append(sopts, store.WithRegistry(cfg.reg))
	}
	return store.New(NewMemory(cfg.capacity, cfg.limit), cfg.width, sopts...)
}

// MustNew is New that panics on error.
func MustNew(opts ...Option) *store.Store {
	s, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return s
}
