package linear

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/registry"
	"github.com/wippyai/ecs-layout/schema"
	"github.com/wippyai/ecs-layout/store"
	"go.uber.org/zap"
)

// DefaultPages is the initial memory size in wasm pages.
const DefaultPages = 1

// Store is a component store whose memory is the exported linear memory
// of a wasm32 module instantiated in a wazero runtime. Slots are always
// 4 bytes wide.
type Store struct {
	*store.Store
	runtime wazero.Runtime
	module  api.Module
	mem     *Memory
}

type config struct {
	reg      registry.Registry
	minPages uint32
	maxPages uint32
}

// Option configures a linear store.
type Option func(*config)

// WithPages sets the initial and maximum memory size in pages. A zero
// maximum lets the memory grow to the runtime's limit.
func WithPages(minPages, maxPages uint32) Option {
	return func(c *config) {
		c.minPages = minPages
		c.maxPages = maxPages
	}
}

// WithRegistry delegates registration to reg.
func WithRegistry(reg registry.Registry) Option {
	return func(c *config) { c.reg = reg }
}

// New starts a wazero runtime, instantiates a module that only exports a
// memory, and builds a store over that memory.
func New(ctx context.Context, opts ...Option) (*Store, error) {
	cfg := config{minPages: DefaultPages}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxPages != 0 && cfg.maxPages < cfg.minPages {
		return nil, errors.InvalidInput(errors.PhaseStore,
			fmt.Sprintf("max pages %d below min pages %d", cfg.maxPages, cfg.minPages))
	}

	rtCfg := wazero.NewRuntimeConfig()
	if cfg.maxPages > 0 {
		rtCfg = rtCfg.WithMemoryLimitPages(cfg.maxPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, rtCfg)

	mod, err := rt.InstantiateWithConfig(ctx, memoryModule(cfg.minPages, cfg.maxPages),
		wazero.NewModuleConfig().WithName(""))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseStore, errors.KindAllocation, err, "instantiate memory module")
	}
	wmem := mod.ExportedMemory(MemoryExport)
	if wmem == nil {
		_ = rt.Close(ctx)
		return nil, errors.InvalidInput(errors.PhaseStore, "module exports no memory")
	}

	mem := NewMemory(wmem)
	var sopts []store.Option
	if cfg.reg != nil {
		sopts = append(sopts, store.WithRegistry(cfg.reg))
	}
	st, err := store.New(mem, schema.Width32, sopts...)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	store.Logger().Debug("linear store ready",
		zap.Uint32("pages", cfg.minPages),
		zap.Uint32("max_pages", cfg.maxPages))

	return &Store{Store: st, runtime: rt, module: mod, mem: mem}, nil
}

// Memory returns the wazero-backed memory of the store.
func (s *Store) Memory() *Memory { return s.mem }

// Pages returns the current memory size in pages.
func (s *Store) Pages() uint32 { return s.mem.Size() / PageSize }

// Close releases every component, then closes the module and runtime.
func (s *Store) Close(ctx context.Context) error {
	firstErr := s.Store.Close()
	if err := s.module.Close(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.runtime.Close(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
