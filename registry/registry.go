package registry

import (
	stderrors "errors"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
	"go.uber.org/zap"
)

// Registry is the external component registry contract.
type Registry interface {
	// RegisterComponent records a component kind and returns its type id.
	RegisterComponent(name string, names []string, tags []schema.Tag) (ecslayout.TypeID, error)

	// ComponentID returns the type id registered under name.
	ComponentID(name string) (ecslayout.TypeID, error)
}

// LayoutRegistrar is implemented by registries that also want the full
// planned layout, such as stores that allocate blocks per kind.
type LayoutRegistrar interface {
	RegisterLayout(id ecslayout.TypeID, s *schema.Schema) error
}

// Register sends (name, field names, tags) to reg and returns the type id.
// Whether registering the same name twice is allowed is up to reg.
func Register(reg Registry, s *schema.Schema) (ecslayout.TypeID, error) {
	id, err := reg.RegisterComponent(s.Name(), s.Names(), s.Tags())
	if err != nil {
		Logger().Warn("component registration failed",
			zap.String("component", s.Name()),
			zap.Error(err))
		return 0, wrap(s.Name(), err)
	}
	if id == 0 {
		return 0, errors.Registration(s.Name(), stderrors.New("registry returned type id 0"))
	}

	if lr, ok := reg.(LayoutRegistrar); ok {
		if err := lr.RegisterLayout(id, s); err != nil {
			Logger().Warn("layout registration failed",
				zap.String("component", s.Name()),
				zap.Uint64("type_id", uint64(id)),
				zap.Error(err))
			return 0, wrap(s.Name(), err)
		}
	}

	Logger().Debug("component registered",
		zap.String("component", s.Name()),
		zap.Uint64("type_id", uint64(id)),
		zap.Int("fields", s.Len()),
		zap.Uint32("size", s.Size()))
	return id, nil
}

// Lookup returns the type id registered under name, or a not-found error.
func Lookup(reg Registry, name string) (ecslayout.TypeID, error) {
	id, err := reg.ComponentID(name)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return 0, err
		}
		return 0, errors.Wrap(errors.PhaseRegister, errors.KindNotFound, err, "lookup component "+name)
	}
	if id == 0 {
		return 0, errors.NotFound(errors.PhaseRegister, "component", name)
	}
	return id, nil
}

// MustRegister is Register that panics on error, for init-time kinds.
func MustRegister(reg Registry, s *schema.Schema) ecslayout.TypeID {
	id, err := Register(reg, s)
	if err != nil {
		panic(err)
	}
	return id
}

// structured errors from the registry pass through unchanged
func wrap(name string, err error) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return err
	}
	return errors.Registration(name, err)
}
