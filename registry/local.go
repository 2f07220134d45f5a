package registry

import (
	stderrors "errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
	"go.uber.org/zap"
)

// Component is one registration held by Local.
type Component struct {
	Layouts map[schema.Width]*schema.Schema // filled by RegisterLayout
	Name    string
	Names   []string
	Tags    []schema.Tag
	ID      ecslayout.TypeID
}

// Local is an in-process Registry. Ids start at 1, or are the FNV-1a hash
// of the name with WithHashedIDs. Registering an identical (name, field
// names, tags) again returns the existing id; anything else under a known
// name fails with a schema mismatch.
type Local struct {
	byName  map[string]*Component
	byID    map[ecslayout.TypeID]*Component
	storage SchemaStorage
	next    ecslayout.TypeID
	mu      sync.RWMutex
	hashed  bool
}

// Option configures a Local registry.
type Option func(*Local)

// WithStorage validates registrations against, and records them in, s.
func WithStorage(s SchemaStorage) Option {
	return func(l *Local) { l.storage = s }
}

// WithHashedIDs derives ids from the component name so they do not depend
// on registration order.
func WithHashedIDs() Option {
	return func(l *Local) { l.hashed = true }
}

func NewLocal(opts ...Option) *Local {
	l := &Local{
		byName: make(map[string]*Component),
		byID:   make(map[ecslayout.TypeID]*Component),
		next:   1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) RegisterComponent(name string, names []string, tags []schema.Tag) (ecslayout.TypeID, error) {
	if name == "" {
		return 0, errors.InvalidInput(errors.PhaseRegister, "component name is empty")
	}
	if len(names) != len(tags) {
		return 0, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
			Path(name).
			Detail("%d field names but %d tags", len(names), len(tags)).
			Build()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.byName[name]; ok {
		if err := compare(name, c.Names, c.Tags, names, tags); err != nil {
			return 0, err
		}
		return c.ID, nil
	}

	if l.storage != nil {
		if err := l.checkStorage(name, names, tags); err != nil {
			return 0, err
		}
	}

	id := l.next
	if l.hashed {
		id = ecslayout.TypeID(schema.NameHash(name))
		if id == 0 {
			return 0, errors.Registration(name, stderrors.New("name hashes to type id 0"))
		}
		if other, taken := l.byID[id]; taken {
			return 0, errors.Registration(name, fmt.Errorf("hashed id %#x collides with %q", uint64(id), other.Name))
		}
	} else {
		l.next++
	}

	c := &Component{
		ID:    id,
		Name:  name,
		Names: slices.Clone(names),
		Tags:  slices.Clone(tags),
	}
	l.byName[name] = c
	l.byID[id] = c

	Logger().Debug("registered component",
		zap.String("component", name),
		zap.Uint64("type_id", uint64(id)),
		zap.Strings("fields", names))
	return id, nil
}

func (l *Local) checkStorage(name string, names []string, tags []schema.Tag) error {
	stored, err := l.storage.GetSchema(name)
	if err != nil && !stderrors.Is(err, ErrNoSchemaFound) {
		return errors.Registration(name, err)
	}

	if err == nil && stored != nil {
		return matchStored(name, stored, names, tags)
	}

	data, err := EncodeSchema(name, names, tags)
	if err != nil {
		return errors.Registration(name, err)
	}
	added, err := l.storage.AddSchema(name, data)
	if err != nil {
		return errors.Registration(name, err)
	}
	if added {
		return nil
	}

	// another process stored the name after our read
	stored, err = l.storage.GetSchema(name)
	if err != nil {
		return errors.Registration(name, err)
	}
	return matchStored(name, stored, names, tags)
}

func matchStored(name string, stored []byte, names []string, tags []schema.Tag) error {
	_, sNames, sTags, err := DecodeSchema(stored)
	if err != nil {
		return err
	}
	if err := compare(name, sNames, sTags, names, tags); err != nil {
		e := err.(*errors.Error)
		e.Detail = "does not match stored schema: " + e.Detail
		return e
	}
	return nil
}

func compare(name string, haveNames []string, haveTags []schema.Tag, names []string, tags []schema.Tag) error {
	if len(haveNames) != len(names) {
		return errors.SchemaMismatch(name, fmt.Sprintf("%d fields registered, %d given", len(haveNames), len(names)))
	}
	for i := range names {
		if haveNames[i] != names[i] {
			return errors.SchemaMismatch(name, fmt.Sprintf("field %d is %q, given %q", i, haveNames[i], names[i]))
		}
		if haveTags[i] != tags[i] {
			return errors.SchemaMismatch(name, fmt.Sprintf("field %q is %s, given %s", names[i], haveTags[i], tags[i]))
		}
	}
	return nil
}

func (l *Local) ComponentID(name string) (ecslayout.TypeID, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, ok := l.byName[name]
	if !ok {
		return 0, errors.NotFound(errors.PhaseRegister, "component", name)
	}
	return c.ID, nil
}

// RegisterLayout attaches the full planned layout to a registration. One
// layout is kept per pointer width.
func (l *Local) RegisterLayout(id ecslayout.TypeID, s *schema.Schema) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.byID[id]
	if !ok {
		return errors.NotFound(errors.PhaseRegister, "type id", fmt.Sprint(uint64(id)))
	}
	if err := compare(c.Name, c.Names, c.Tags, s.Names(), s.Tags()); err != nil {
		return err
	}
	if have, ok := c.Layouts[s.Width()]; ok && !have.SameLayout(s) {
		return errors.SchemaMismatch(c.Name, fmt.Sprintf("layout %s differs from registered %s", s, have))
	}
	if c.Layouts == nil {
		c.Layouts = make(map[schema.Width]*schema.Schema, 2)
	}
	c.Layouts[s.Width()] = s
	return nil
}

// Get returns a copy of the registration with the given id.
func (l *Local) Get(id ecslayout.TypeID) (Component, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, ok := l.byID[id]
	if !ok {
		return Component{}, false
	}
	return c.clone(), true
}

func (c *Component) clone() Component {
	out := *c
	out.Layouts = maps.Clone(c.Layouts)
	return out
}

// Components returns every registration ordered by id.
func (l *Local) Components() []Component {
	l.mu.RLock()
	out := make([]Component, 0, len(l.byID))
	for _, c := range l.byID {
		out = append(out, c.clone())
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (l *Local) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byName)
}

var (
	_ Registry        = (*Local)(nil)
	_ LayoutRegistrar = (*Local)(nil)
)
