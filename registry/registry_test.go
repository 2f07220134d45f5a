package registry

import (
	stderrors "errors"
	"reflect"
	"testing"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
)

func position(t *testing.T) *schema.Schema {
	t.Helper()
	return schema.MustDeclare("Position", []schema.Decl{
		schema.Field[uint32]("x"),
		schema.Field[uint32]("y"),
	}, schema.Width64)
}

func TestRegisterPosition(t *testing.T) {
	reg := NewLocal()
	s := position(t)

	id, err := Register(reg, s)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}

	got, err := Lookup(reg, "Position")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != id {
		t.Errorf("Lookup = %d, want %d", got, id)
	}

	c, ok := reg.Get(id)
	if !ok {
		t.Fatal("Get failed")
	}
	if !reflect.DeepEqual(c.Tags, []schema.Tag{schema.TagU32, schema.TagU32}) {
		t.Errorf("tags = %v", c.Tags)
	}
	if !reflect.DeepEqual(c.Names, []string{"x", "y"}) {
		t.Errorf("names = %v", c.Names)
	}
	if c.Layouts[schema.Width64] != s {
		t.Error("layout not attached")
	}
}

func TestLookupNotFound(t *testing.T) {
	_, err := Lookup(NewLocal(), "Ghost")
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	reg := NewLocal()
	a, _ := Register(reg, position(t))
	b, err := Register(reg, position(t))
	if err != nil {
		t.Fatalf("second Register: %v", err)
	}
	if a != b {
		t.Errorf("ids differ: %d vs %d", a, b)
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d", reg.Len())
	}
}

func TestRegisterMismatch(t *testing.T) {
	reg := NewLocal()
	Register(reg, position(t))

	tests := []struct {
		name  string
		names []string
		tags  []schema.Tag
	}{
		{"different tag", []string{"x", "y"}, []schema.Tag{schema.TagU32, schema.TagF32}},
		{"different name", []string{"x", "z"}, []schema.Tag{schema.TagU32, schema.TagU32}},
		{"extra field", []string{"x", "y", "z"}, []schema.Tag{schema.TagU32, schema.TagU32, schema.TagU32}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reg.RegisterComponent("Position", tc.names, tc.tags)
			if !stderrors.Is(err, errors.ErrSchemaMismatch) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestRegisterSequentialIDs(t *testing.T) {
	reg := NewLocal()
	for i, name := range []string{"A", "B", "C"} {
		id, err := reg.RegisterComponent(name, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if id != ecslayout.TypeID(i+1) {
			t.Errorf("%s id = %d, want %d", name, id, i+1)
		}
	}
	comps := reg.Components()
	if len(comps) != 3 || comps[0].Name != "A" || comps[2].Name != "C" {
		t.Errorf("Components = %+v", comps)
	}
}

func TestRegisterHashedIDs(t *testing.T) {
	a := NewLocal(WithHashedIDs())
	b := NewLocal(WithHashedIDs())

	a.RegisterComponent("Velocity", nil, nil)
	idA, _ := a.RegisterComponent("Position", nil, nil)
	idB, _ := b.RegisterComponent("Position", nil, nil)

	if idA != idB {
		t.Errorf("hashed ids depend on order: %d vs %d", idA, idB)
	}
	if idA != ecslayout.TypeID(schema.NameHash("Position")) {
		t.Errorf("id = %#x", uint64(idA))
	}
}

func TestRegisterInvalid(t *testing.T) {
	reg := NewLocal()
	if _, err := reg.RegisterComponent("", nil, nil); err == nil {
		t.Error("empty name accepted")
	}
	if _, err := reg.RegisterComponent("X", []string{"a"}, nil); !stderrors.Is(err, &errors.Error{Kind: errors.KindInvalidInput}) {
		t.Errorf("length mismatch: %v", err)
	}
}

func TestRegisterLayoutMismatch(t *testing.T) {
	reg := NewLocal()
	id, _ := Register(reg, position(t))

	s32 := schema.MustDeclare("Position", []schema.Decl{
		schema.Field[uint32]("x"),
		schema.Field[uint32]("y"),
	}, schema.Width32)
	if err := reg.RegisterLayout(id, s32); err != nil {
		t.Errorf("second width rejected: %v", err)
	}
	c, _ := reg.Get(id)
	if len(c.Layouts) != 2 {
		t.Errorf("layouts = %d, want 2", len(c.Layouts))
	}

	other := schema.MustDeclare("Position", []schema.Decl{
		schema.Field[uint32]("x"),
		schema.Field[uint32]("z"),
	}, schema.Width64)
	if err := reg.RegisterLayout(id, other); !stderrors.Is(err, errors.ErrSchemaMismatch) {
		t.Errorf("renamed field: %v", err)
	}

	if err := reg.RegisterLayout(99, s32); !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown id: %v", err)
	}
}

type failingRegistry struct{}

func (failingRegistry) RegisterComponent(string, []string, []schema.Tag) (ecslayout.TypeID, error) {
	return 0, stderrors.New("registry offline")
}

func (failingRegistry) ComponentID(string) (ecslayout.TypeID, error) {
	return 0, nil
}

func TestRegisterWrapsForeignErrors(t *testing.T) {
	_, err := Register(failingRegistry{}, position(t))
	if !stderrors.Is(err, &errors.Error{Kind: errors.KindRegistration}) {
		t.Errorf("got %v", err)
	}

	_, err = Lookup(failingRegistry{}, "Position")
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("zero id lookup: %v", err)
	}
}

func TestMustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustRegister(failingRegistry{}, position(t))
}
