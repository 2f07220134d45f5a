package sqlitestore

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/registry"
	"github.com/wippyai/ecs-layout/schema"
)

func openMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := openMemory(t)
	if _, err := s.GetSchema("Position"); !stderrors.Is(err, registry.ErrNoSchemaFound) {
		t.Errorf("got %v", err)
	}
}

func TestAddKeepsFirst(t *testing.T) {
	s := openMemory(t)

	if ok, err := s.AddSchema("Color", []byte("v1")); err != nil || !ok {
		t.Fatalf("first add = %v, %v", ok, err)
	}
	if ok, err := s.AddSchema("Color", []byte("v2")); err != nil || ok {
		t.Errorf("second add = %v, %v", ok, err)
	}
	got, err := s.GetSchema("Color")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v1" {
		t.Errorf("got %q, want v1", got)
	}

	s.AddSchema("Alpha", []byte("a"))
	names, err := s.Names()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Color" {
		t.Errorf("Names = %v", names)
	}
}

func TestPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemas.db")
	vel := schema.MustDeclare("Velocity", []schema.Decl{
		schema.Field[float32]("dx"),
		schema.Field[float32]("dy"),
	}, schema.Width64)

	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := registry.Register(registry.NewLocal(registry.WithStorage(first)), vel); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	reg := registry.NewLocal(registry.WithStorage(second))
	_, err = reg.RegisterComponent("Velocity", []string{"dx", "dy"}, []schema.Tag{schema.TagF64, schema.TagF64})
	if !stderrors.Is(err, errors.ErrSchemaMismatch) {
		t.Errorf("got %v, want schema mismatch", err)
	}
	if _, err := registry.Register(reg, vel); err != nil {
		t.Errorf("matching schema rejected: %v", err)
	}
}
