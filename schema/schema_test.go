package schema

import (
	"errors"
	"reflect"
	"testing"

	ecslayout "github.com/wippyai/ecs-layout"
	ecserrors "github.com/wippyai/ecs-layout/errors"
)

func TestDeclareExample(t *testing.T) {
	s, err := Declare("Sample", []Decl{
		Field[uint32]("a"),
		Field[uint8]("b"),
		Field[uint64]("c"),
	}, Width64)
	if err != nil {
		t.Fatalf("Declare: %v", err)
	}

	want := []uint32{0, 4, 8}
	for i, f := range s.Fields() {
		if f.Offset != want[i] {
			t.Errorf("%s offset = %d, want %d", f.Name, f.Offset, want[i])
		}
	}
	if s.Size() != 16 {
		t.Errorf("Size = %d, want 16", s.Size())
	}
	if s.Align() != 8 {
		t.Errorf("Align = %d, want 8", s.Align())
	}
}

func TestDeclareNoTrailingPadding(t *testing.T) {
	s := MustDeclare("Tail", []Decl{Field[uint64]("a"), Field[bool]("b")}, Width64)
	if s.Size() != 9 {
		t.Errorf("Size = %d, want 9", s.Size())
	}
}

func TestDeclareDeterminism(t *testing.T) {
	decls := []Decl{
		Field[uint8]("a"),
		Field[string]("b"),
		Field[int16]("c"),
		Field[[]float32]("d"),
		Field[ecslayout.EntityID]("e"),
		Field[bool]("f"),
	}

	first := MustDeclare("R", decls, Width64)
	for i := 0; i < 10; i++ {
		again := MustDeclare("R", decls, Width64)
		if !first.SameLayout(again) {
			t.Fatalf("run %d: %s != %s", i, again, first)
		}
		if first.Fingerprint() != again.Fingerprint() {
			t.Fatalf("run %d: fingerprint changed", i)
		}
	}

	renamed := make([]Decl, len(decls))
	for i, d := range decls {
		renamed[i] = Decl{Name: d.Name + "_x", Type: d.Type}
	}
	other := MustDeclare("R", renamed, Width64)
	for i := 0; i < first.Len(); i++ {
		if first.Field(i).Offset != other.Field(i).Offset {
			t.Errorf("field %d: names changed offsets", i)
		}
	}

	reordered := []Decl{decls[1], decls[0], decls[2], decls[3], decls[4], decls[5]}
	swapped := MustDeclare("R", reordered, Width64)
	if swapped.Field(1).Offset == first.Field(1).Offset {
		t.Error("reordering fields should change offsets")
	}
}

func TestDeclareInvariants(t *testing.T) {
	decls := []Decl{
		Field[bool]("a"),
		Field[uint64]("b"),
		Field[uint8]("c"),
		Field[string]("d"),
		Field[int16]("e"),
		Field[[]uint8]("f"),
		Field[float32]("g"),
		Field[ecslayout.Pointer]("h"),
		Field[int8]("i"),
		Field[float64]("j"),
	}

	for _, w := range []Width{Width32, Width64} {
		s := MustDeclare("Mixed", decls, w)
		fields := s.Fields()
		for i, f := range fields {
			if f.Offset%f.Align != 0 {
				t.Errorf("%s: %s offset %d not aligned to %d", w, f.Name, f.Offset, f.Align)
			}
			for _, g := range fields[i+1:] {
				if f.Offset < g.End() && g.Offset < f.End() {
					t.Errorf("%s: %s [%d,%d) overlaps %s [%d,%d)", w, f.Name, f.Offset, f.End(), g.Name, g.Offset, g.End())
				}
			}
		}
	}
}

func TestDeclareWidthSensitivity(t *testing.T) {
	fixed := []Decl{Field[uint8]("a"), Field[uint64]("b"), Field[uint16]("c")}
	s4 := MustDeclare("Fixed", fixed, Width32)
	s8 := MustDeclare("Fixed", fixed, Width64)
	for i := 0; i < s4.Len(); i++ {
		if s4.Field(i).Offset != s8.Field(i).Offset {
			t.Errorf("fixed field %d differs across widths", i)
		}
	}

	mixed := []Decl{Field[string]("name"), Field[[]uint32]("items"), Field[uint32]("n")}
	m4 := MustDeclare("Mixed", mixed, Width32)
	m8 := MustDeclare("Mixed", mixed, Width64)

	tests := []struct {
		field string
		off4  uint32
		off8  uint32
		size4 uint32
		size8 uint32
	}{
		{"name", 0, 0, 4, 8},
		{"items", 4, 8, 4, 8},
		{"n", 8, 16, 4, 4},
	}
	for _, tc := range tests {
		f4, _ := m4.Lookup(tc.field)
		f8, _ := m8.Lookup(tc.field)
		if f4.Offset != tc.off4 || f8.Offset != tc.off8 {
			t.Errorf("%s offsets = %d/%d, want %d/%d", tc.field, f4.Offset, f8.Offset, tc.off4, tc.off8)
		}
		if f4.Size != tc.size4 || f8.Size != tc.size8 {
			t.Errorf("%s sizes = %d/%d, want %d/%d", tc.field, f4.Size, f8.Size, tc.size4, tc.size8)
		}
	}
	if m4.Fingerprint() == m8.Fingerprint() {
		t.Error("fingerprints should differ across widths")
	}
}

func TestDeclareErrors(t *testing.T) {
	tests := []struct {
		name  string
		rec   string
		decls []Decl
		width Width
		want  error
	}{
		{
			name:  "unsupported",
			rec:   "Bad",
			decls: []Decl{Field[uint32]("ok"), Field[complex128]("z")},
			width: Width64,
			want:  ecserrors.ErrUnsupportedType,
		},
		{
			name:  "duplicate",
			rec:   "Dup",
			decls: []Decl{Field[uint32]("x"), Field[uint32]("x")},
			width: Width64,
			want:  &ecserrors.Error{Kind: ecserrors.KindDuplicateField},
		},
		{
			name:  "empty field name",
			rec:   "Anon",
			decls: []Decl{Field[uint32]("")},
			width: Width64,
			want:  &ecserrors.Error{Kind: ecserrors.KindInvalidInput},
		},
		{
			name:  "empty record name",
			rec:   "",
			decls: nil,
			width: Width64,
			want:  &ecserrors.Error{Kind: ecserrors.KindInvalidInput},
		},
		{
			name:  "bad width",
			rec:   "W",
			decls: nil,
			width: 16,
			want:  &ecserrors.Error{Kind: ecserrors.KindInvalidWidth},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Declare(tc.rec, tc.decls, tc.width)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDeclareUnsupportedNamesField(t *testing.T) {
	_, err := Declare("Sprite", []Decl{Field[complex64]("tint")}, Width64)
	var e *ecserrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("got %T", err)
	}
	if len(e.Path) != 2 || e.Path[0] != "Sprite" || e.Path[1] != "tint" {
		t.Errorf("path = %v", e.Path)
	}
	if e.GoType != "complex64" {
		t.Errorf("GoType = %q", e.GoType)
	}
}

func TestSchemaAccessors(t *testing.T) {
	s := MustDeclare("Position", []Decl{Field[uint32]("x"), Field[uint32]("y")}, Width64)

	if s.Name() != "Position" || s.Width() != Width64 || s.Len() != 2 {
		t.Fatalf("got %s", s)
	}
	names := s.Names()
	if !reflect.DeepEqual(names, []string{"x", "y"}) {
		t.Errorf("Names = %v", names)
	}
	tags := s.Tags()
	if !reflect.DeepEqual(tags, []Tag{TagU32, TagU32}) {
		t.Errorf("Tags = %v", tags)
	}
	if s.Index("y") != 1 || s.Index("z") != -1 {
		t.Error("Index")
	}
	if _, ok := s.Lookup("z"); ok {
		t.Error("Lookup found undeclared field")
	}

	fields := s.Fields()
	fields[0].Offset = 99
	if s.Field(0).Offset != 0 {
		t.Error("Fields must return a copy")
	}
	if s.String() != "Position (64-bit, size 8, align 4) { x: u32@0, y: u32@4 }" {
		t.Errorf("String = %q", s.String())
	}
}

func TestMustDeclarePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustDeclare("Bad", []Decl{Field[int]("n")}, Width64)
}

func TestNameHash(t *testing.T) {
	// FNV-1a 64 reference values
	tests := []struct {
		in   string
		want uint64
	}{
		{"", 0xcbf29ce484222325},
		{"a", 0xaf63dc4c8601ec8c},
	}
	for _, tc := range tests {
		if got := NameHash(tc.in); got != tc.want {
			t.Errorf("NameHash(%q) = %#x, want %#x", tc.in, got, tc.want)
		}
	}
	if NameHash("Position") == NameHash("Velocity") {
		t.Error("distinct names should hash differently")
	}
}

func TestFingerprintHex(t *testing.T) {
	s := MustDeclare("Position", []Decl{Field[uint32]("x")}, Width64)
	if len(s.FingerprintHex()) != 64 {
		t.Errorf("hex length = %d", len(s.FingerprintHex()))
	}
	other := MustDeclare("Position", []Decl{Field[int32]("x")}, Width64)
	if s.Fingerprint() == other.Fingerprint() {
		t.Error("tag change should change the fingerprint")
	}
}
