package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAccess,
				Kind:   KindTypeMismatch,
				Path:   []string{"Position", "x"},
				GoType: "string",
				Tag:    "u32",
				Detail: "cannot store",
			},
			contains: []string{"[access]", "type_mismatch", "Position.x", "string", "u32", "cannot store"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhasePlan,
				Kind:  KindOverflow,
			},
			contains: []string{"[plan]", "overflow"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseStore,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[store]", "allocation", "memory full", "caused by", "underlying error"},
		},
		{
			name:     "tag only",
			err:      &Error{Phase: PhaseAccess, Kind: KindTypeMismatch, Tag: "string"},
			contains: []string{"tag string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Registration("Position", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through the chain")
	}
}

func TestError_Is(t *testing.T) {
	err := NotFound(PhaseRegister, "component", "Position")

	if !errors.Is(err, &Error{Phase: PhaseRegister, Kind: KindNotFound}) {
		t.Error("same phase and kind should match")
	}
	if errors.Is(err, &Error{Phase: PhaseAccess, Kind: KindNotFound}) {
		t.Error("different phase should not match")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("phase-less sentinel should match on kind")
	}
	if errors.Is(err, ErrNullHandle) {
		t.Error("different kind should not match")
	}
	if errors.Is(err, errors.New("not found")) {
		t.Error("foreign error should not match")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseDeclare, KindUnsupportedType).
		Path("Sprite", "image").
		GoType("complex64").
		Tag("?").
		Value(3).
		Detail("field %d", 3).
		Build()

	if err.Phase != PhaseDeclare || err.Kind != KindUnsupportedType {
		t.Fatalf("phase/kind: got %s/%s", err.Phase, err.Kind)
	}
	if strings.Join(err.Path, ".") != "Sprite.image" {
		t.Errorf("path: got %v", err.Path)
	}
	if err.Detail != "field 3" {
		t.Errorf("detail: got %q", err.Detail)
	}
	if err.Value != 3 {
		t.Errorf("value: got %v", err.Value)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"unsupported type", UnsupportedType([]string{"A", "f"}, "complex64"), PhaseDeclare, KindUnsupportedType},
		{"unsupported arity", UnsupportedArity("query", 33, 32), PhaseDeclare, KindUnsupportedArity},
		{"duplicate field", DuplicateField("A", "f"), PhaseDeclare, KindDuplicateField},
		{"invalid width", InvalidWidth(2), PhasePlan, KindInvalidWidth},
		{"null handle", NullHandle("A"), PhaseAccess, KindNullHandle},
		{"already attached", AlreadyAttached("A"), PhaseAttach, KindAlreadyAttached},
		{"schema mismatch", SchemaMismatch("A", "tags differ"), PhaseRegister, KindSchemaMismatch},
		{"width mismatch", WidthMismatch("A", 8, 4), PhaseAttach, KindWidthMismatch},
		{"out of bounds", OutOfBounds(PhaseStore, nil, 10, 4), PhaseStore, KindOutOfBounds},
		{"allocation", AllocationFailed(PhaseStore, 16, 8), PhaseStore, KindAllocation},
		{"field missing", FieldMissing(PhaseAccess, nil, "z"), PhaseAccess, KindFieldMissing},
		{"load", Load("read manifest", errors.New("eof")), PhaseLoad, KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("phase: got %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("kind: got %s, want %s", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestUnsupportedArityValue(t *testing.T) {
	err := UnsupportedArity("query", 40, 32)
	if err.Value != 40 {
		t.Errorf("value: got %v, want 40", err.Value)
	}
	if !strings.Contains(err.Error(), "maximum is 32") {
		t.Errorf("message %q missing maximum", err.Error())
	}
}
