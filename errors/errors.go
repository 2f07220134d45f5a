package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDeclare  Phase = "declare"  // field classification
	PhasePlan     Phase = "plan"     // offset planning
	PhaseAccess   Phase = "access"   // field reads and writes
	PhaseRegister Phase = "register" // registry calls
	PhaseAttach   Phase = "attach"   // handle attach and release
	PhaseStore    Phase = "store"    // external store operations
	PhaseLoad     Phase = "load"     // manifest loading
	PhaseGenerate Phase = "generate" // source generation
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedType  Kind = "unsupported_type"
	KindUnsupportedArity Kind = "unsupported_arity"
	KindNotFound         Kind = "not_found"
	KindNullHandle       Kind = "null_handle"
	KindDuplicateField   Kind = "duplicate_field"
	KindInvalidWidth     Kind = "invalid_width"
	KindTypeMismatch     Kind = "type_mismatch"
	KindFieldMissing     Kind = "field_missing"
	KindAlreadyAttached  Kind = "already_attached"
	KindSchemaMismatch   Kind = "schema_mismatch"
	KindWidthMismatch    Kind = "width_mismatch"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindOverflow         Kind = "overflow"
	KindAllocation       Kind = "allocation"
	KindInvalidInput     Kind = "invalid_input"
	KindRegistration     Kind = "registration"
	KindInvalidData      Kind = "invalid_data"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Tag    string
	Detail string
	Path   []string
}

// Error renders "[phase] kind at path: Go type T, tag t: detail", followed
// by the cause in parentheses.
func (e *Error) Error() string {
	head := "[" + string(e.Phase) + "] " + string(e.Kind)
	if len(e.Path) > 0 {
		head += " at " + strings.Join(e.Path, ".")
	}
	parts := []string{head}

	var subject []string
	if e.GoType != "" {
		subject = append(subject, "Go type "+e.GoType)
	}
	if e.Tag != "" {
		subject = append(subject, "tag "+e.Tag)
	}
	if len(subject) > 0 {
		parts = append(parts, strings.Join(subject, ", "))
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}

	msg := strings.Join(parts, ": ")
	if e.Cause != nil {
		msg += " (caused by: " + e.Cause.Error() + ")"
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Sentinels for errors.Is checks that do not care about the phase.
var (
	ErrUnsupportedType  = &Error{Kind: KindUnsupportedType}
	ErrUnsupportedArity = &Error{Kind: KindUnsupportedArity}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrNullHandle       = &Error{Kind: KindNullHandle}
	ErrSchemaMismatch   = &Error{Kind: KindSchemaMismatch}
)

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Tag sets the type tag name
func (b *Builder) Tag(t string) *Builder {
	b.err.Tag = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Schema errors

// UnsupportedType reports a field type outside the closed tag set.
func UnsupportedType(path []string, goType string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindUnsupportedType,
		Path:   path,
		GoType: goType,
		Detail: "no type tag for field type",
	}
}

// UnsupportedArity reports a fixed-arity combinator given too many terms.
func UnsupportedArity(what string, n, maxArity int) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindUnsupportedArity,
		Detail: fmt.Sprintf("%s has %d terms (maximum is %d)", what, n, maxArity),
		Value:  n,
	}
}

// DuplicateField reports a field name declared twice in one record.
func DuplicateField(record, field string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindDuplicateField,
		Path:   []string{record, field},
		Detail: fmt.Sprintf("field %q declared more than once", field),
	}
}

// InvalidWidth reports a pointer width other than 4 or 8.
func InvalidWidth(width uint32) *Error {
	return &Error{
		Phase:  PhasePlan,
		Kind:   KindInvalidWidth,
		Detail: fmt.Sprintf("pointer width %d is not 4 or 8", width),
		Value:  width,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// Runtime errors

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NullHandle reports access through an unattached or released record.
func NullHandle(record string) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindNullHandle,
		Path:   []string{record},
		Detail: "record has no attached handle",
	}
}

// AlreadyAttached reports a second attach on one record.
func AlreadyAttached(record string) *Error {
	return &Error{
		Phase:  PhaseAttach,
		Kind:   KindAlreadyAttached,
		Path:   []string{record},
		Detail: "handle is populated exactly once",
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, tag string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Tag:    tag,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("field %q not declared", fieldName),
	}
}

// SchemaMismatch reports a registration that disagrees with an earlier one.
func SchemaMismatch(name, detail string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindSchemaMismatch,
		Path:   []string{name},
		Detail: detail,
	}
}

// WidthMismatch reports a schema planned for a different pointer width than the store.
func WidthMismatch(name string, schemaWidth, storeWidth uint32) *Error {
	return &Error{
		Phase:  PhaseAttach,
		Kind:   KindWidthMismatch,
		Path:   []string{name},
		Detail: fmt.Sprintf("schema planned for %d-byte pointers, store uses %d", schemaWidth, storeWidth),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, offset, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("offset %d out of bounds (length %d)", offset, length),
		Value:  offset,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Registration wraps a registry failure for a component name.
func Registration(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register component %q", name),
		Cause:  cause,
	}
}

// Load creates a manifest loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
