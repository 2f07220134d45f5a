package tag

// Tag is the one-byte discriminator identifying a field's memory representation.
// Byte values are part of the registry wire contract and never change.
type Tag uint8

const (
	U8 Tag = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Bool
	String
	Pointer
)

// Count is the number of tags in the closed set.
const Count = int(Pointer) + 1

var tagNames = [...]string{
	U8:      "u8",
	U16:     "u16",
	U32:     "u32",
	U64:     "u64",
	I8:      "i8",
	I16:     "i16",
	I32:     "i32",
	I64:     "i64",
	F32:     "f32",
	F64:     "f64",
	Bool:    "bool",
	String:  "string",
	Pointer: "pointer",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

func (t Tag) Valid() bool {
	return int(t) < Count
}

// Fixed reports whether the tag's size is independent of pointer width.
func (t Tag) Fixed() bool {
	return t <= Bool
}

// Parse returns the tag named s.
func Parse(s string) (Tag, bool) {
	for i, n := range tagNames {
		if n == s {
			return Tag(i), true
		}
	}
	return 0, false
}

// Repr says how a field's slot is interpreted.
type Repr uint8

const (
	ReprScalar   Repr = iota // fixed-size value inline
	ReprHandle               // 64-bit opaque handle inline
	ReprText                 // pointer-width reference to text payload
	ReprSequence             // pointer-width reference to sequence payload
)

var reprNames = [...]string{
	ReprScalar:   "scalar",
	ReprHandle:   "handle",
	ReprText:     "text",
	ReprSequence: "sequence",
}

func (r Repr) String() string {
	if int(r) < len(reprNames) {
		return reprNames[r]
	}
	return "unknown"
}

// Indirect reports whether the slot references separately owned storage.
func (r Repr) Indirect() bool {
	return r == ReprText || r == ReprSequence
}
