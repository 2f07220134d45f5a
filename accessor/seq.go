package accessor

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
)

// EncodeSeq packs a slice of fixed-size elements into little-endian bytes.
// v must be a slice whose element kind matches elem.
func EncodeSeq(elem schema.Tag, v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || !kindMatches(elem, rv.Type().Elem().Kind()) {
		return nil, errors.TypeMismatch(errors.PhaseAccess, nil, typeName(v), "list<"+elem.String()+">")
	}
	return encodeSeq(elem, rv), nil
}

func encodeSeq(elem schema.Tag, rv reflect.Value) []byte {
	n := rv.Len()
	if n == 0 {
		return nil
	}
	size := int(schema.ElemSize(elem))
	buf := make([]byte, n*size)

	for i := 0; i < n; i++ {
		e := rv.Index(i)
		p := buf[i*size:]
		switch elem {
		case schema.TagU8:
			p[0] = uint8(e.Uint())
		case schema.TagI8:
			p[0] = uint8(e.Int())
		case schema.TagBool:
			if e.Bool() {
				p[0] = 1
			}
		case schema.TagU16:
			binary.LittleEndian.PutUint16(p, uint16(e.Uint()))
		case schema.TagI16:
			binary.LittleEndian.PutUint16(p, uint16(e.Int()))
		case schema.TagU32:
			binary.LittleEndian.PutUint32(p, uint32(e.Uint()))
		case schema.TagI32:
			binary.LittleEndian.PutUint32(p, uint32(e.Int()))
		case schema.TagF32:
			binary.LittleEndian.PutUint32(p, math.Float32bits(float32(e.Float())))
		case schema.TagU64, schema.TagPointer:
			binary.LittleEndian.PutUint64(p, e.Uint())
		case schema.TagI64:
			binary.LittleEndian.PutUint64(p, uint64(e.Int()))
		case schema.TagF64:
			binary.LittleEndian.PutUint64(p, math.Float64bits(e.Float()))
		}
	}
	return buf
}

// DecodeSeq unpacks little-endian bytes into a new slice of type typ.
// An empty payload decodes to a nil slice.
func DecodeSeq(elem schema.Tag, data []byte, typ reflect.Type) (any, error) {
	if typ == nil || typ.Kind() != reflect.Slice || !kindMatches(elem, typ.Elem().Kind()) {
		name := "<nil>"
		if typ != nil {
			name = typ.String()
		}
		return nil, errors.TypeMismatch(errors.PhaseAccess, nil, name, "list<"+elem.String()+">")
	}
	v, err := decodeSeq(elem, data, typ)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// ReadSeq reads the sequence field at off as a []E. Generated views use it;
// E must match elem, and a corrupt payload panics.
func ReadSeq[E any](m ecslayout.Members, h ecslayout.Handle, off uint32, elem schema.Tag) []E {
	v, err := decodeSeq(elem, m.GetList(h, off), reflect.TypeFor[[]E]())
	if err != nil {
		panic(err)
	}
	return v.Interface().([]E)
}

// WriteSeq moves v into the sequence field at off.
func WriteSeq[E any](m ecslayout.Members, h ecslayout.Handle, off uint32, elem schema.Tag, v []E) {
	m.SetList(h, off, encodeSeq(elem, reflect.ValueOf(v)))
}

func decodeSeq(elem schema.Tag, data []byte, typ reflect.Type) (reflect.Value, error) {
	size := int(schema.ElemSize(elem))
	if size == 0 || len(data)%size != 0 {
		return reflect.Value{}, errors.InvalidData(errors.PhaseAccess, nil,
			fmt.Sprintf("sequence payload of %d bytes is not a whole number of %s elements", len(data), elem))
	}
	n := len(data) / size
	if n == 0 {
		return reflect.Zero(typ), nil
	}

	out := reflect.MakeSlice(typ, n, n)
	for i := 0; i < n; i++ {
		e := out.Index(i)
		p := data[i*size:]
		switch elem {
		case schema.TagU8:
			e.SetUint(uint64(p[0]))
		case schema.TagI8:
			e.SetInt(int64(int8(p[0])))
		case schema.TagBool:
			e.SetBool(p[0] != 0)
		case schema.TagU16:
			e.SetUint(uint64(binary.LittleEndian.Uint16(p)))
		case schema.TagI16:
			e.SetInt(int64(int16(binary.LittleEndian.Uint16(p))))
		case schema.TagU32:
			e.SetUint(uint64(binary.LittleEndian.Uint32(p)))
		case schema.TagI32:
			e.SetInt(int64(int32(binary.LittleEndian.Uint32(p))))
		case schema.TagF32:
			e.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(p))))
		case schema.TagU64, schema.TagPointer:
			e.SetUint(binary.LittleEndian.Uint64(p))
		case schema.TagI64:
			e.SetInt(int64(binary.LittleEndian.Uint64(p)))
		case schema.TagF64:
			e.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(p)))
		}
	}
	return out, nil
}

var tagKinds = [...]reflect.Kind{
	schema.TagU8:      reflect.Uint8,
	schema.TagU16:     reflect.Uint16,
	schema.TagU32:     reflect.Uint32,
	schema.TagU64:     reflect.Uint64,
	schema.TagI8:      reflect.Int8,
	schema.TagI16:     reflect.Int16,
	schema.TagI32:     reflect.Int32,
	schema.TagI64:     reflect.Int64,
	schema.TagF32:     reflect.Float32,
	schema.TagF64:     reflect.Float64,
	schema.TagBool:    reflect.Bool,
	schema.TagString:  reflect.String,
	schema.TagPointer: reflect.Uint64,
}

func kindMatches(t schema.Tag, k reflect.Kind) bool {
	return int(t) < len(tagKinds) && tagKinds[t] == k
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
