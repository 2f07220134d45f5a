package schema

import (
	"encoding/binary"
	"encoding/hex"
	"hash/fnv"

	"github.com/zeebo/blake3"
)

// Fingerprint is a blake3-256 digest over the schema's width, its name and,
// per field in order, its tags, offset and name. Two schemas with equal
// fingerprints lay out memory identically.
func (s *Schema) Fingerprint() [32]byte {
	h := blake3.New()
	var buf [8]byte

	binary.LittleEndian.PutUint32(buf[:4], uint32(s.width))
	_, _ = h.Write(buf[:4])
	_, _ = h.WriteString(s.name)

	for _, f := range s.fields {
		buf[0] = byte(f.Tag)
		buf[1] = byte(f.Elem)
		binary.LittleEndian.PutUint32(buf[2:6], f.Offset)
		_, _ = h.Write(buf[:6])
		binary.LittleEndian.PutUint32(buf[:4], uint32(len(f.Name)))
		_, _ = h.Write(buf[:4])
		_, _ = h.WriteString(f.Name)
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// FingerprintHex is the hex encoding of Fingerprint.
func (s *Schema) FingerprintHex() string {
	fp := s.Fingerprint()
	return hex.EncodeToString(fp[:])
}

// NameHash is the 64-bit FNV-1a hash of a component name. Stores use it
// as a stable key that does not depend on registration order.
func NameHash(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}
