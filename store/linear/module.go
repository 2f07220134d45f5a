package linear

import "encoding/binary"

const (
	sectionMemory = 5
	sectionExport = 7

	exportMemory = 0x02

	limitsHasMax = 0x01
)

// MemoryExport is the export name of the module's memory.
const MemoryExport = "memory"

// memoryModule encodes a core wasm module that defines one memory of min
// pages, bounded by max pages when max is non-zero, and exports it.
func memoryModule(minPages, maxPages uint32) []byte {
	out := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

	var mem []byte
	mem = binary.AppendUvarint(mem, 1)
	if maxPages > 0 {
		mem = append(mem, limitsHasMax)
		mem = binary.AppendUvarint(mem, uint64(minPages))
		mem = binary.AppendUvarint(mem, uint64(maxPages))
	} else {
		mem = append(mem, 0)
		mem = binary.AppendUvarint(mem, uint64(minPages))
	}
	out = appendSection(out, sectionMemory, mem)

	var exp []byte
	exp = binary.AppendUvarint(exp, 1)
	exp = binary.AppendUvarint(exp, uint64(len(MemoryExport)))
	exp = append(exp, MemoryExport...)
	exp = append(exp, exportMemory)
	exp = binary.AppendUvarint(exp, 0)
	out = appendSection(out, sectionExport, exp)

	return out
}

func appendSection(out []byte, id byte, data []byte) []byte {
	out = append(out, id)
	out = binary.AppendUvarint(out, uint64(len(data)))
	return append(out, data...)
}
