package resolve

import (
	"unsafe"

	"github.com/carved4/go-apiresolve/pkg/obf"
)

// Export represents a single exported symbol from a PE image
type Export struct {
	Name           string
	VirtualAddress uint32
	Ordinal        uint32
	Forwarded      bool
}

// Offsets within IMAGE_EXPORT_DIRECTORY
// 16: Base (DWORD)
// 20: NumberOfFunctions (DWORD)
// 24: NumberOfNames (DWORD)
// 28: AddressOfFunctions (DWORD)
// 32: AddressOfNames (DWORD)
// 36: AddressOfNameOrdinals (DWORD)
const (
	expOrdinalBase    = 16
	expNumFunctions   = 20
	expNumNames       = 24
	expAddrOfFuncs    = 28
	expAddrOfNames    = 32
	expAddrOfOrdinals = 36
)

// imageHeader carries the optional-header fields the export walk needs.
// Everything stays an RVA until it is added to the module base at the
// very end of a lookup.
type imageHeader struct {
	sizeOfImage uint32
	exportRVA   uint32
	exportSize  uint32
}

// parseHeader validates the DOS and NT signatures and reads the export data
// directory. Header reads trust the mapped page; every later table read is
// bounded by sizeOfImage.
func parseHeader(moduleBase uintptr) (imageHeader, bool) {
	var hdr imageHeader
	if moduleBase == 0 {
		return hdr, false
	}

	dos := (*[2]byte)(unsafe.Pointer(moduleBase))
	if dos[0] != 'M' || dos[1] != 'Z' {
		return hdr, false
	}

	peOff := *(*uint32)(unsafe.Pointer(moduleBase + 0x3C))
	if peOff >= 1024 {
		return hdr, false
	}

	nt := (*[4]byte)(unsafe.Pointer(moduleBase + uintptr(peOff)))
	if nt[0] != 'P' || nt[1] != 'E' || nt[2] != 0 || nt[3] != 0 {
		return hdr, false
	}

	// Optional header starts after 4-byte Signature and 20-byte COFF header
	optStart := moduleBase + uintptr(peOff) + 24
	magic := *(*uint16)(unsafe.Pointer(optStart))

	// DataDirectory starts at offset 96 for PE32, 112 for PE32+
	var ddOff uintptr
	switch magic {
	case 0x10b:
		ddOff = 96
	case 0x20b:
		ddOff = 112
	default:
		return hdr, false
	}

	hdr.sizeOfImage = *(*uint32)(unsafe.Pointer(optStart + 56))

	// IMAGE_DIRECTORY_ENTRY_EXPORT = 0
	hdr.exportRVA = *(*uint32)(unsafe.Pointer(optStart + ddOff))
	hdr.exportSize = *(*uint32)(unsafe.Pointer(optStart + ddOff + 4))
	return hdr, true
}

// CheckImage reports whether moduleBase looks like a mapped PE image.
func CheckImage(moduleBase uintptr) bool {
	_, ok := parseHeader(moduleBase)
	return ok
}

func readU16(base uintptr, off, limit uint32) (uint16, bool) {
	if limit < 2 || off > limit-2 {
		return 0, false
	}
	return *(*uint16)(unsafe.Pointer(base + uintptr(off))), true
}

func readU32(base uintptr, off, limit uint32) (uint32, bool) {
	if limit < 4 || off > limit-4 {
		return 0, false
	}
	return *(*uint32)(unsafe.Pointer(base + uintptr(off))), true
}

// exportNameEquals compares the NUL-terminated name at rva byte-for-byte
// against want. Export names are not normalized; the compare is case
// sensitive by design.
func exportNameEquals(base uintptr, rva, limit uint32, want string) bool {
	for i := 0; i < len(want); i++ {
		off := rva + uint32(i)
		if off >= limit || off < rva {
			return false
		}
		b := *(*byte)(unsafe.Pointer(base + uintptr(off)))
		if b == 0 || b != want[i] {
			return false
		}
	}
	end := rva + uint32(len(want))
	if end >= limit || end < rva {
		return false
	}
	return *(*byte)(unsafe.Pointer(base + uintptr(end))) == 0
}

func readExportName(base uintptr, rva, limit uint32) string {
	// Read ASCII bytes until NUL or a sane limit
	var buf [512]byte
	for i := 0; i < len(buf); i++ {
		off := rva + uint32(i)
		if off >= limit || off < rva {
			return string(buf[:i])
		}
		b := *(*byte)(unsafe.Pointer(base + uintptr(off)))
		if b == 0 {
			return string(buf[:i])
		}
		buf[i] = b
	}
	return string(buf[:])
}

// ResolveExport resolves symbol against the export directory of the image
// mapped at moduleBase. The three export tables are parallel: names[i] and
// ordinals[i] describe the same symbol, and functions[ordinals[i]] is its
// RVA. Any malformed input collapses into the same zero sentinel as a plain
// miss. Forwarded exports point back into the export directory and are not
// followed.
func ResolveExport(moduleBase uintptr, symbol string) uintptr {
	hdr, ok := parseHeader(moduleBase)
	if !ok || hdr.exportRVA == 0 {
		return 0
	}
	limit := hdr.sizeOfImage
	dir := hdr.exportRVA

	numNames, ok := readU32(moduleBase, dir+expNumNames, limit)
	if !ok {
		return 0
	}
	addrFuncs, ok := readU32(moduleBase, dir+expAddrOfFuncs, limit)
	if !ok {
		return 0
	}
	addrNames, ok := readU32(moduleBase, dir+expAddrOfNames, limit)
	if !ok {
		return 0
	}
	addrOrds, ok := readU32(moduleBase, dir+expAddrOfOrdinals, limit)
	if !ok {
		return 0
	}

	// The name table is sorted, but a linear scan keeps the walk identical
	// to the directory layout and first-match semantics.
	for i := uint32(0); i < numNames; i++ {
		nameRVA, ok := readU32(moduleBase, addrNames+i*4, limit)
		if !ok {
			return 0
		}
		if !exportNameEquals(moduleBase, nameRVA, limit, symbol) {
			continue
		}
		ord, ok := readU16(moduleBase, addrOrds+i*2, limit)
		if !ok {
			return 0
		}
		funcRVA, ok := readU32(moduleBase, addrFuncs+uint32(ord)*4, limit)
		if !ok || funcRVA == 0 {
			return 0
		}
		if funcRVA >= dir && funcRVA < dir+hdr.exportSize {
			// forwarder string, not code
			return 0
		}
		return moduleBase + uintptr(funcRVA)
	}
	return 0
}

// GetFunctionAddress is the hash-keyed variant of ResolveExport, for callers
// that never hold the symbol name as a plain string. Hashes come from
// obf.GetSymbolHash and are case exact.
func GetFunctionAddress(moduleBase uintptr, symbolHash uint32) uintptr {
	hdr, ok := parseHeader(moduleBase)
	if !ok || hdr.exportRVA == 0 {
		return 0
	}
	limit := hdr.sizeOfImage
	dir := hdr.exportRVA

	numNames, ok := readU32(moduleBase, dir+expNumNames, limit)
	if !ok {
		return 0
	}
	addrFuncs, ok := readU32(moduleBase, dir+expAddrOfFuncs, limit)
	if !ok {
		return 0
	}
	addrNames, ok := readU32(moduleBase, dir+expAddrOfNames, limit)
	if !ok {
		return 0
	}
	addrOrds, ok := readU32(moduleBase, dir+expAddrOfOrdinals, limit)
	if !ok {
		return 0
	}

	for i := uint32(0); i < numNames; i++ {
		nameRVA, ok := readU32(moduleBase, addrNames+i*4, limit)
		if !ok {
			return 0
		}
		name := readExportName(moduleBase, nameRVA, limit)
		if name == "" || obf.SymbolHash([]byte(name)) != symbolHash {
			continue
		}
		ord, ok := readU16(moduleBase, addrOrds+i*2, limit)
		if !ok {
			return 0
		}
		funcRVA, ok := readU32(moduleBase, addrFuncs+uint32(ord)*4, limit)
		if !ok || funcRVA == 0 {
			return 0
		}
		if funcRVA >= dir && funcRVA < dir+hdr.exportSize {
			return 0
		}
		return moduleBase + uintptr(funcRVA)
	}
	return 0
}

// ListExports enumerates the full export directory, including ordinal-only
// entries, directly from the mapped image.
func ListExports(moduleBase uintptr) []Export {
	hdr, ok := parseHeader(moduleBase)
	if !ok || hdr.exportRVA == 0 {
		return nil
	}
	limit := hdr.sizeOfImage
	dir := hdr.exportRVA

	ordinalBase, ok := readU32(moduleBase, dir+expOrdinalBase, limit)
	if !ok {
		return nil
	}
	numFuncs, ok := readU32(moduleBase, dir+expNumFunctions, limit)
	if !ok {
		return nil
	}
	numNames, ok := readU32(moduleBase, dir+expNumNames, limit)
	if !ok {
		return nil
	}
	addrFuncs, ok := readU32(moduleBase, dir+expAddrOfFuncs, limit)
	if !ok {
		return nil
	}
	addrNames, ok := readU32(moduleBase, dir+expAddrOfNames, limit)
	if !ok {
		return nil
	}
	addrOrds, ok := readU32(moduleBase, dir+expAddrOfOrdinals, limit)
	if !ok {
		return nil
	}

	// function index -> name
	nameByIndex := make(map[uint16]string)
	for i := uint32(0); i < numNames; i++ {
		nameRVA, ok := readU32(moduleBase, addrNames+i*4, limit)
		if !ok {
			return nil
		}
		ordIndex, ok := readU16(moduleBase, addrOrds+i*2, limit)
		if !ok {
			return nil
		}
		nameByIndex[ordIndex] = readExportName(moduleBase, nameRVA, limit)
	}

	exports := make([]Export, 0, numFuncs)
	for i := uint32(0); i < numFuncs; i++ {
		funcRVA, ok := readU32(moduleBase, addrFuncs+i*4, limit)
		if !ok {
			return exports
		}
		if funcRVA == 0 {
			continue
		}
		exports = append(exports, Export{
			Name:           nameByIndex[uint16(i)],
			VirtualAddress: funcRVA,
			Ordinal:        ordinalBase + i,
			Forwarded:      funcRVA >= dir && funcRVA < dir+hdr.exportSize,
		})
	}
	return exports
}
