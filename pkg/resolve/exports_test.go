package resolve

import (
	"encoding/binary"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/carved4/go-apiresolve/pkg/obf"
)

func put16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:], v)
}

func put32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:], v)
}

// buildImage lays out a minimal PE32+ image with an export directory of four
// functions and three names. The ordinal table is deliberately shuffled
// (name[0] pairs ordinal 1, name[1] pairs ordinal 0) so cross-table index
// drift shows up immediately. Function 2 points back into the export
// directory, which is how the format encodes a forwarder.
func buildImage() []byte {
	img := make([]byte, 0x600)

	img[0] = 'M'
	img[1] = 'Z'
	put32(img, 0x3C, 0x80)

	img[0x80] = 'P'
	img[0x81] = 'E'

	put16(img, 0x84, 0x8664) // Machine
	put16(img, 0x94, 240)    // SizeOfOptionalHeader

	put16(img, 0x98, 0x20b)   // PE32+
	put32(img, 0x98+56, 0x600) // SizeOfImage
	put32(img, 0x98+112, 0x200) // export directory RVA
	put32(img, 0x98+116, 0x100) // export directory size

	put32(img, 0x210, 1)     // Base
	put32(img, 0x214, 4)     // NumberOfFunctions
	put32(img, 0x218, 3)     // NumberOfNames
	put32(img, 0x21C, 0x240) // AddressOfFunctions
	put32(img, 0x220, 0x260) // AddressOfNames
	put32(img, 0x224, 0x270) // AddressOfNameOrdinals

	put32(img, 0x240, 0x400) // ordinal 0
	put32(img, 0x244, 0x410) // ordinal 1
	put32(img, 0x248, 0x250) // ordinal 2: inside the export dir -> forwarded
	put32(img, 0x24C, 0x420) // ordinal 3: exported by ordinal only

	put32(img, 0x260, 0x280) // "Alpha"
	put32(img, 0x264, 0x290) // "Beta"
	put32(img, 0x268, 0x2A0) // "Fwd"

	put16(img, 0x270, 1)
	put16(img, 0x272, 0)
	put16(img, 0x274, 2)

	copy(img[0x280:], "Alpha\x00")
	copy(img[0x290:], "Beta\x00")
	copy(img[0x2A0:], "Fwd\x00")
	copy(img[0x250:], "OTHER.Func\x00")

	return img
}

func imageBase(img []byte) uintptr {
	return uintptr(unsafe.Pointer(&img[0]))
}

func TestResolveExportPairsParallelTables(t *testing.T) {
	img := buildImage()
	base := imageBase(img)

	// Alpha sits at name index 0 but ordinal 1; Beta the other way around.
	require.Equal(t, base+0x410, ResolveExport(base, "Alpha"))
	require.Equal(t, base+0x400, ResolveExport(base, "Beta"))
	runtime.KeepAlive(img)
}

func TestResolveExportCaseSensitive(t *testing.T) {
	img := buildImage()
	base := imageBase(img)

	require.Zero(t, ResolveExport(base, "alpha"))
	require.Zero(t, ResolveExport(base, "BETA"))
	runtime.KeepAlive(img)
}

func TestResolveExportMissingSymbol(t *testing.T) {
	img := buildImage()
	base := imageBase(img)

	require.Zero(t, ResolveExport(base, "Gamma"))
	require.Zero(t, ResolveExport(base, "Alph"))
	require.Zero(t, ResolveExport(base, "Alphaa"))
	runtime.KeepAlive(img)
}

func TestResolveExportForwardedSymbol(t *testing.T) {
	img := buildImage()
	base := imageBase(img)

	require.Zero(t, ResolveExport(base, "Fwd"))
	runtime.KeepAlive(img)
}

func TestResolveExportBadSignatures(t *testing.T) {
	img := buildImage()
	img[0] = 'X'
	require.Zero(t, ResolveExport(imageBase(img), "Alpha"))
	require.False(t, CheckImage(imageBase(img)))
	runtime.KeepAlive(img)

	img = buildImage()
	img[0x80] = 'Q'
	require.Zero(t, ResolveExport(imageBase(img), "Alpha"))
	runtime.KeepAlive(img)

	// unknown optional-header magic
	img = buildImage()
	put16(img, 0x98, 0x30b)
	require.Zero(t, ResolveExport(imageBase(img), "Alpha"))
	runtime.KeepAlive(img)
}

func TestResolveExportDeterministic(t *testing.T) {
	img := buildImage()
	base := imageBase(img)

	first := ResolveExport(base, "Alpha")
	second := ResolveExport(base, "Alpha")
	require.NotZero(t, first)
	require.Equal(t, first, second)
	runtime.KeepAlive(img)
}

func TestGetFunctionAddressByHash(t *testing.T) {
	img := buildImage()
	base := imageBase(img)

	require.Equal(t, base+0x400, GetFunctionAddress(base, obf.GetSymbolHash("Beta")))
	// symbol hashes are case exact
	require.Zero(t, GetFunctionAddress(base, obf.GetSymbolHash("beta")))
	runtime.KeepAlive(img)
}

func TestListExports(t *testing.T) {
	img := buildImage()
	base := imageBase(img)

	exports := ListExports(base)
	require.Len(t, exports, 4)

	byName := make(map[string]Export)
	for _, e := range exports {
		byName[e.Name] = e
	}

	require.Equal(t, uint32(0x410), byName["Alpha"].VirtualAddress)
	require.Equal(t, uint32(2), byName["Alpha"].Ordinal)
	require.Equal(t, uint32(0x400), byName["Beta"].VirtualAddress)
	require.Equal(t, uint32(1), byName["Beta"].Ordinal)
	require.True(t, byName["Fwd"].Forwarded)

	// the ordinal-only export has no name
	require.Equal(t, uint32(0x420), byName[""].VirtualAddress)
	require.Equal(t, uint32(4), byName[""].Ordinal)
	runtime.KeepAlive(img)
}

func TestCheckImage(t *testing.T) {
	img := buildImage()
	require.True(t, CheckImage(imageBase(img)))
	require.False(t, CheckImage(0))
	runtime.KeepAlive(img)
}
