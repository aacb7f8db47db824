package resolve

import (
	"fmt"
	"unsafe"

	"github.com/Binject/debug/pe"
)

// ExportsFromImage enumerates the named exports of a mapped image through
// debug/pe instead of the raw table walk. It is the cross-check view used by
// the inspection tooling; ResolveExport never goes through it.
func ExportsFromImage(moduleBase uintptr) ([]Export, error) {
	hdr, ok := parseHeader(moduleBase)
	if !ok {
		return nil, fmt.Errorf("no PE image at 0x%x", moduleBase)
	}

	dataSlice := unsafe.Slice((*byte)(unsafe.Pointer(moduleBase)), hdr.sizeOfImage)

	file, err := pe.NewFileFromMemory(&memoryReaderAt{data: dataSlice})
	if err != nil {
		return nil, err
	}
	defer file.Close()

	exports, err := file.Exports()
	if err != nil {
		return nil, err
	}

	out := make([]Export, 0, len(exports))
	for _, export := range exports {
		if export.Name == "" {
			continue
		}
		out = append(out, Export{
			Name:           export.Name,
			VirtualAddress: export.VirtualAddress,
			Forwarded:      export.VirtualAddress >= hdr.exportRVA && export.VirtualAddress < hdr.exportRVA+hdr.exportSize,
		})
	}
	return out, nil
}

type memoryReaderAt struct {
	data []byte
}

func (r *memoryReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 || off >= int64(len(r.data)) {
		return 0, fmt.Errorf("offset out of range")
	}
	n = copy(p, r.data[off:])
	if n < len(p) {
		err = fmt.Errorf("EOF")
	}
	return n, err
}
