//go:build windows

package resolve

import (
	"unsafe"

	"github.com/carved4/go-apiresolve/pkg/obf"
)

// GetPEB reads the process environment block pointer out of the reserved
// register for the build architecture (GS on amd64, FS on 386, the TEB
// register on arm64). If the loader layout ever changes, this is the one
// place that breaks; there is no runtime detection.
//
//go:nosplit
//go:noinline
func GetPEB() uintptr

func GetCurrentProcessPEB() *PEB {
	pebAddr := GetPEB()
	if pebAddr == 0 {
		return nil
	}
	peb := (*PEB)(unsafe.Pointer(pebAddr))
	if peb.Ldr == nil {
		return nil
	}
	return peb
}

// GetModuleBase walks the in-load-order module list for an entry whose base
// name hashes to moduleHash (hashes fold case, so the match is case
// insensitive). The list is circular; the walk keeps the head pointer and
// stops when it comes back around, so a miss visits every entry exactly once.
func GetModuleBase(moduleHash uint32) uintptr {
	peb := GetCurrentProcessPEB()
	if peb == nil {
		return 0
	}

	head := &peb.Ldr.InLoadOrderModuleList
	for current := head.Flink; current != nil && current != head; current = current.Flink {
		entry := (*LDR_DATA_TABLE_ENTRY)(unsafe.Pointer(current))
		if obf.HashUTF16(baseDllName(entry)) == moduleHash {
			return entry.DllBase
		}
	}
	return 0
}

// FindModule is GetModuleBase keyed by name instead of hash.
func FindModule(name string) uintptr {
	return GetModuleBase(obf.GetHash(name))
}

// baseDllName returns the Length-bounded wide-character name of a loader
// entry. Loader strings are length-prefixed; the NUL terminator is not
// trusted.
func baseDllName(entry *LDR_DATA_TABLE_ENTRY) []uint16 {
	if entry.BaseDllName.Buffer == nil || entry.BaseDllName.Length == 0 {
		return nil
	}
	return unsafe.Slice(entry.BaseDllName.Buffer, entry.BaseDllName.Length/2)
}

// Module describes one entry of the loader's module list.
type Module struct {
	Name string
	Base uintptr
	Size uintptr
}

// ListModules snapshots the loader list. The walk takes no loader lock, so
// the result is only consistent if nothing loads or unloads concurrently.
func ListModules() []Module {
	peb := GetCurrentProcessPEB()
	if peb == nil {
		return nil
	}

	var modules []Module
	head := &peb.Ldr.InLoadOrderModuleList
	for current := head.Flink; current != nil && current != head; current = current.Flink {
		entry := (*LDR_DATA_TABLE_ENTRY)(unsafe.Pointer(current))
		modules = append(modules, Module{
			Name: utf16BytesToString(baseDllName(entry)),
			Base: entry.DllBase,
			Size: entry.SizeOfImage,
		})
	}
	return modules
}

func utf16BytesToString(b []uint16) string {
	runes := make([]rune, 0, len(b))
	for i := 0; i < len(b); i++ {
		r := rune(b[i])
		if r >= 0xD800 && r <= 0xDBFF && i+1 < len(b) {
			r2 := rune(b[i+1])
			if r2 >= 0xDC00 && r2 <= 0xDFFF {
				r = (r-0xD800)<<10 + (r2 - 0xDC00) + 0x10000
				i++
			}
		}
		runes = append(runes, r)
	}
	return string(runes)
}
