//go:build windows && amd64

package resolve

import (
	"fmt"
	"unsafe"

	"golang.org/x/arch/x86/x86asm"
)

// DecodeFirstInst decodes the first instruction at a resolved address.
func DecodeFirstInst(addr uintptr) (x86asm.Inst, error) {
	if addr == 0 {
		return x86asm.Inst{}, fmt.Errorf("null address")
	}
	code := unsafe.Slice((*byte)(unsafe.Pointer(addr)), 16)
	return x86asm.Decode(code, 64)
}

// IsHooked reports whether a resolved export starts with a detour. A clean
// entry point never begins with an unconditional jump or a breakpoint.
func IsHooked(addr uintptr) bool {
	if addr == 0 {
		return false
	}
	if *(*byte)(unsafe.Pointer(addr)) == 0xCC {
		return true
	}
	inst, err := DecodeFirstInst(addr)
	if err != nil {
		return true
	}
	return inst.Op == x86asm.JMP
}
