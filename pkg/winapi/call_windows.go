//go:build windows

package winapi

import (
	"runtime"
	"syscall"

	"github.com/carved4/go-apiresolve/pkg/errors"
)

// Call invokes a resolved address directly. The resolver only guarantees the
// address is the recorded export entry point; signature, argument count and
// calling convention are the caller's problem.
func Call(addr uintptr, args ...uintptr) (uintptr, error) {
	if addr == 0 {
		return 0, errors.New(errors.ErrCallFailed)
	}

	// Lock the OS thread for call safety
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	r1, _, _ := syscall.SyscallN(addr, args...)
	return r1, nil
}

// CallVariadic converts loosely-typed arguments before dispatching to Call.
func CallVariadic(addr uintptr, args ...interface{}) (uintptr, error) {
	processed := make([]uintptr, len(args))
	for i, arg := range args {
		processed[i] = processArg(arg)
	}
	return Call(addr, processed...)
}
