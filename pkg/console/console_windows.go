//go:build windows

package console

import (
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/carved4/go-apiresolve/pkg/errors"
	"github.com/carved4/go-apiresolve/pkg/obf"
	"github.com/carved4/go-apiresolve/pkg/resolve"
	"github.com/carved4/go-apiresolve/pkg/winapi"
)

var (
	getStdHandleAddr  uintptr
	writeConsoleAAddr uintptr
	writeFileAddr     uintptr
	initOnce          sync.Once
)

func initAddresses() {
	kernel32Base := resolve.GetModuleBase(obf.GetHash("kernel32.dll"))
	if kernel32Base == 0 {
		return
	}
	getStdHandleAddr = resolve.ResolveExport(kernel32Base, "GetStdHandle")
	writeConsoleAAddr = resolve.ResolveExport(kernel32Base, "WriteConsoleA")
	writeFileAddr = resolve.ResolveExport(kernel32Base, "WriteFile")
}

// Stdout returns the standard output handle through the resolved
// GetStdHandle rather than the import table.
func Stdout() uintptr {
	initOnce.Do(initAddresses)
	if getStdHandleAddr == 0 {
		return 0
	}
	h, _ := winapi.Call(getStdHandleAddr, uintptr(windows.STD_OUTPUT_HANDLE))
	return h
}

// WriteConsole writes s to a console handle via the resolved WriteConsoleA
// and returns the written-character count the API reported.
func WriteConsole(handle uintptr, s string) (uint32, error) {
	initOnce.Do(initAddresses)
	if writeConsoleAAddr == 0 {
		return 0, errors.New(errors.ErrSymbolNotFound)
	}
	if len(s) == 0 {
		return 0, nil
	}

	buf := []byte(s)
	var written uint32
	r1, err := winapi.Call(writeConsoleAAddr,
		handle,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		uintptr(unsafe.Pointer(&written)),
		0,
	)
	runtime.KeepAlive(buf)
	if err != nil {
		return 0, err
	}
	if r1 == 0 {
		return 0, errors.New(errors.ErrCallFailed)
	}
	return written, nil
}

// WriteFileHandle writes s through the resolved WriteFile; WriteConsoleA
// fails on redirected handles and this is the fallback for them.
func WriteFileHandle(handle uintptr, s string) (uint32, error) {
	initOnce.Do(initAddresses)
	if writeFileAddr == 0 {
		return 0, errors.New(errors.ErrSymbolNotFound)
	}
	if len(s) == 0 {
		return 0, nil
	}

	buf := []byte(s)
	var written uint32
	r1, err := winapi.Call(writeFileAddr,
		handle,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		uintptr(unsafe.Pointer(&written)),
		0,
	)
	runtime.KeepAlive(buf)
	if err != nil {
		return 0, err
	}
	if r1 == 0 {
		return 0, errors.New(errors.ErrCallFailed)
	}
	return written, nil
}

// WriteString writes s to standard output using only resolved addresses.
func WriteString(s string) (int, error) {
	h := Stdout()
	if h == 0 {
		return 0, errors.New(errors.ErrSymbolNotFound)
	}
	n, err := WriteConsole(h, s)
	if err != nil && errors.IsCode(err, errors.ErrCallFailed) {
		n, err = WriteFileHandle(h, s)
	}
	return int(n), err
}
