//go:build windows

package apiresolve

import (
	"github.com/carved4/go-apiresolve/pkg/errors"
	"github.com/carved4/go-apiresolve/pkg/resolve"
	"github.com/carved4/go-apiresolve/pkg/winapi"
)

var GetModuleBase = resolve.GetModuleBase
var FindModule = resolve.FindModule
var ListModules = resolve.ListModules

func UTF16PtrFromString(s string) (*uint16, error) {
	return winapi.UTF16PtrFromString(s)
}

var ReadUTF16String = winapi.ReadUTF16String
var ReadANSIString = winapi.ReadANSIString

// Resolve locates a symbol in an already-loaded module. Where pkg/resolve
// collapses every miss into a zero sentinel, the facade splits the outcome
// into module-not-found, bad-image and symbol-not-found codes.
func Resolve(moduleName, symbolName string) (uintptr, error) {
	moduleBase := resolve.FindModule(moduleName)
	if moduleBase == 0 {
		return 0, errors.New(errors.ErrModuleNotFound)
	}
	if !resolve.CheckImage(moduleBase) {
		return 0, errors.New(errors.ErrBadImage)
	}
	funcAddr := resolve.ResolveExport(moduleBase, symbolName)
	if funcAddr == 0 {
		return 0, errors.New(errors.ErrSymbolNotFound)
	}
	return funcAddr, nil
}

// Call resolves and invokes in one step. The module must already be loaded;
// nothing here falls back to LoadLibrary.
func Call(moduleName, funcName string, args ...interface{}) (uintptr, error) {
	funcAddr, err := Resolve(moduleName, funcName)
	if err != nil {
		return 0, err
	}
	return winapi.CallVariadic(funcAddr, args...)
}
