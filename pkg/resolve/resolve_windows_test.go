//go:build windows

package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"

	"github.com/carved4/go-apiresolve/pkg/obf"
)

func TestFindModuleIgnoresQueryCase(t *testing.T) {
	upper := FindModule("KERNEL32.DLL")
	lower := FindModule("kernel32.dll")
	mixed := FindModule("Kernel32.Dll")

	require.NotZero(t, upper)
	require.Equal(t, upper, lower)
	require.Equal(t, upper, mixed)
}

func TestFindModuleMissing(t *testing.T) {
	require.Zero(t, FindModule("definitely-not-loaded.dll"))
}

func TestGetModuleBaseByHash(t *testing.T) {
	require.Equal(t, FindModule("ntdll.dll"), GetModuleBase(obf.GetHash("NTDLL.DLL")))
}

func TestResolveExportMatchesGetProcAddress(t *testing.T) {
	base := FindModule("kernel32.dll")
	require.NotZero(t, base)

	for _, name := range []string{"GetTickCount", "GetStdHandle", "WriteConsoleA"} {
		want, err := windows.GetProcAddress(windows.Handle(base), name)
		require.NoError(t, err)
		require.Equal(t, want, ResolveExport(base, name), name)
	}
}

func TestResolveExportWithinImage(t *testing.T) {
	base := FindModule("kernel32.dll")
	require.NotZero(t, base)

	var size uintptr
	for _, m := range ListModules() {
		if m.Base == base {
			size = m.Size
		}
	}
	require.NotZero(t, size)

	addr := ResolveExport(base, "WriteConsoleA")
	require.Greater(t, addr, base)
	require.Less(t, addr, base+size)
}

func TestResolveExportAbsentSymbolLive(t *testing.T) {
	base := FindModule("kernel32.dll")
	require.NotZero(t, base)
	require.Zero(t, ResolveExport(base, "NoSuchExportAnywhere"))
}

func TestListModulesSnapshot(t *testing.T) {
	modules := ListModules()
	require.NotEmpty(t, modules)

	var found bool
	for _, m := range modules {
		if m.Base == FindModule("kernel32.dll") {
			found = true
			require.NotZero(t, m.Size)
			require.NotEmpty(t, m.Name)
		}
	}
	require.True(t, found)
}

func TestExportsFromImageAgreesWithRawWalk(t *testing.T) {
	base := FindModule("kernel32.dll")
	require.NotZero(t, base)

	viaPE, err := ExportsFromImage(base)
	require.NoError(t, err)
	require.NotEmpty(t, viaPE)

	raw := make(map[string]uint32)
	for _, e := range ListExports(base) {
		if e.Name != "" {
			raw[e.Name] = e.VirtualAddress
		}
	}
	for _, e := range viaPE {
		require.Equal(t, raw[e.Name], e.VirtualAddress, e.Name)
	}
}
