//go:build windows

package main

import (
	"fmt"
	"os"

	apiresolve "github.com/carved4/go-apiresolve"
	"github.com/carved4/go-apiresolve/pkg/console"
	"github.com/carved4/go-apiresolve/pkg/errors"
)

var failed int

func check(name string, ok bool, detail string) {
	if ok {
		fmt.Printf("[PASS] %s\n", name)
		return
	}
	failed++
	fmt.Printf("[FAIL] %s: %s\n", name, detail)
}

func main() {
	fmt.Println("go-apiresolve smoke test :3")

	upper := apiresolve.FindModule("KERNEL32.DLL")
	lower := apiresolve.FindModule("kernel32.dll")
	check("module lookup ignores query case", upper != 0 && upper == lower,
		fmt.Sprintf("upper=0x%x lower=0x%x", upper, lower))

	missing := apiresolve.FindModule("no-such-module.dll")
	check("miss terminates after one circuit", missing == 0,
		fmt.Sprintf("got 0x%x", missing))

	addr, err := apiresolve.Resolve("kernel32.dll", "WriteConsoleA")
	check("WriteConsoleA resolves", err == nil && addr != 0, fmt.Sprint(err))

	var size uintptr
	for _, m := range apiresolve.ListModules() {
		if m.Base == lower {
			size = m.Size
		}
	}
	check("resolved address inside mapped image", addr > lower && addr < lower+size,
		fmt.Sprintf("addr=0x%x base=0x%x size=0x%x", addr, lower, size))

	again, _ := apiresolve.Resolve("kernel32.dll", "WriteConsoleA")
	check("resolution is idempotent", again == addr,
		fmt.Sprintf("first=0x%x second=0x%x", addr, again))

	_, err = apiresolve.Resolve("kernel32.dll", "NoSuchExport")
	check("absent symbol is a symbol-not-found miss",
		errors.IsCode(err, errors.ErrSymbolNotFound), fmt.Sprint(err))

	// exact compare: exports are case sensitive
	wrongCase := apiresolve.ResolveExport(lower, "writeconsolea")
	check("symbol compare is case sensitive", wrongCase == 0,
		fmt.Sprintf("got 0x%x", wrongCase))

	n, err := console.WriteString("end-to-end write through the resolved console path\n")
	check("end-to-end console write", err == nil && n > 0, fmt.Sprint(err))

	checkStub(addr)

	if failed > 0 {
		fmt.Printf("%d checks failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("all checks passed")
}
