//go:build windows

package main

import (
	"fmt"
	"os"

	apiresolve "github.com/carved4/go-apiresolve"
	"github.com/carved4/go-apiresolve/pkg/console"
)

func main() {
	module := "kernel32.dll"
	symbol := "WriteConsoleA"
	if len(os.Args) == 3 {
		module, symbol = os.Args[1], os.Args[2]
	}

	base := apiresolve.FindModule(module)
	if base == 0 {
		fmt.Printf("module %s is not loaded\n", module)
		os.Exit(1)
	}
	fmt.Printf("%s @ 0x%x\n", module, base)

	addr, err := apiresolve.Resolve(module, symbol)
	if err != nil {
		fmt.Printf("resolve %s!%s: %v\n", module, symbol, err)
		os.Exit(1)
	}
	fmt.Printf("%s!%s @ 0x%x (+0x%x)\n", module, symbol, addr, addr-base)

	n, err := console.WriteString("hello from the export walker :3\n")
	if err != nil {
		fmt.Printf("console write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d chars through the resolved console path\n", n)
}
