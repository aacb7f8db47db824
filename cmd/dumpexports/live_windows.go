//go:build windows

package main

import (
	"fmt"

	"github.com/carved4/go-apiresolve/pkg/resolve"
)

func dumpLoaded(name string) error {
	base := resolve.FindModule(name)
	if base == 0 {
		return fmt.Errorf("module %q is not loaded", name)
	}

	exports := resolve.ListExports(base)
	fmt.Printf("%s @ 0x%x: %d exports\n", name, base, len(exports))
	for _, e := range exports {
		label := e.Name
		if label == "" {
			label = "(by ordinal)"
		}
		if e.Forwarded {
			fmt.Printf("%5d  %-40s (forwarded)\n", e.Ordinal, label)
			continue
		}
		fmt.Printf("%5d  %-40s 0x%08x\n", e.Ordinal, label, e.VirtualAddress)
	}

	// cross-check the raw table walk against the debug/pe view of the
	// same mapped memory
	viaPE, err := resolve.ExportsFromImage(base)
	if err != nil {
		return err
	}
	fmt.Printf("debug/pe sees %d named exports\n", len(viaPE))
	return nil
}
