//go:build windows && amd64

package main

import "github.com/carved4/go-apiresolve/pkg/resolve"

func checkStub(addr uintptr) {
	check("resolved entry point decodes clean", !resolve.IsHooked(addr),
		"first instruction is a detour")
}
