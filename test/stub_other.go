//go:build windows && !amd64

package main

func checkStub(addr uintptr) {}
