//go:build !windows

package main

import "fmt"

func dumpLoaded(name string) error {
	return fmt.Errorf("live module inspection requires windows")
}
