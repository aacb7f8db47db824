//go:build !windows

package console

import "golang.org/x/sys/unix"

// WriteString goes straight to the write syscall on fd 1. There is no
// loader walk on the non-windows path.
func WriteString(s string) (int, error) {
	return unix.Write(1, []byte(s))
}
