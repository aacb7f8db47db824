//go:build windows

package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStdoutResolves(t *testing.T) {
	require.NotZero(t, Stdout())
}

func TestWriteString(t *testing.T) {
	n, err := WriteString("console write through resolved addresses\r\n")
	require.NoError(t, err)
	require.NotZero(t, n)
}

func TestWriteStringEmpty(t *testing.T) {
	n, err := WriteString("")
	require.NoError(t, err)
	require.Zero(t, n)
}
