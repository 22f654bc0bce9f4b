package http1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	for _, tc := range []struct {
		Input string
		Want  uint64
	}{
		{"0", 0},
		{"5", 5},
		{"a", 10},
		{"F", 15},
		{"1f", 31},
		{"00ff", 255},
		{"DeadBeef", 0xdeadbeef},
		{"ffffffffffffffff", 1<<64 - 1},
	} {
		n, ok := parseHex([]byte(tc.Input))
		require.True(t, ok, tc.Input)
		require.Equal(t, tc.Want, n, tc.Input)
	}

	for _, input := range []string{
		"", "zz", "5 ", " 5", "0x5", "-1", "+1", "5;ext=1", "1g", "10000000000000000",
	} {
		_, ok := parseHex([]byte(input))
		require.False(t, ok, input)
	}
}
