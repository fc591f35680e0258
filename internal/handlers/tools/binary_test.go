package tools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeBinary(t *testing.T) {
	require.Equal(t, "01001000 01101001", encodeBinary("Hi"))
}

func TestDecodeBinary(t *testing.T) {
	out, err := decodeBinary("01001000 01101001")
	require.NoError(t, err)
	require.Equal(t, "Hi", out)

	_, err = decodeBinary("01001000 needle")
	require.Error(t, err)
}

func TestLooksBinary(t *testing.T) {
	require.True(t, looksBinary("0100 1111"))
	require.False(t, looksBinary("hello"))
	require.False(t, looksBinary("   "))
}

func TestBinaryRoundTrip(t *testing.T) {
	in := "chat bots are serious business"
	out, err := decodeBinary(encodeBinary(in))
	require.NoError(t, err)
	require.Equal(t, in, out)
}
