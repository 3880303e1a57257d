package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCIIEncodeRejectsHighBit(t *testing.T) {
	_, err := ASCII.Encode("addresł")
	require.Error(t, err)
}

func TestASCIIRoundTrip(t *testing.T) {
	b, err := ASCII.Encode("/ip/address/print")
	require.NoError(t, err)
	s, err := ASCII.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "/ip/address/print", s)
}

func TestUTF8AllowsNonASCII(t *testing.T) {
	b, err := UTF8.Encode("/ip/addresł/print")
	require.NoError(t, err)
	s, err := UTF8.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "/ip/addresł/print", s)
}

func TestUTF8RejectsInvalidBytes(t *testing.T) {
	_, err := UTF8.Decode([]byte{0xff, 0xfe})
	require.Error(t, err)
}
