package proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLengthBoundaries(t *testing.T) {
	cases := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{130, []byte{0x80, 0x82}},
		{2097140, []byte{0xdf, 0xff, 0xf4}},
		{268435440, []byte{0xef, 0xff, 0xff, 0xf0}},
	}
	for _, c := range cases {
		got, err := EncodeLength(c.n)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "EncodeLength(%d)", c.n)
	}
}

func TestEncodeLengthOverflow(t *testing.T) {
	_, err := EncodeLength(268435456)
	require.Error(t, err)
}

func TestDetermineLengthTable(t *testing.T) {
	cases := []struct {
		b    byte
		want int
	}{
		{0x78, 0},
		{0xBF, 1},
		{0xDF, 2},
		{0xEF, 3},
	}
	for _, c := range cases {
		got, err := DetermineLength(c.b)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "DetermineLength(0x%02x)", c.b)
	}
}

func TestDetermineLengthFailsAboveF0(t *testing.T) {
	_, err := DetermineLength(0xF0)
	require.Error(t, err)
}

func TestEncodeDecodeLengthRoundTrip(t *testing.T) {
	sample := []int{0, 1, 127, 128, 0x3fff, 0x4000, 0x1fffff, 0x200000, 0xfffffff}
	for _, n := range sample {
		enc, err := EncodeLength(n)
		require.NoError(t, err)

		extra, err := DetermineLength(enc[0])
		require.NoError(t, err)
		assert.Equal(t, len(enc)-1, extra, "prefix size mismatch for %d", n)

		got, err := DecodeBytes(enc)
		require.NoError(t, err)
		assert.Equal(t, n, got, "round trip for %d", n)
	}
}

func TestDecodeBytesRejectsBadLength(t *testing.T) {
	_, err := DecodeBytes(nil)
	require.Error(t, err)
	_, err = DecodeBytes([]byte{1, 2, 3, 4, 5})
	require.Error(t, err)
}

func TestSentenceDecodeASCII(t *testing.T) {
	buf := []byte("\x11/ip/address/print\x05first\x06second")
	words, err := DecodeSentence(ASCII, buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"/ip/address/print", "first", "second"}, words)
}

func TestSentenceDecodeUTF8(t *testing.T) {
	buf := append([]byte("\x12/ip/addres\xc5\x82/print"), []byte("\x05first\x06second")...)
	words, err := DecodeSentence(UTF8, buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"/ip/addresł/print", "first", "second"}, words)

	_, err = DecodeSentence(ASCII, buf)
	assert.Error(t, err)
}

func TestEncodeSentenceRoundTrip(t *testing.T) {
	encoded, err := EncodeSentence(ASCII, "/ip/address/print", "first", "second")
	require.NoError(t, err)
	require.True(t, bytes.HasSuffix(encoded, []byte{0x00}))

	words, err := DecodeSentence(ASCII, encoded[:len(encoded)-1])
	require.NoError(t, err)
	assert.Equal(t, []string{"/ip/address/print", "first", "second"}, words)
}

func TestEncodeWordRejectsNonASCII(t *testing.T) {
	_, err := EncodeWord(ASCII, "addresł")
	require.Error(t, err)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
}
