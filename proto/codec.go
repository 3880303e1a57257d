// Package proto implements the MikroTik RouterOS API wire format: the
// variable-length size prefix, word framing, and sentence encode/decode.
// The codec itself is oblivious to word kinds (command, attribute, query,
// reply); classification happens one layer up, in the routeros package.
package proto

import (
	"fmt"
)

// maxLength is 2^28 - 1, the largest payload length the four-byte prefix
// class can represent.
const maxLength = 1<<28 - 1

// EncodeLength returns the canonical, minimal-byte big-endian length prefix
// for n. It fails for n >= 2^28; the wire format has no prefix class able
// to carry it.
func EncodeLength(n int) ([]byte, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("routeros/proto: negative length %d", n)
	case n < 0x80:
		return []byte{byte(n)}, nil
	case n < 0x4000:
		n |= 0x8000
		return []byte{byte(n >> 8), byte(n)}, nil
	case n < 0x200000:
		n |= 0xC00000
		return []byte{byte(n >> 16), byte(n >> 8), byte(n)}, nil
	case n <= maxLength:
		n |= 0xE0000000
		return []byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}, nil
	default:
		return nil, fmt.Errorf("routeros/proto: unable to encode length %d: exceeds %d", n, maxLength)
	}
}

// DecodeBytes inverts EncodeLength: given 1-4 bytes already known to form a
// complete length prefix, it returns the encoded length. Inputs of length 0
// or >= 5 are protocol errors.
func DecodeBytes(b []byte) (int, error) {
	switch len(b) {
	case 1:
		return int(b[0]), nil
	case 2:
		n := int(b[0])<<8 | int(b[1])
		return n &^ 0x8000, nil
	case 3:
		n := int(b[0])<<16 | int(b[1])<<8 | int(b[2])
		return n &^ 0xC00000, nil
	case 4:
		n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
		return n &^ 0xE0000000, nil
	default:
		return 0, fmt.Errorf("routeros/proto: unable to decode length from %d bytes", len(b))
	}
}

// DetermineLength returns the number of additional bytes that must be read
// to complete a length prefix whose first byte is first. It fails for
// first >= 0xF0: the wire format defines no fifth prefix class.
func DetermineLength(first byte) (int, error) {
	switch {
	case first < 0x80:
		return 0, nil
	case first < 0xC0:
		return 1, nil
	case first < 0xE0:
		return 2, nil
	case first < 0xF0:
		return 3, nil
	default:
		return 0, fmt.Errorf("routeros/proto: unknown control byte 0x%02x", first)
	}
}

// EncodeWord encodes a single word: its length prefix followed by its
// bytes under enc. A word bearing characters not representable under enc
// fails with an *EncodingError.
func EncodeWord(enc Encoding, word string) ([]byte, error) {
	payload, err := enc.Encode(word)
	if err != nil {
		return nil, err
	}
	prefix, err := EncodeLength(len(payload))
	if err != nil {
		return nil, err
	}
	return append(prefix, payload...), nil
}

// DecodeWord decodes a single word's payload bytes (length prefix already
// consumed) under enc.
func DecodeWord(enc Encoding, payload []byte) (string, error) {
	return enc.Decode(payload)
}

// EncodeSentence encodes command followed by words as a full sentence:
// each word length-prefixed, terminated by the zero-length EOS byte.
func EncodeSentence(enc Encoding, command string, words ...string) ([]byte, error) {
	var out []byte
	allWords := append([]string{command}, words...)
	for _, w := range allWords {
		encoded, err := EncodeWord(enc, w)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded...)
	}
	return append(out, 0x00), nil
}

// DecodeSentence decodes a complete in-memory buffer of length-prefixed
// words (with the terminating EOS byte already stripped) into the ordered
// tuple of decoded words. It is used for offline/testing round-trips; on
// the wire, decoding is streamed word-by-word through Conn.ReadSentence.
func DecodeSentence(enc Encoding, buf []byte) ([]string, error) {
	var words []string
	pos := 0
	for pos < len(buf) {
		extra, err := DetermineLength(buf[pos])
		if err != nil {
			return nil, err
		}
		end := pos + 1 + extra
		if end > len(buf) {
			return nil, fmt.Errorf("routeros/proto: truncated length prefix at offset %d", pos)
		}
		length, err := DecodeBytes(buf[pos:end])
		if err != nil {
			return nil, err
		}
		payloadEnd := end + length
		if payloadEnd > len(buf) {
			return nil, fmt.Errorf("routeros/proto: truncated word payload at offset %d", end)
		}
		word, err := DecodeWord(enc, buf[end:payloadEnd])
		if err != nil {
			return nil, err
		}
		words = append(words, word)
		pos = payloadEnd
	}
	return words, nil
}
