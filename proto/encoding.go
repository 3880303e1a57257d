package proto

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the character encoding words are interpreted under. The wire
// format itself is oblivious to encoding; it only governs how payload bytes
// are turned into (and back from) a Go string.
type Encoding interface {
	// Encode validates s and returns its byte representation, or an
	// *EncodingError if s contains a character not representable under
	// this encoding.
	Encode(s string) ([]byte, error)
	// Decode validates b and returns the decoded string, or an
	// *EncodingError if b is not valid under this encoding.
	Decode(b []byte) (string, error)
	// Name is used in error messages and logging.
	Name() string
}

// EncodingError is returned when a word's bytes can't be represented (or
// parsed) under the configured Encoding. It propagates unchanged to the
// caller, the way a strict codec error does: it signals caller misuse
// (e.g. a non-ASCII password on an ASCII session), not a wire fault.
type EncodingError struct {
	Encoding string
	Err      error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("routeros/proto: %s encoding error: %v", e.Encoding, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// ASCII is the default, strictly validated word encoding. x/text/encoding
// ships no plain 7-bit ASCII codec (its charmaps are all 8-bit supersets of
// ASCII, which would silently accept the top bit), so the strict byte-range
// check below is a direct range scan rather than a wired third-party
// transformer; see DESIGN.md.
var ASCII Encoding = asciiEncoding{}

// UTF8 permits any well-formed UTF-8 word. Encode goes through x/text's
// UTF-8 codec; Decode first rejects ill-formed input with utf8.Valid and
// then decodes through the same codec.
var UTF8 Encoding = utf8Encoding{enc: unicode.UTF8}

type asciiEncoding struct{}

func (asciiEncoding) Name() string { return "ASCII" }

func (asciiEncoding) Encode(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return nil, &EncodingError{Encoding: "ASCII", Err: fmt.Errorf("byte 0x%02x at offset %d is not ASCII", s[i], i)}
		}
	}
	return []byte(s), nil
}

func (asciiEncoding) Decode(b []byte) (string, error) {
	for i, c := range b {
		if c > 0x7f {
			return "", &EncodingError{Encoding: "ASCII", Err: fmt.Errorf("byte 0x%02x at offset %d is not ASCII", c, i)}
		}
	}
	return string(b), nil
}

type utf8Encoding struct {
	enc encoding.Encoding
}

func (utf8Encoding) Name() string { return "UTF-8" }

func (e utf8Encoding) Encode(s string) ([]byte, error) {
	out, err := e.enc.NewEncoder().String(s)
	if err != nil {
		return nil, &EncodingError{Encoding: "UTF-8", Err: err}
	}
	return []byte(out), nil
}

func (e utf8Encoding) Decode(b []byte) (string, error) {
	// x/text's UTF8 transformer repairs ill-formed sequences with
	// RuneError rather than rejecting them outright, so strictness is
	// enforced here before handing bytes to it.
	if !utf8.Valid(b) {
		return "", &EncodingError{Encoding: "UTF-8", Err: fmt.Errorf("invalid UTF-8 byte sequence")}
	}
	out, err := e.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &EncodingError{Encoding: "UTF-8", Err: err}
	}
	return string(out), nil
}
