package proto

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/golang/glog"
)

// Transport is the narrow blocking byte-stream contract the core depends
// on. A concrete TCP socket, an API-SSL (TLS) socket, or an in-memory pipe
// for tests can all satisfy it.
type Transport interface {
	// Write sends all of p or fails with a connection error.
	Write(p []byte) error
	// Read blocks until exactly n bytes are available, looping on short
	// reads internally, or fails with a connection error. A zero-byte
	// read from the underlying stream is reported as a closed connection.
	Read(n int) ([]byte, error)
	// Close performs a best-effort orderly shutdown then releases the
	// resource. It never returns an error the caller must act on.
	Close() error
}

// ConnectionError reports a transport- or framing-level failure: I/O error, peer
// close, or a malformed length prefix. It is always terminal for the
// owning Conn/Session.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("routeros: %s", e.Op)
	}
	return fmt.Sprintf("routeros: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// FatalError reports a server-sent !fatal sentence. It is always terminal;
// the transport is closed before this error surfaces to the caller.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string { return fmt.Sprintf("routeros: fatal: %s", e.Reason) }

// ReplyKind classifies a decoded sentence's reply word into a closed set,
// so call sites switch on a tagged variant rather than comparing strings
// (spec's reply-classification redesign guidance). The raw string is kept
// alongside it at ingress.
type ReplyKind int

const (
	KindUnknown ReplyKind = iota
	KindRow               // !re
	KindDone              // !done
	KindTrap              // !trap
	KindFatal             // !fatal
)

func classify(word string) ReplyKind {
	switch word {
	case "!re":
		return KindRow
	case "!done":
		return KindDone
	case "!trap":
		return KindTrap
	case "!fatal":
		return KindFatal
	default:
		return KindUnknown
	}
}

// RawSentence is a decoded sentence before attribute-word parsing: the
// reply word, its classification, and the remaining parameter words.
type RawSentence struct {
	Word   string
	Kind   ReplyKind
	Params []string
}

// Conn owns a Transport and an Encoding and speaks one sentence at a time.
// It is the framing layer: write one sentence, read one sentence word by
// word until the end-of-sentence sentinel. Conn is not safe for concurrent
// use; a session using it must serialize calls (see package routeros).
type Conn struct {
	Transport Transport
	Encoding  Encoding
	closed    bool
}

// NewConn binds a Transport and Encoding into a Conn.
func NewConn(t Transport, enc Encoding) *Conn {
	return &Conn{Transport: t, Encoding: enc}
}

// WriteSentence encodes command and words as one sentence and writes it in
// a single Transport.Write call. Partial writes are the transport's
// concern; Transport.Write loops until complete or fails. A word that
// can't be represented under the encoding surfaces unchanged as the
// *EncodingError it already is; any other encode failure (in practice,
// a word whose length overflows the wire's length-prefix range) is a
// framing-level fault and is reported as a *ConnectionError.
func (c *Conn) WriteSentence(command string, words ...string) error {
	if c.closed {
		return &ConnectionError{Op: "write", Err: fmt.Errorf("connection closed")}
	}
	encoded, err := EncodeSentence(c.Encoding, command, words...)
	if err != nil {
		var encErr *EncodingError
		if errors.As(err, &encErr) {
			return err
		}
		return &ConnectionError{Op: "write", Err: err}
	}
	glog.V(2).Infoln("routeros: writing sentence", command, words)
	if err := c.Transport.Write(encoded); err != nil {
		return &ConnectionError{Op: "write", Err: err}
	}
	return nil
}

// ReadWord reads exactly one word: its length prefix, then its payload.
// The zero-length end-of-sentence sentinel is reported as ("", true).
func (c *Conn) ReadWord() (word string, eos bool, err error) {
	first, err := c.Transport.Read(1)
	if err != nil {
		return "", false, &ConnectionError{Op: "read", Err: err}
	}
	extra, err := DetermineLength(first[0])
	if err != nil {
		return "", false, &ConnectionError{Op: "read", Err: err}
	}
	prefix := first
	if extra > 0 {
		rest, err := c.Transport.Read(extra)
		if err != nil {
			return "", false, &ConnectionError{Op: "read", Err: err}
		}
		prefix = append(prefix, rest...)
	}
	length, err := DecodeBytes(prefix)
	if err != nil {
		return "", false, &ConnectionError{Op: "read", Err: err}
	}
	if length == 0 {
		return "", true, nil
	}
	payload, err := c.Transport.Read(length)
	if err != nil {
		return "", false, &ConnectionError{Op: "read", Err: err}
	}
	decoded, err := DecodeWord(c.Encoding, payload)
	if err != nil {
		return "", false, err
	}
	return decoded, false, nil
}

// ReadSentence reads words until the end-of-sentence sentinel. If the
// reply word is !fatal, it closes the transport and returns a *FatalError
// carrying the server's reason (the first parameter word).
func (c *Conn) ReadSentence() (RawSentence, error) {
	if c.closed {
		return RawSentence{}, &ConnectionError{Op: "read", Err: fmt.Errorf("connection closed")}
	}
	var words []string
	for {
		word, eos, err := c.ReadWord()
		if err != nil {
			return RawSentence{}, err
		}
		if eos {
			break
		}
		words = append(words, word)
	}
	if len(words) == 0 {
		return RawSentence{}, nil
	}
	sentence := RawSentence{Word: words[0], Kind: classify(words[0]), Params: words[1:]}
	glog.V(2).Infoln("routeros: read sentence", sentence.Word, sentence.Params)
	if sentence.Kind == KindFatal {
		c.closed = true
		_ = c.Transport.Close()
		reason := ""
		if len(sentence.Params) > 0 {
			reason = sentence.Params[0]
		}
		return sentence, &FatalError{Reason: reason}
	}
	return sentence, nil
}

// Close releases the underlying transport. Idempotent.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.Transport.Close()
}

// tcpTransport is the reference Transport: a TCP socket with blocking,
// loop-until-complete reads and writes.
type tcpTransport struct {
	conn net.Conn
}

// DialTCP opens a TCP connection to host:port with the given connect
// timeout and returns it wrapped as a Transport. Dial failures surface as
// a *ConnectionError.
func DialTCP(ctx context.Context, host string, port int, timeout time.Duration) (Transport, error) {
	dialer := &net.Dialer{Timeout: timeout}
	address := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, &ConnectionError{Op: "dial", Err: err}
	}
	return &tcpTransport{conn: conn}, nil
}

func (t *tcpTransport) Write(p []byte) error {
	_, err := t.conn.Write(p)
	if err != nil {
		return &ConnectionError{Op: "write", Err: err}
	}
	return nil
}

func (t *tcpTransport) Read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(t.conn, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, &ConnectionError{Op: "read", Err: fmt.Errorf("connection was closed")}
		}
		return nil, &ConnectionError{Op: "read", Err: err}
	}
	return buf, nil
}

func (t *tcpTransport) Close() error {
	// inform the other end we will not read or write any more; a shutdown
	// error (already closed, not connected) is swallowed the same way the
	// reference Socket transport swallows it.
	if tcp, ok := t.conn.(*net.TCPConn); ok {
		_ = tcp.CloseWrite()
	}
	return t.conn.Close()
}
