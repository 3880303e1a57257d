package routeros

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/rtician/routeros/internal/wordutil"
	"github.com/rtician/routeros/proto"
)

// Session is a strictly sequential request/response channel to a RouterOS
// device: one call completes (returns or errors) before the next begins.
// It exclusively owns a *proto.Conn, which exclusively owns the codec and
// transport. Closing a Session closes the underlying transport.
//
// Session is not safe for concurrent use from multiple goroutines; callers
// sharing one across goroutines must serialize access with their own
// sync.Mutex, matching how Conn is documented.
type Session struct {
	conn   *proto.Conn
	closed bool
}

// newSession wraps an already-open *proto.Conn as a Session. Unexported:
// callers obtain a Session through Login.
func newSession(conn *proto.Conn) *Session {
	return &Session{conn: conn}
}

// CallWords sends command with the given positional parameter words and
// returns the accumulated response rows. It replaces the original's
// overloaded call(*words, **attrs) signature (spec's own redesign
// guidance): callers use CallWords for positional words, CallAttrs for
// key/value attributes, never both on the same call.
func (s *Session) CallWords(command string, words ...string) ([]Reply, error) {
	return s.call(command, words)
}

// CallAttrs sends command with attrs composed into "=key=value" words. Map
// iteration order is unspecified; callers relying on word order (which
// RouterOS mostly doesn't care about for attribute words) should use
// CallWords with pre-composed words instead.
func (s *Session) CallAttrs(command string, attrs map[string]string) ([]Reply, error) {
	words := make([]string, 0, len(attrs))
	for k, v := range attrs {
		words = append(words, wordutil.ComposeWord("=", k, v))
	}
	return s.call(command, words)
}

func (s *Session) call(command string, words []string) ([]Reply, error) {
	raw, err := s.callRaw(command, words)
	if err != nil {
		return nil, err
	}
	var rows []Reply
	var traps []Reply
	for _, sentence := range raw {
		switch sentence.Kind {
		case proto.KindTrap:
			traps = append(traps, parseAttributes(sentence.Params))
		case proto.KindRow:
			attrs := parseAttributes(sentence.Params)
			if len(attrs) > 0 {
				rows = append(rows, attrs)
			}
		}
	}
	if len(traps) > 0 {
		return rows, &TrapError{Sentences: traps}
	}
	return rows, nil
}

// callRaw writes command/words and accumulates every sentence received up
// to and including !done, unfiltered. login.go uses this directly: the
// pre-v6.43 handshake needs the challenge token off the first sentence
// even when the server ships it on a bare !done (spec.md §9's noted source
// ambiguity), which call's filtered Reply view would otherwise drop.
//
// Any write or read error is terminal: callRaw closes the underlying conn
// itself (not just the closed flag), so the transport is released even
// though a later Session.Close() - including Login's cleanup after a
// failed handshake - finds s.closed already true and returns nil.
func (s *Session) callRaw(command string, words []string) ([]proto.RawSentence, error) {
	if s.closed {
		return nil, &ConnectionError{Op: "call", Err: fmt.Errorf("session closed")}
	}
	glog.V(1).Infoln("routeros: call", command)
	if err := s.conn.WriteSentence(command, words...); err != nil {
		s.closed = true
		_ = s.conn.Close()
		return nil, err
	}
	var sentences []proto.RawSentence
	for {
		sentence, err := s.conn.ReadSentence()
		if err != nil {
			s.closed = true
			_ = s.conn.Close()
			return nil, err
		}
		sentences = append(sentences, sentence)
		if sentence.Kind == proto.KindDone {
			return sentences, nil
		}
	}
}

// Query returns a Query bound to this Session and command.
func (s *Session) Query(command string) Query {
	return Query{session: s, command: command}
}

// Close closes the underlying transport. Idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
