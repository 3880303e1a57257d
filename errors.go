package routeros

import (
	"strconv"

	"github.com/rtician/routeros/proto"
)

// ConnectionError reports a transport- or framing-level failure: an I/O
// error, a peer close, a malformed length prefix, or a length overflow on
// encode. It is always terminal for the Session. ConnectionError is a
// type alias for proto.ConnectionError: Framing (package proto) raises it
// directly, as spec'd, and callers never need to import proto to match on
// it with errors.As.
type ConnectionError = proto.ConnectionError

// FatalError reports a server-sent !fatal sentence. It is always terminal;
// the transport is closed before this error surfaces. FatalError is a type
// alias for proto.FatalError, for the same reason as ConnectionError.
type FatalError = proto.FatalError

// TrapError reports one or more server-sent !trap sentences within an
// otherwise well-formed response. Unlike ConnectionError and FatalError it
// is not terminal: the Session remains usable for subsequent calls. It is
// raised only after the response has been fully drained to !done.
type TrapError struct {
	// Sentences holds every !trap sentence observed in the response, in
	// the order received.
	Sentences []Reply
}

func (e *TrapError) Error() string {
	if len(e.Sentences) == 0 {
		return "routeros: trap"
	}
	msg := e.Sentences[0]["message"]
	if len(e.Sentences) == 1 {
		return "routeros: trap: " + msg
	}
	return "routeros: trap (first of " + strconv.Itoa(len(e.Sentences)) + "): " + msg
}
