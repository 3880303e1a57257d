package routeros

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/rtician/routeros/proto"
)

// DefaultPort is the default RouterOS API port.
const DefaultPort = 8728

// connectTimeout is the fixed timeout on the initial TCP connect, per the
// wire protocol's documented behavior: only the connect phase carries a
// deadline, subsequent reads/writes are unbounded unless the caller
// configures the socket itself.
const connectTimeout = 10 * time.Second

// Login opens a connection to host:port, authenticates as username/password,
// and returns a ready-to-use Session. useOldLoginMethod selects the pre-v6.43 MD5 challenge handshake instead of the
// post-v6.43 plaintext-over-the-wire handshake (the wire itself carries no
// transport security here; API-SSL on 8729 is out of this library's scope,
// per spec.md §1).
//
// username and password must be ASCII; the session is opened with ASCII
// word encoding, so a non-ASCII password fails immediately with an
// *EncodingError (from package proto), surfaced unchanged.
func Login(ctx context.Context, username, password, host string, port int, useOldLoginMethod bool) (*Session, error) {
	if port == 0 {
		port = DefaultPort
	}
	transport, err := proto.DialTCP(ctx, host, port, connectTimeout)
	if err != nil {
		return nil, err
	}
	conn := proto.NewConn(transport, proto.ASCII)
	session := newSession(conn)

	if useOldLoginMethod {
		err = loginOldMethod(session, username, password)
	} else {
		err = loginNewMethod(session, username, password)
	}
	if err != nil {
		_ = session.Close()
		return nil, err
	}
	glog.V(1).Infoln("routeros: logged in as", username, "to", host)
	return session, nil
}

// loginNewMethod is the post-v6.43 handshake: name and password are sent
// directly as attributes; the server rejects bad credentials with !trap.
func loginNewMethod(s *Session, username, password string) error {
	_, err := s.CallAttrs("/login", map[string]string{
		"name":     username,
		"password": password,
	})
	return err
}

// loginOldMethod is the pre-v6.43 handshake: a bare /login returns a hex
// challenge token in "ret"; the client MD5-hashes it with the password and
// replies with the computed response.
//
// Per spec.md §9's noted source ambiguity, the token is read from the
// first sentence's attributes regardless of its reply word (the original
// doesn't verify it's !done either), but is validated as well-formed
// even-length hex before being unhexed — a malformed token is a protocol
// problem, not caller misuse, so it surfaces as a *ConnectionError.
func loginOldMethod(s *Session, username, password string) error {
	sentences, err := s.callRaw("/login", nil)
	if err != nil {
		return err
	}
	if len(sentences) == 0 {
		return &ConnectionError{Op: "login", Err: fmt.Errorf("no challenge token in /login reply")}
	}
	token, ok := parseAttributes(sentences[0].Params)["ret"]
	if !ok {
		return &ConnectionError{Op: "login", Err: fmt.Errorf("missing 'ret' attribute in /login reply")}
	}
	response, err := encodePassword(token, password)
	if err != nil {
		return err
	}
	_, err = s.CallAttrs("/login", map[string]string{
		"name":     username,
		"response": response,
	})
	return err
}

// encodePassword computes the pre-v6.43 MD5 challenge response: the
// literal two-character prefix "00" followed by the lowercase hex digest
// of a single NUL byte, the UTF-8 (effectively ASCII here) password bytes,
// and the un-hexed challenge token, in that order.
func encodePassword(token, password string) (string, error) {
	raw, err := hex.DecodeString(token)
	if err != nil {
		return "", &ConnectionError{Op: "login", Err: fmt.Errorf("malformed challenge token %q: %w", token, err)}
	}
	for i := 0; i < len(password); i++ {
		if password[i] > 0x7f {
			return "", &proto.EncodingError{Encoding: "ASCII", Err: fmt.Errorf("non-ASCII byte 0x%02x in password at offset %d", password[i], i)}
		}
	}
	h := md5.New()
	h.Write([]byte{0x00})
	h.Write([]byte(password))
	h.Write(raw)
	return "00" + hex.EncodeToString(h.Sum(nil)), nil
}
