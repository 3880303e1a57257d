package routeros

import (
	"bytes"
	"fmt"

	"github.com/rtician/routeros/proto"
)

// fakeTransport is an in-memory proto.Transport for exercising Session and
// Login without a real socket: bytes the "server" queued to send are in
// in; bytes the "client" wrote accumulate in out.
type fakeTransport struct {
	in     *bytes.Buffer
	out    *bytes.Buffer
	closed bool
}

func newFakeTransport(serverBytes []byte) *fakeTransport {
	return &fakeTransport{in: bytes.NewBuffer(serverBytes), out: &bytes.Buffer{}}
}

func (f *fakeTransport) Write(p []byte) error {
	if f.closed {
		return fmt.Errorf("write on closed transport")
	}
	f.out.Write(p)
	return nil
}

func (f *fakeTransport) Read(n int) ([]byte, error) {
	if f.closed {
		return nil, fmt.Errorf("read on closed transport")
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	read := 0
	for read < n {
		m, err := f.in.Read(buf[read:])
		read += m
		if read >= n {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("connection was closed")
		}
	}
	return buf, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func newTestSession(serverBytes []byte) (*Session, *fakeTransport) {
	ft := newFakeTransport(serverBytes)
	conn := proto.NewConn(ft, proto.ASCII)
	return newSession(conn), ft
}
