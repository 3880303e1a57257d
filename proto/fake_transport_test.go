package proto

import (
	"bytes"
	"fmt"
)

// fakeTransport is an in-memory Transport backed by two byte buffers, one
// for bytes the "server" has queued to be read, one for bytes the "client"
// has written. It lets the wire tests drive specific byte sequences
// without a real socket, the way spec.md's transport abstraction intends.
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
	read, err := f.in.Read(buf)
	if n == 0 {
		return buf, nil
	}
	if read == 0 || err != nil {
		return nil, fmt.Errorf("connection was closed")
	}
	for read < n {
		more, err := f.in.Read(buf[read:])
		if more == 0 || err != nil {
			return nil, fmt.Errorf("connection was closed")
		}
		read += more
	}
	return buf, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}
