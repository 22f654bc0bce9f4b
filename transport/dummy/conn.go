package dummy

import (
	"io"
	"net"
	"time"
)

var _ net.Conn = new(Conn)

// Conn serves the given pieces one per Read and journals everything written into it.
// Deadlines are recorded, but never fire.
type Conn struct {
	Data          []byte
	reads         [][]byte
	ReadDeadline  time.Time
	WriteDeadline time.Time
}

func NewConn(reads ...[]byte) *Conn {
	return &Conn{reads: reads}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if len(c.reads) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.reads[0])
	if n < len(c.reads[0]) {
		c.reads[0] = c.reads[0][n:]
	} else {
		c.reads = c.reads[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.Data = append(c.Data, b...)
	return len(b), nil
}

func (c *Conn) Close() error {
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}
}

func (c *Conn) SetDeadline(t time.Time) error {
	c.ReadDeadline, c.WriteDeadline = t, t
	return nil
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	c.ReadDeadline = t
	return nil
}

func (c *Conn) SetWriteDeadline(t time.Time) error {
	c.WriteDeadline = t
	return nil
}
