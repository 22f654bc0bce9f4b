package transport

import (
	"bytes"
	"io"
	"net"

	"github.com/indigo-web/cruiser/http"
)

// initialReadCap bounds the preallocation made by ReadExact, so a huge announced length
// doesn't allocate everything in advance.
const initialReadCap = 4096

// Connection is an owned byte stream to a single peer. It is not safe for concurrent use:
// exactly one owner reads, writes and finally closes it.
type Connection struct {
	client  Client
	maxLine int
}

// NewConnection takes the ownership over the client. maxLine limits the number of bytes
// ReadUntil accumulates while looking for a delimiter; 0 disables the limit.
func NewConnection(client Client, maxLine int) *Connection {
	return &Connection{
		client:  client,
		maxLine: maxLine,
	}
}

// ReadExact blocks until exactly n bytes are read. If the stream ends or fails earlier, no
// data is returned at all.
func (c *Connection) ReadExact(n int) ([]byte, error) {
	if c.client == nil {
		return nil, errNoConnection()
	}

	if n < 0 {
		return nil, http.ErrRead.Withf("cannot read %d bytes", n)
	}

	out := make([]byte, 0, min(n, initialReadCap))

	for len(out) < n {
		data, err := c.client.Read()
		if need := n - len(out); len(data) >= need {
			out = append(out, data[:need]...)
			c.client.Pushback(data[need:])
			return out, nil
		}

		out = append(out, data...)
		if err != nil {
			return nil, http.ErrRead.
				Withf("expected %d bytes, got only %d", n, len(out)).
				Wrap(unexpectedEOF(err))
		}
	}

	return out, nil
}

// ReadUntil reads byte by byte until the accumulated data ends with the delimiter. The
// delimiter is included into the result. Everything after it stays in the stream.
func (c *Connection) ReadUntil(delim []byte) ([]byte, error) {
	if c.client == nil {
		return nil, errNoConnection()
	}

	if len(delim) == 0 {
		return nil, http.ErrRead.Withf("empty delimiter")
	}

	line := make([]byte, 0, 64)

	for {
		data, err := c.client.Read()
		for i, char := range data {
			line = append(line, char)
			if bytes.HasSuffix(line, delim) {
				c.client.Pushback(data[i+1:])
				return line, nil
			}

			if c.maxLine > 0 && len(line) >= c.maxLine {
				return nil, http.ErrRead.Withf("no %q found within %d bytes", delim, c.maxLine)
			}
		}

		if err != nil {
			return nil, http.ErrRead.Withf("no %q found", delim).Wrap(unexpectedEOF(err))
		}
	}
}

// Write performs a single write call and returns how many bytes were actually written. It
// doesn't retry, so callers needing the whole buffer to be delivered must either check the
// count or use WriteAll.
func (c *Connection) Write(b []byte) (int, error) {
	if c.client == nil {
		return 0, http.ErrWrite.Wrap(net.ErrClosed)
	}

	n, err := c.client.Write(b)
	if err != nil {
		return n, http.ErrWrite.Wrap(err)
	}

	return n, nil
}

// Remote returns the address of the peer, or nil if there is none.
func (c *Connection) Remote() net.Addr {
	if c.client == nil {
		return nil
	}

	return c.client.Remote()
}

// Close releases the underlying transport. Calling it twice returns net.ErrClosed.
func (c *Connection) Close() error {
	if c.client == nil {
		return net.ErrClosed
	}

	err := c.client.Close()
	c.client = nil

	return err
}

// WriteAll repeats single writes until the whole buffer is delivered. A write making no
// progress without reporting an error is treated as a failure.
func WriteAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}

		if n == 0 {
			return http.ErrWrite.Wrap(io.ErrShortWrite)
		}

		b = b[n:]
	}

	return nil
}

func errNoConnection() error {
	return http.ErrRead.Withf("connection is closed or was never opened")
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}

	return err
}
