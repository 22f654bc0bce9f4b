package transport

import (
	"io"
	"net"
	"time"

	"github.com/indigo-web/cruiser/config"
)

const (
	// defaultReadBufferSize replaces non-positive configured sizes, as reading into an empty
	// buffer never makes progress.
	defaultReadBufferSize = 4096
	// maxEmptyReads consecutive reads returning neither data nor error are io.ErrNoProgress.
	maxEmptyReads = 100
)

type Client interface {
	// Read returns either data or an error, never both. The data is valid until the next call.
	Read() ([]byte, error)
	Pushback([]byte)
	Write([]byte) (int, error)
	Remote() net.Addr
	Close() error
}

type client struct {
	conn                      net.Conn
	buff                      []byte
	pending                   []byte
	err                       error
	readTimeout, writeTimeout time.Duration
}

func NewClient(conn net.Conn, cfg config.NET) Client {
	size := cfg.ReadBufferSize
	if size <= 0 {
		size = defaultReadBufferSize
	}

	return &client{
		conn:         conn,
		buff:         make([]byte, size),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. The returned slice
// is valid only until the next call. Timeouts are applied only if configured. An error arriving
// together with data is held back until the data is consumed.
func (c *client) Read() ([]byte, error) {
	if len(c.pending) > 0 {
		pending := c.pending
		c.pending = nil

		return pending, nil
	}

	if c.err != nil {
		return nil, c.err
	}

	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, err
		}
	}

	for i := 0; i < maxEmptyReads; i++ {
		n, err := c.conn.Read(c.buff)
		switch {
		case n > 0 && err != nil:
			c.err = err
			return c.buff[:n], nil
		case n > 0 || err != nil:
			return c.buff[:n], err
		}
	}

	return nil, io.ErrNoProgress
}

// Pushback preserves a chunk of data from previous read for the next read.
func (c *client) Pushback(b []byte) {
	c.pending = b
}

// Write performs exactly one write call into the underlying connection.
func (c *client) Write(b []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}

	return c.conn.Write(b)
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
