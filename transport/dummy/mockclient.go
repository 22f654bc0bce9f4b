package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/cruiser/transport"
)

var (
	_ transport.Client = new(Client)
	_ transport.Client = NopClient{}
)

// Client returns the pieces it was initialised with one per read, and io.EOF afterwards
// (unless set to loop). It also tracks all the written data, making it thereby a universal
// mock suitable for most of the tests.
type Client struct {
	closed     bool
	loop       bool
	pointer    int
	writeLimit int
	tmp        []byte
	written    []byte
	data       [][]byte
	readErr    error
	writeErr   error
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data:    data,
		readErr: io.EOF,
	}
}

// NewMockClientString is a shorthand for string fixtures.
func NewMockClientString(data ...string) *Client {
	pieces := make([][]byte, len(data))
	for i, piece := range data {
		pieces[i] = []byte(piece)
	}

	return NewMockClient(pieces...)
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, net.ErrClosed
	}

	if len(c.tmp) > 0 {
		data, c.tmp = c.tmp, nil

		return data, nil
	}

	if c.pointer >= len(c.data) {
		if !c.loop || len(c.data) == 0 {
			return nil, c.readErr
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Pushback(takeback []byte) {
	c.tmp = takeback
}

func (c *Client) Write(p []byte) (int, error) {
	if c.writeErr != nil {
		return 0, c.writeErr
	}

	if c.writeLimit > 0 && len(p) > c.writeLimit {
		p = p[:c.writeLimit]
	}

	c.written = append(c.written, p...)

	return len(p), nil
}

func (*Client) Remote() net.Addr {
	return nil
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *Client) Closed() bool {
	return c.closed
}

// LoopReads makes the client start over once all the pieces were read.
func (c *Client) LoopReads() *Client {
	c.loop = true
	return c
}

// FailReadsWith replaces the io.EOF returned after the last piece.
func (c *Client) FailReadsWith(err error) *Client {
	c.readErr = err
	return c
}

// LimitWrites makes every write accept at most n bytes.
func (c *Client) LimitWrites(n int) *Client {
	c.writeLimit = n
	return c
}

// FailWritesWith makes every write fail.
func (c *Client) FailWritesWith(err error) *Client {
	c.writeErr = err
	return c
}

// Written returns everything written so far.
func (c *Client) Written() string {
	return string(c.written)
}

// NopClient reads nothing and swallows everything.
type NopClient struct{}

func NewNopClient() NopClient {
	return NopClient{}
}

func (NopClient) Read() ([]byte, error) {
	return nil, io.EOF
}

func (NopClient) Pushback([]byte) {}

func (NopClient) Write(b []byte) (int, error) {
	return len(b), nil
}

func (NopClient) Remote() net.Addr {
	return nil
}

func (NopClient) Close() error {
	return nil
}
