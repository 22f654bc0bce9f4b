package http1

import (
	"bytes"
	"math"

	"github.com/indigo-web/cruiser/http"
	"github.com/indigo-web/cruiser/transport"
	"github.com/indigo-web/utils/uf"
	"go.uber.org/zap"
)

var crlf = []byte("\r\n")

// ChunkedDecoder consumes a chunked body from the connection and returns it concatenated.
// The decoding is strict: no chunk extensions, no whitespace around the size.
type ChunkedDecoder struct {
	conn       *transport.Connection
	maxSize    uint64
	prealloc   int
	maxTrailer int
	logger     *zap.Logger
}

func NewChunkedDecoder(
	conn *transport.Connection, maxSize uint64, prealloc, maxTrailer int, logger *zap.Logger,
) *ChunkedDecoder {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ChunkedDecoder{
		conn:       conn,
		maxSize:    maxSize,
		prealloc:   prealloc,
		maxTrailer: maxTrailer,
		logger:     logger,
	}
}

// Decode reads chunks until the terminating zero-sized one. Trailer fields following it are
// discarded. On any error the already decoded part of the body is dropped.
func (c *ChunkedDecoder) Decode() ([]byte, error) {
	body := make([]byte, 0, c.prealloc)

	for {
		line, err := c.conn.ReadUntil(crlf)
		if err != nil {
			return nil, err
		}

		digits := line[:len(line)-len(crlf)]
		size, ok := parseHex(digits)
		if !ok {
			return nil, http.ErrMalformedChunkSize.Withf("bad chunk size: %q", uf.B2S(digits))
		}

		c.logger.Debug("chunk", zap.Uint64("size", size))

		if size == 0 {
			if err = c.discardTrailer(); err != nil {
				return nil, err
			}

			return body, nil
		}

		if size > math.MaxInt || uint64(len(body))+size > c.maxSize {
			return nil, http.ErrBodyTooLarge.Withf(
				"chunk of %d bytes exceeds the body limit of %d bytes", size, c.maxSize,
			)
		}

		payload, err := c.conn.ReadExact(int(size))
		if err != nil {
			return nil, err
		}

		terminator, err := c.conn.ReadExact(len(crlf))
		if err != nil {
			return nil, err
		}

		if !bytes.Equal(terminator, crlf) {
			return nil, http.ErrMalformedChunk.Withf(
				"chunk of %d bytes is followed by %q instead of CRLF", size, uf.B2S(terminator),
			)
		}

		body = append(body, payload...)
	}
}

func (c *ChunkedDecoder) discardTrailer() error {
	for fields := 0; ; fields++ {
		line, err := c.conn.ReadUntil(crlf)
		if err != nil {
			return err
		}

		if len(line) == len(crlf) {
			return nil
		}

		if fields >= c.maxTrailer {
			return http.ErrMalformedHeader.Withf("too many trailer fields")
		}

		c.logger.Debug("trailer field discarded", zap.ByteString("field", line[:len(line)-len(crlf)]))
	}
}
