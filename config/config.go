package config

import (
	"time"
)

type (
	HeadersNumber struct {
		Default, Maximal int
	}

	Headers struct {
		// Number is responsible for the response headers storage size.
		// Default value is an initial size of allocated headers storage.
		// Maximal value is maximum number of headers allowed to be presented
		Number HeadersNumber
		// Default headers are included into every request implicitly, unless explicitly
		// overridden by the request itself.
		Default map[string]string
	}

	Body struct {
		// MaxSize describes the maximal size of a decoded response body. Bigger bodies result
		// in http.ErrBodyTooLarge.
		MaxSize uint64
		// Prealloc is the initial capacity of the buffer accumulating a chunked body.
		Prealloc int
	}

	NET struct {
		// Port is used unless the request specifies its own one.
		Port uint16
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// MaxLineSize limits the length of a single line (status line, header or chunk size)
		// including its CRLF.
		MaxLineSize int
		// DialTimeout limits a single connection attempt. Zero disables the limit.
		DialTimeout time.Duration `test:"nullable"`
		// ReadTimeout is applied to every read from the socket. Zero disables the limit,
		// so a hung peer blocks the caller forever.
		ReadTimeout time.Duration `test:"nullable"`
		// WriteTimeout is applied to every write into the socket. Zero disables the limit.
		WriteTimeout time.Duration `test:"nullable"`
	}
)

// Config holds settings used across the client, mainly restrictions, limitations and
// pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Headers Headers
	Body    Body
	NET     NET
}

// Default returns default config. Timeouts are disabled.
func Default() *Config {
	return &Config{
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 100,
			},
			Default: map[string]string{
				"User-Agent":      "cruiser",
				"Accept-Language": "en-US,en;q=0.9,it;q=0.8",
			},
		},
		Body: Body{
			MaxSize:  64 * 1024 * 1024, // 64 megabytes
			Prealloc: 2048,
		},
		NET: NET{
			Port:           80,
			ReadBufferSize: 4 * 1024,
			// cookies might be pretty long.
			MaxLineSize: 16 * 1024,
		},
	}
}
