package http1

import (
	"bytes"

	"github.com/indigo-web/cruiser/config"
	"github.com/indigo-web/cruiser/http"
	"github.com/indigo-web/cruiser/http/status"
	"github.com/indigo-web/cruiser/transport"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	"go.uber.org/zap"
)

// Reader is the response state machine: status line, headers, then the body, dispatched
// by its framing. Only chunked bodies are supported.
type Reader struct {
	conn   *transport.Connection
	cfg    *config.Config
	logger *zap.Logger
}

func NewReader(conn *transport.Connection, cfg *config.Config, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reader{
		conn:   conn,
		cfg:    cfg,
		logger: logger,
	}
}

// Read returns either a completely decoded response or an error, never both.
func (r *Reader) Read() (*http.Response, error) {
	response := http.NewResponse(r.cfg.Headers.Number.Default)
	state := eStatusLine

	for {
		switch state {
		case eStatusLine:
			line, err := r.conn.ReadUntil(crlf)
			if err != nil {
				return nil, err
			}

			if err = parseStatusLine(line[:len(line)-len(crlf)], response); err != nil {
				return nil, err
			}

			r.logger.Debug("status line received",
				zap.String("protocol", response.Protocol),
				zap.Uint16("code", uint16(response.Code)),
			)
			state = eHeaders
		case eHeaders:
			line, err := r.conn.ReadUntil(crlf)
			if err != nil {
				return nil, err
			}

			if len(line) == len(crlf) {
				r.logger.Debug("headers received", zap.Int("count", response.Headers.Len()))
				state = eBodyDispatch
				break
			}

			key, value, err := parseHeader(line[:len(line)-len(crlf)])
			if err != nil {
				return nil, err
			}

			response.Headers.Set(key, value)
			if response.Headers.Len() > r.cfg.Headers.Number.Maximal {
				return nil, http.ErrMalformedHeader.Withf(
					"more than %d header fields", r.cfg.Headers.Number.Maximal,
				)
			}
		case eBodyDispatch:
			next, err := dispatchBody(response)
			if err != nil {
				return nil, err
			}

			state = next
		case eChunkedBody:
			body, err := NewChunkedDecoder(
				r.conn, r.cfg.Body.MaxSize, r.cfg.Body.Prealloc, r.cfg.Headers.Number.Maximal, r.logger,
			).Decode()
			if err != nil {
				return nil, err
			}

			response.Body = body
			state = eDone
		case eDone:
			return response, nil
		default:
			panic("BUG: response reader: unknown state " + state.String())
		}
	}
}

// parseStatusLine expects `PROTO SP CODE [SP REASON]`. The protocol and the reason phrase
// are taken as they are.
func parseStatusLine(line []byte, response *http.Response) error {
	sp := bytes.IndexByte(line, ' ')
	if sp <= 0 {
		return http.ErrMalformedStatusLine.Withf("no protocol in status line %q", uf.B2S(line))
	}

	proto, rest := line[:sp], line[sp+1:]
	rawCode, reason, _ := bytes.Cut(rest, []byte{' '})
	if len(rawCode) != 3 {
		return http.ErrMalformedStatusLine.Withf("bad status code in status line %q", uf.B2S(line))
	}

	var code status.Code
	for _, char := range rawCode {
		if char < '0' || char > '9' {
			return http.ErrMalformedStatusLine.Withf("bad status code in status line %q", uf.B2S(line))
		}

		code = code*10 + status.Code(char-'0')
	}

	if !status.Valid(code) {
		return http.ErrMalformedStatusLine.Withf("status code %d is out of range", code)
	}

	response.Protocol = uf.B2S(proto)
	response.Code = code
	response.Status = uf.B2S(reason)

	return nil
}

// parseHeader splits the line by the first colon. Exactly one space after the colon is
// skipped, as the `Name: Value` convention suggests.
func parseHeader(line []byte) (key, value string, err error) {
	colon := bytes.IndexByte(line, ':')
	switch colon {
	case -1:
		return "", "", http.ErrMalformedHeader.Withf("no colon in header line %q", uf.B2S(line))
	case 0:
		return "", "", http.ErrMalformedHeader.Withf("empty name in header line %q", uf.B2S(line))
	}

	rawValue := line[colon+1:]
	if len(rawValue) > 0 && rawValue[0] == ' ' {
		rawValue = rawValue[1:]
	}

	return uf.B2S(line[:colon]), uf.B2S(rawValue), nil
}

func dispatchBody(response *http.Response) (readerState, error) {
	encoding, found := response.Headers.GetFold("Transfer-Encoding")
	if !found {
		if response.Headers.HasFold("Content-Length") {
			return 0, http.ErrUnsupportedFraming.Withf("Content-Length framed bodies are not supported")
		}

		return 0, http.ErrUnsupportedFraming.Withf("response has no Transfer-Encoding header")
	}

	if !strcomp.EqualFold(encoding, "chunked") {
		return 0, http.ErrUnsupportedFraming.Withf("transfer encoding %q is not supported", encoding)
	}

	return eChunkedBody, nil
}
