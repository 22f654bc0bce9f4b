package httptest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/cruiser/kv"
	"github.com/indigo-web/utils/uf"
)

type Response struct {
	Proto   string
	Code    int
	Status  string
	Headers *kv.Storage
	Body    string
}

type Request struct {
	Method  string
	Target  string
	Proto   string
	Headers *kv.Storage
}

// ParseResponse is a deliberately independent, string-based parser used to cross-check what
// the client decodes. Only chunked bodies are understood.
func ParseResponse(raw string) (response Response, err error) {
	var found bool
	response.Headers = kv.New()

	response.Proto, raw, found = strings.Cut(raw, " ")
	if !found || len(raw) == 0 {
		return response, fmt.Errorf("bad response line: lacking code and status")
	}

	var code string
	code, raw, _ = strings.Cut(raw, " ")
	response.Code, err = strconv.Atoi(code)
	if err != nil {
		return response, err
	}

	response.Status, raw, found = strings.Cut(raw, "\r\n")
	if !found {
		return response, fmt.Errorf("bad response: only response line is presented")
	}

	raw, err = parseHeaders(raw, response.Headers)
	if err != nil {
		return response, err
	}

	if response.Headers.Value("Transfer-Encoding") != "chunked" {
		return response, fmt.Errorf("bad response: body is not chunked")
	}

	response.Body, err = DecodeChunked(raw)
	return response, err
}

// ParseRequest parses a request without a body, as the client sends it.
func ParseRequest(raw string) (request Request, err error) {
	var (
		line  string
		found bool
	)
	request.Headers = kv.New()

	line, raw, found = strings.Cut(raw, "\r\n")
	if !found {
		return request, fmt.Errorf("bad request: no CRLF after request line")
	}

	fields := strings.Split(line, " ")
	if len(fields) != 3 {
		return request, fmt.Errorf("bad request line: %q", line)
	}

	request.Method, request.Target, request.Proto = fields[0], fields[1], fields[2]

	rest, err := parseHeaders(raw, request.Headers)
	if err != nil {
		return request, err
	}

	if len(rest) > 0 {
		return request, fmt.Errorf("bad request: unexpected data after headers: %q", rest)
	}

	return request, nil
}

func parseHeaders(raw string, headers *kv.Storage) (rest string, err error) {
	for {
		var (
			headerLine string
			found      bool
		)

		headerLine, raw, found = strings.Cut(raw, "\r\n")
		if !found {
			return "", fmt.Errorf("bad header line %q: no breaking CRLF", headerLine)
		}

		if len(headerLine) == 0 {
			return raw, nil
		}

		key, value, found := strings.Cut(headerLine, ": ")
		if !found {
			return "", fmt.Errorf("bad header line %q: no colon", headerLine)
		}

		headers.Set(key, value)
	}
}

// DecodeChunked decodes the body by the reference chunked parser.
func DecodeChunked(data string) (string, error) {
	var buff []byte
	parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())

	for len(data) > 0 {
		chunk, extra, err := parser.Parse(uf.S2B(data), false)
		buff = append(buff, chunk...)

		switch err {
		case nil:
		case io.EOF:
			return string(buff), nil
		default:
			return "", fmt.Errorf("bad chunked body: %w", err)
		}

		data = string(extra)
	}

	return "", io.ErrUnexpectedEOF
}
