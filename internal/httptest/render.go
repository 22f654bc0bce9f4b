package httptest

import (
	"strconv"
	"strings"
)

// EncodeChunked splits the body into chunks of at most chunkSize bytes and renders them,
// including the terminating zero-sized chunk.
func EncodeChunked(body string, chunkSize int) string {
	var b strings.Builder

	for len(body) > 0 {
		n := min(chunkSize, len(body))
		b.WriteString(strconv.FormatInt(int64(n), 16))
		b.WriteString("\r\n")
		b.WriteString(body[:n])
		b.WriteString("\r\n")
		body = body[n:]
	}

	b.WriteString("0\r\n\r\n")

	return b.String()
}

// ChunkedResponse renders a complete chunked response. Headers are given as "Key: Value"
// lines; Transfer-Encoding is appended automatically.
func ChunkedResponse(code int, reason string, body string, chunkSize int, headers ...string) string {
	var b strings.Builder

	b.WriteString("HTTP/1.1 ")
	b.WriteString(strconv.Itoa(code))
	b.WriteString(" ")
	b.WriteString(reason)
	b.WriteString("\r\n")

	for _, header := range headers {
		b.WriteString(header)
		b.WriteString("\r\n")
	}

	b.WriteString("Transfer-Encoding: chunked\r\n\r\n")
	b.WriteString(EncodeChunked(body, chunkSize))

	return b.String()
}

// Split cuts the data into pieces of n bytes, imitating a network delivering it in parts.
func Split(data string, n int) []string {
	pieces := make([]string, 0, len(data)/n+1)
	for len(data) > n {
		pieces = append(pieces, data[:n])
		data = data[n:]
	}

	return append(pieces, data)
}
