package http1

import (
	"io"
	"strings"

	"github.com/indigo-web/cruiser/http"
	"github.com/indigo-web/cruiser/http/method"
	"github.com/indigo-web/cruiser/kv"
	"github.com/indigo-web/cruiser/transport"
)

const protocol = "HTTP/1.1"

// Serializer renders requests into a reusable buffer and sends them at once.
type Serializer struct {
	buff []byte
}

func NewSerializer(buff []byte) *Serializer {
	return &Serializer{
		buff: buff[:0],
	}
}

// Write renders the request line and the headers in storage order and delivers them in full.
// Nothing is written if the request cannot be rendered.
func (s *Serializer) Write(m method.Method, target string, headers *kv.Storage, w io.Writer) error {
	defer s.clear()

	name, ok := method.Name(m)
	if !ok {
		return http.ErrUnsupportedMethod.Withf("cannot send method %d: only GET is supported", uint8(m))
	}

	if len(target) == 0 {
		target = "/"
	}

	if strings.ContainsAny(target, " \r\n") {
		return http.ErrMalformedHeader.Withf("request target %q contains whitespace", target)
	}

	s.renderRequestLine(name, target)

	if headers != nil {
		for key, value := range headers.Iter() {
			if !sendable(key, value) {
				return http.ErrMalformedHeader.Withf("header %q cannot be sent as is", key)
			}

			s.renderHeader(key, value)
		}
	}

	s.crlf()

	return transport.WriteAll(w, s.buff)
}

// WriteRequest is a one-shot Serializer.
func WriteRequest(w io.Writer, m method.Method, target string, headers *kv.Storage) error {
	return NewSerializer(make([]byte, 0, 512)).Write(m, target, headers, w)
}

func (s *Serializer) renderRequestLine(method, target string) {
	s.buff = append(s.buff, method...)
	s.sp()
	s.buff = append(s.buff, target...)
	s.sp()
	s.buff = append(s.buff, protocol...)
	s.crlf()
}

// renderHeader into the buffer. Appends CRLF in the end
func (s *Serializer) renderHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.colonsp()
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) colonsp() {
	s.buff = append(s.buff, ':', ' ')
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, '\r', '\n')
}

func (s *Serializer) clear() {
	s.buff = s.buff[:0]
}

// sendable rejects anything that would break the header line apart.
func sendable(key, value string) bool {
	return len(key) > 0 && !strings.ContainsAny(key, ":\r\n") && !strings.ContainsAny(value, "\r\n")
}
