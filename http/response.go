package http

import (
	"github.com/indigo-web/cruiser/http/status"
	"github.com/indigo-web/cruiser/kv"
)

// Response is only ever handed out fully decoded. Partially read responses are dropped
// together with the error that interrupted them.
type Response struct {
	Protocol string
	Code     status.Code
	Status   string
	Headers  *kv.Storage
	Body     []byte
}

// NewResponse returns an empty response whose headers storage is preallocated for n entries.
func NewResponse(n int) *Response {
	return &Response{
		Headers: kv.NewPrealloc(n),
	}
}
