package client

import (
	"strings"

	"github.com/indigo-web/cruiser/http"
	"github.com/indigo-web/cruiser/http/method"
	"github.com/indigo-web/cruiser/kv"
)

// Request describes a single exchange. Zero Port means the configured default one, empty Target
// means the root.
type Request struct {
	Method  method.Method
	Host    string
	Port    uint16
	Target  string
	Query   Query
	Headers *kv.Storage
}

func NewRequest(host string) *Request {
	return &Request{
		Method:  method.GET,
		Host:    host,
		Target:  "/",
		Query:   NewQuery(),
		Headers: kv.New(),
	}
}

func (r *Request) WithMethod(m method.Method) *Request {
	r.Method = m
	return r
}

func (r *Request) WithPort(port uint16) *Request {
	r.Port = port
	return r
}

func (r *Request) WithTarget(target string) *Request {
	r.Target = target
	return r
}

func (r *Request) WithHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = kv.New()
	}

	r.Headers.Set(key, value)
	return r
}

func (r *Request) WithQuery(key string, values ...string) *Request {
	if r.Query == nil {
		r.Query = NewQuery()
	}

	r.Query.WithValue(key, values...)
	return r
}

// URI returns the request target with the query appended. Bytes which cannot be sent as they
// are get percent-encoded.
func (r *Request) URI() string {
	target := http.EscapeTarget(r.Target)
	if len(target) == 0 {
		target = "/"
	}

	query := r.Query.Encode()
	if len(query) == 0 {
		return target
	}

	if strings.IndexByte(target, '?') != -1 {
		return target + "&" + query
	}

	return target + "?" + query
}
