package client

import (
	"net/url"
)

// Query is a set of query parameters appended to the request target.
type Query map[string][]string

func NewQuery() Query {
	return make(Query)
}

func (q Query) WithValue(key string, values ...string) Query {
	q[key] = append(q[key], values...)
	return q
}

// Encode renders the query with keys sorted. Empty query renders into an empty string.
func (q Query) Encode() string {
	return url.Values(q).Encode()
}
