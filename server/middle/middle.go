// Package middle contains middleware for use with the rg2nfa server.
package middle

import (
	"net/http"
)

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// DefaultMaxBodySize is the largest request body accepted when no other limit
// is configured.
const DefaultMaxBodySize = 1 << 20

// LimitHandler is an http.Handler that rejects request bodies over a set size
// before passing the request on.
type LimitHandler struct {
	maxBytes int64
	next     http.Handler
}

func (lh *LimitHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.ContentLength > lh.maxBytes {
		http.Error(w, "request body is too large", http.StatusRequestEntityTooLarge)
		return
	}

	if req.Body != nil {
		req.Body = http.MaxBytesReader(w, req.Body, lh.maxBytes)
	}
	lh.next.ServeHTTP(w, req)
}

// LimitBody returns a Middleware that limits request bodies to maxBytes. Reads
// past the limit fail, so a handler decoding the body gets an error rather
// than the whole body. If maxBytes is less than 1, DefaultMaxBodySize is used.
func LimitBody(maxBytes int64) Middleware {
	if maxBytes < 1 {
		maxBytes = DefaultMaxBodySize
	}
	return func(next http.Handler) http.Handler {
		return &LimitHandler{
			maxBytes: maxBytes,
			next:     next,
		}
	}
}
