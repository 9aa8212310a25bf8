package greeter

import (
	"net/http"
)

const (
	// Body is written verbatim for every request.
	Body = "Hello World!"
	// ContentType is the Content-Type header of every response.
	ContentType = "text/html"
)

// Greeter answers every request identically.
// Method, path, headers and body are never inspected.
type Greeter interface {
	http.Handler
}

// greeter holds no state, so concurrent requests never observe each other.
type greeter struct {
	body []byte
}

// ServeHTTP writes 200 with the fixed body.
func (g *greeter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(g.body)
}

// NewGreeter returns the handler that greets every request with Body.
func NewGreeter() Greeter {
	return &greeter{
		body: []byte(Body),
	}
}
