package app

import (
	"net/http"
)

// Middleware wraps the application's handler.
type Middleware func(http.Handler) http.Handler

// Option configures the environment run by Run().
type Option func(o *opts)

type opts struct {
	middleware []Middleware
}

// WithMiddleware wraps the app's handler with the provided middleware.
//
// Middleware is applied in addition order, so the first one added sees the
// request first. All of it runs inside the server's panic recovery.
func WithMiddleware(m Middleware) Option {
	return func(o *opts) {
		o.middleware = append(o.middleware, m)
	}
}

func (o opts) wrap(h http.Handler) http.Handler {
	for i := len(o.middleware) - 1; i >= 0; i-- {
		h = o.middleware[i](h)
	}
	return h
}
