// Package middleware
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain composes middlewares in registration order: the first Use'd
// middleware is the outermost wrapper.
type Chain struct {
	middlewares []Middleware
}

func New() *Chain {
	return &Chain{}
}

func (c *Chain) Use(mw Middleware) {
	c.middlewares = append(c.middlewares, mw)
}

func (c *Chain) Then(h http.Handler) http.Handler {
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h
}

func (c *Chain) Apply(h http.Handler) http.Handler {
	return c.Then(h)
}
