// Package middleware provides an interception chain around query
// processing. Middlewares can validate, log and record a query before and
// after the advisors run.
package middleware

import (
	"context"

	"github.com/krishisetu/krishisetu/advisor"
	"github.com/krishisetu/krishisetu/language"
)

// Context carries one query through the middleware chain.
type Context struct {
	// Query is the raw user input.
	Query string

	// Mode is "simple" or "comprehensive".
	Mode string

	// Classification is filled by the pipeline before the chain runs.
	Classification *language.Classification

	// QueryContext carries the caller's optional hints.
	QueryContext *advisor.QueryContext

	// Result is set by the final handler.
	Result *advisor.Result

	// Metadata passes values between middlewares.
	Metadata map[string]any

	ctx context.Context
}

// NewContext creates a middleware context for one query.
func NewContext(ctx context.Context, query, mode string) *Context {
	return &Context{
		Query:    query,
		Mode:     mode,
		Metadata: make(map[string]any),
		ctx:      ctx,
	}
}

// Context returns the underlying context.Context.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Middleware intercepts query processing. Returning an error stops the
// chain.
type Middleware interface {
	// Name identifies the middleware in logs.
	Name() string

	// Execute runs the middleware, calling next to continue the chain.
	Execute(ctx *Context, next Handler) error
}

// Handler passes control to the next middleware.
type Handler func(*Context) error

// Chain is an ordered middleware sequence.
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a middleware chain.
func NewChain(middlewares ...Middleware) *Chain {
	return &Chain{middlewares: middlewares}
}

// Add appends a middleware to the chain.
func (c *Chain) Add(m Middleware) *Chain {
	c.middlewares = append(c.middlewares, m)
	return c
}

// Execute runs the chain, then the final handler.
func (c *Chain) Execute(ctx *Context, final Handler) error {
	return c.run(ctx, 0, final)
}

func (c *Chain) run(ctx *Context, index int, final Handler) error {
	if index >= len(c.middlewares) {
		return final(ctx)
	}
	next := func(ctx *Context) error {
		return c.run(ctx, index+1, final)
	}
	return c.middlewares[index].Execute(ctx, next)
}
