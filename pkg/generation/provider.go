package generation

import (
	"context"
)

// Option allows optional parameters like timeout overrides or model hints.
type Option func(*Options)

type Options struct {
	Model string // override the endpoint's default model
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for the generation endpoint. Any transport,
// status, or parse failure is a total failure: callers persist nothing on a
// non-nil error.
type Provider interface {
	Generate(ctx context.Context, req *Request, options ...Option) (*Response, error)
}
