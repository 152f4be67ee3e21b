package events

import "github.com/shuldan/modular/pkg/contracts"

// PanicHandler observes a recovered listener panic. event is the
// capability type name.
type PanicHandler interface {
	Handle(event string, listener any, panicValue any, stack []byte)
}

// ErrorHandler observes an error returned by a listener visit.
type ErrorHandler interface {
	Handle(event string, listener any, err error)
}

type Option func(*config)

type config struct {
	logger       contracts.Logger
	panicHandler PanicHandler
	errorHandler ErrorHandler
}

func WithLogger(l contracts.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithPanicHandler(h PanicHandler) Option {
	return func(c *config) {
		c.panicHandler = h
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		c.errorHandler = h
	}
}
