package events

import (
	"fmt"

	"github.com/shuldan/modular/pkg/contracts"
)

type defaultPanicHandler struct {
	logger contracts.Logger
}

func NewDefaultPanicHandler(l contracts.Logger) PanicHandler {
	return &defaultPanicHandler{logger: l}
}

func (d *defaultPanicHandler) Handle(event string, listener any, panicValue any, stack []byte) {
	d.logger.Critical("listener panicked during dispatch",
		"event", event,
		"listener", fmt.Sprintf("%T", listener),
		"panic", panicValue,
		"stack", string(stack),
	)
}

type defaultErrorHandler struct {
	logger contracts.Logger
}

func NewDefaultErrorHandler(l contracts.Logger) ErrorHandler {
	return &defaultErrorHandler{logger: l}
}

func (d *defaultErrorHandler) Handle(event string, listener any, err error) {
	d.logger.Error("listener failed during dispatch",
		"event", event,
		"listener", fmt.Sprintf("%T", listener),
		"error", err,
	)
}
