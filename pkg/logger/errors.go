package logger

import "github.com/shuldan/modular/pkg/errors"

var newLoggerCode = errors.WithPrefix("LOGGER")

var (
	ErrUnknownLevel  = newLoggerCode().New("unknown log level {{.level}}")
	ErrUnknownFormat = newLoggerCode().New("unknown log format {{.format}}")
)
