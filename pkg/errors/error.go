package errors

import (
	"bytes"
	"fmt"
	"maps"
	"runtime"
	"text/template"
	"time"
)

type Code string

// New creates a sentinel. Sentinels are never mutated: WithDetail and
// WithCause return derived copies that still match the sentinel via errors.Is.
func (c Code) New(msg string) *Error {
	return &Error{
		Code:      c,
		Message:   msg,
		Details:   make(map[string]any),
		Timestamp: time.Now(),
	}
}

func WithPrefix(prefix string) func() Code {
	counter := int64(0)
	return func() Code {
		counter++
		return Code(fmt.Sprintf("%s_%04d", prefix, counter))
	}
}

type Error struct {
	Code      Code           `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Cause     error          `json:"-"`
	Stack     string         `json:"-"`
	Timestamp time.Time      `json:"timestamp"`
}

func (e *Error) Error() string {
	msg := e.render()
	if msg == "" {
		return ""
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Text is the rendered message without the code prefix or the cause.
func (e *Error) Text() string {
	return e.render()
}

func (e *Error) render() (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = e.Message
		}
	}()

	t, err := template.New("error").Option("missingkey=zero").Parse(e.Message)
	if err != nil {
		return e.Message
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, e.Details); err != nil {
		return e.Message
	}
	return buf.String()
}

func (e *Error) WithCause(err error) *Error {
	d := e.derive()
	d.Cause = err
	return d
}

func (e *Error) WithDetail(key string, value any) *Error {
	d := e.derive()
	d.Details[key] = value
	return d
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any error carrying the same code, so derived copies compare
// equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) derive() *Error {
	details := make(map[string]any, len(e.Details)+1)
	maps.Copy(details, e.Details)

	stack := e.Stack
	if stack == "" {
		stack = getStack()
	}

	return &Error{
		Code:      e.Code,
		Message:   e.Message,
		Details:   details,
		Cause:     e.Cause,
		Stack:     stack,
		Timestamp: time.Now(),
	}
}

func getStack() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
