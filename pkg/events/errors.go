package events

import "github.com/shuldan/modular/pkg/errors"

var newEventCode = errors.WithPrefix("EVENTS")

var (
	ErrListenerFailed = newEventCode().New("listener {{.listener}} failed handling {{.event}}")
	ErrListenerPanic  = newEventCode().New("listener {{.listener}} panicked handling {{.event}}: {{.value}}")
)
