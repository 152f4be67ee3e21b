package events

import "github.com/shuldan/modular/pkg/errors"

// Failure is the outcome of one listener that did not handle an event.
type Failure struct {
	Listener     any
	ListenerType string
	Err          error
	Panicked     bool
}

// Report summarizes one dispatch. Matched counts listeners that satisfied
// the capability, Delivered those whose visit returned without fault.
type Report struct {
	Event     string
	Matched   int
	Delivered int
	Failures  []Failure
}

func (r Report) Failed() bool {
	return len(r.Failures) > 0
}

// Err joins all failures, or returns nil when every visit succeeded.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}
