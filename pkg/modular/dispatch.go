package modular

import (
	"reflect"

	"github.com/shuldan/modular/pkg/events"
)

// Dispatch visits every listener of the manager's dispatcher implementing
// T: registered modules and live items. The message is logged against the
// originator when one is given.
func Dispatch[T any](m *Manager, originator any, message string, visit func(T) error) events.Report {
	if originator != nil {
		event := reflect.TypeFor[T]().String()
		switch o := originator.(type) {
		case Item:
			o.itemLogger().Debug("dispatch item event", "event", event, "message", message)
		case Module:
			o.Logger().Info("dispatch module event", "event", event, "message", message)
		default:
			m.logger.Info("dispatch event", "origin", reflect.TypeOf(originator).String(), "event", event, "message", message)
		}
	}
	return events.Dispatch(m.dispatcher, visit)
}
