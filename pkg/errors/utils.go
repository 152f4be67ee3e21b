package errors

import (
	"errors"
)

func Is(err, target error) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.Is(err, target)
}

func As[T error](err error, target *T) bool {
	if err == nil {
		return false
	}
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}

func GetErrorCode(err error) Code {
	var e *Error
	if As(err, &e) {
		return e.Code
	}
	return ""
}

// Messages flattens err into one line per leaf, expanding errors.Join
// trees and coded errors in cause order.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, Messages(e)...)
		}
		return out
	}

	var e *Error
	if errors.As(err, &e) {
		out := []string{e.Text()}
		if e.Cause != nil {
			out = append(out, Messages(e.Cause)...)
		}
		return out
	}

	return []string{err.Error()}
}
