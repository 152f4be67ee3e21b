package errors

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

var testSentinel = Code("UTILS_0001").New("dependency {{.dependency}} missing")

func TestIs(t *testing.T) {
	err1 := errors.New("test error")
	err2 := errors.New("another error")

	if !Is(err1, err1) {
		t.Error("should return true for same error")
	}
	if Is(err1, err2) {
		t.Error("should return false for different errors")
	}
	if Is(nil, err1) || Is(err1, nil) {
		t.Error("nil never matches")
	}
	if !Is(testSentinel.WithDetail("dependency", "x"), testSentinel) {
		t.Error("derived error should match sentinel")
	}
}

func TestAs(t *testing.T) {
	var target *Error
	if !As(fmt.Errorf("wrap: %w", testSentinel), &target) {
		t.Fatal("should find coded error in chain")
	}
	if target.Code != testSentinel.Code {
		t.Errorf("unexpected code %s", target.Code)
	}

	var other *Error
	if As(errors.New("generic"), &other) {
		t.Error("should return false for plain errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(testSentinel.WithDetail("dependency", "db")); code != testSentinel.Code {
		t.Errorf("expected %s, got %s", testSentinel.Code, code)
	}
	if code := GetErrorCode(errors.New("plain")); code != "" {
		t.Errorf("expected empty code, got %s", code)
	}
}

func TestMessages(t *testing.T) {
	cause := errors.New("connection refused")
	err := Join(
		testSentinel.WithDetail("dependency", "*db.Module"),
		Code("UTILS_0002").New("init failed").WithCause(cause),
	)

	got := Messages(err)
	want := []string{
		"dependency *db.Module missing",
		"init failed",
		"connection refused",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if Messages(nil) != nil {
		t.Error("nil error should have no messages")
	}
}
