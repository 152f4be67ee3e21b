package modular

import (
	"reflect"
	"strings"
)

// Key identifies a registry entry. It is the static type a module is
// registered and looked up under: the module's own pointer type or any
// interface it was aliased to.
type Key = reflect.Type

func KeyOf[T any]() Key {
	return reflect.TypeFor[T]()
}

var moduleKey = KeyOf[Module]()

// Type declares how to build one module and under which keys to record it.
type Type struct {
	key       Key
	aliases   []Key
	name      string
	construct func() Module
}

// Declare builds T with new(T).
//
//	modular.Declare[ModuleA]()
func Declare[T any, PT interface {
	*T
	Module
}]() Type {
	key := KeyOf[PT]()
	return Type{
		key:       key,
		name:      defaultName(key),
		construct: func() Module { return PT(new(T)) },
	}
}

// Provide builds the module with a custom parameterless constructor.
func Provide[T Module](ctor func() T) Type {
	key := KeyOf[T]()
	return Type{
		key:       key,
		name:      defaultName(key),
		construct: func() Module { return ctor() },
	}
}

// Instance registers an already constructed module under its dynamic type.
func Instance(m Module) Type {
	key := reflect.TypeOf(m)
	return Type{
		key:       key,
		name:      defaultName(key),
		construct: func() Module { return m },
	}
}

// As records the module under additional capability keys.
func (t Type) As(keys ...Key) Type {
	t.aliases = append(append([]Key(nil), t.aliases...), keys...)
	return t
}

func (t Type) Named(name string) Type {
	if name != "" {
		t.name = name
	}
	return t
}

func (t Type) Key() Key {
	return t.key
}

func (t Type) Name() string {
	return t.name
}

// Keys returns the primary key followed by the aliases.
func (t Type) Keys() []Key {
	return append([]Key{t.key}, t.aliases...)
}

func (t Type) valid() bool {
	return t.key != nil && t.construct != nil
}

func defaultName(key Key) string {
	if key == nil {
		return ""
	}
	name := key.String()
	return strings.TrimPrefix(name, "*")
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
