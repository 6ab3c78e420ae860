package xtype

import (
	"fmt"
	"reflect"
	"time"
)

var (
	timeType      = reflect.TypeOf(time.Time{})
	interfaceType = reflect.TypeOf((*interface{})(nil)).Elem()
)

// TypeFor returns the type descriptor of T, including interface types
func TypeFor[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsSuperType returns true if values of sub can be used where super is expected
func IsSuperType(super, sub reflect.Type) bool {
	if super == nil || sub == nil {
		return false
	}
	if super == sub {
		return true
	}
	return sub.AssignableTo(super)
}

// Box normalizes a pointer to a scalar type to the scalar type
func Box(t reflect.Type) reflect.Type {
	if t == nil || t.Kind() != reflect.Ptr {
		return t
	}
	if IsScalar(t.Elem().Kind()) {
		return t.Elem()
	}
	return t
}

// IsBoxed returns true if Box would change t
func IsBoxed(t reflect.Type) bool {
	return t != nil && Box(t) != t
}

// IsScalar returns true for bool, string and numeric kinds
func IsScalar(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// IsInterface returns true for interface types
func IsInterface(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface
}

// ElementType returns a sequence element type or nil if t is not a sequence
func ElementType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem()
	}
	return nil
}

// KeyValueTypes returns mapping key and value types
func KeyValueTypes(t reflect.Type) (reflect.Type, reflect.Type, bool) {
	if t == nil || t.Kind() != reflect.Map {
		return nil, nil, false
	}
	return t.Key(), t.Elem(), true
}

// EnsureStruct returns struct type for struct or pointer to struct, nil otherwise
func EnsureStruct(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Struct:
		return t
	case reflect.Ptr:
		if t.Elem().Kind() == reflect.Struct {
			return t.Elem()
		}
	}
	return nil
}

// IsTime returns true for time.Time and *time.Time
func IsTime(t reflect.Type) bool {
	return EnsureStruct(t) == timeType
}

// IsNil returns true for nil and typed nil values
func IsNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Deref returns a pointed value for non nil pointer to scalar
func Deref(value interface{}) (interface{}, bool) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Ptr || v.IsNil() || !IsScalar(v.Elem().Kind()) {
		return value, false
	}
	return v.Elem().Interface(), true
}

// Adapt returns a value of exactly type t holding value
// A value of the boxed form of t is wrapped into a new pointer.
func Adapt(value interface{}, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(value)
	if v.Type() == t {
		return v, nil
	}
	if v.Type().AssignableTo(t) {
		ret := reflect.New(t).Elem()
		ret.Set(v)
		return ret, nil
	}
	if t.Kind() == reflect.Ptr && v.Type().AssignableTo(t.Elem()) {
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr, nil
	}
	return reflect.Value{}, fmt.Errorf("value of type %v is not assignable to %v", v.Type(), t)
}
