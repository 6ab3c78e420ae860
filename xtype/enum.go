package xtype

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MaxEnumOrdinal defines the highest ordinal probed when enum names are collected
const MaxEnumOrdinal = 255

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	durationType = reflect.TypeOf(time.Duration(0))
	enumCache    sync.Map // map[reflect.Type]*EnumNames
)

// EnumNames represents names of enum values
type EnumNames struct {
	Type   reflect.Type
	byName map[string]reflect.Value
	names  []string
}

// Names returns enum value names ordered by ordinal
func (e *EnumNames) Names() []string {
	return e.names
}

// Lookup returns an enum value for the supplied name
func (e *EnumNames) Lookup(name string) (interface{}, bool) {
	value, ok := e.byName[name]
	if !ok {
		return nil, false
	}
	return value.Interface(), true
}

// IsEnum returns true for named integer types implementing fmt.Stringer, time.Duration excluded
func IsEnum(t reflect.Type) bool {
	if t == nil || t.Name() == "" || t == durationType {
		return false
	}
	if !IsInteger(t.Kind()) {
		return false
	}
	return t.Implements(stringerType)
}

// EnumOf returns enum names of the supplied type
// Names are collected by probing ordinals 0..MaxEnumOrdinal; values rendered by the
// stringer fallback form (i.e. Type(7)), as a plain number or with a panic are not named values.
func EnumOf(t reflect.Type) (*EnumNames, error) {
	if !IsEnum(t) {
		return nil, fmt.Errorf("type %v is not an enum", t)
	}
	if cached, ok := enumCache.Load(t); ok {
		return cached.(*EnumNames), nil
	}
	ret := &EnumNames{Type: t, byName: map[string]reflect.Value{}}
	fallbackPrefix := t.Name() + "("
	for i := 0; i <= MaxEnumOrdinal; i++ {
		value := reflect.New(t).Elem()
		if IsSigned(t.Kind()) {
			value.SetInt(int64(i))
		} else {
			value.SetUint(uint64(i))
		}
		name, ok := enumName(value)
		if !ok || name == "" || strings.Contains(name, fallbackPrefix) || name == strconv.Itoa(i) {
			continue
		}
		if _, ok := ret.byName[name]; ok {
			continue
		}
		ret.byName[name] = value
		ret.names = append(ret.names, name)
	}
	actual, _ := enumCache.LoadOrStore(t, ret)
	return actual.(*EnumNames), nil
}

// enumName returns stringer name, false when String panics for an ordinal without a name
func enumName(value reflect.Value) (name string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return value.Interface().(fmt.Stringer).String(), true
}
