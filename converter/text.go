package converter

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/viant/convbus"
)

var (
	trueValues  = map[string]bool{"true": true, "t": true, "on": true, "yes": true, "y": true, "1": true}
	falseValues = map[string]bool{"false": true, "f": true, "off": true, "no": true, "n": true, "0": true}
)

// StringToBool parses boolean literals
type StringToBool struct{}

// Convert parses a boolean literal ignoring case and surrounding spaces
func (c StringToBool) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	text := strings.ToLower(strings.TrimSpace(reflect.ValueOf(value).String()))
	if trueValues[text] {
		return true, nil
	}
	if falseValues[text] {
		return false, nil
	}
	return nil, convbus.NewConversionFailed(value, source, target, "invalid boolean literal")
}

// BoolToString formats booleans
type BoolToString struct{}

// Convert formats a boolean
func (c BoolToString) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	return strconv.FormatBool(reflect.ValueOf(value).Bool()), nil
}

// SameKind converts between distinct types sharing a string or bool kind
type SameKind struct{}

// Matches returns true for distinct string or bool types of the same kind
func (c SameKind) Matches(source, target reflect.Type) bool {
	if source == target || source.Kind() != target.Kind() {
		return false
	}
	switch source.Kind() {
	case reflect.String, reflect.Bool:
		return source.ConvertibleTo(target)
	}
	return false
}

// Convert converts the value with Go conversion rules
func (c SameKind) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	return reflect.ValueOf(value).Convert(target).Interface(), nil
}

func (c SameKind) String() string {
	return "string|bool -> string|bool (converter.SameKind)"
}

// StringerToString formats values implementing fmt.Stringer
type StringerToString struct{}

// Convert calls String
func (c StringerToString) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	stringer, ok := value.(fmt.Stringer)
	if !ok {
		return nil, convbus.NewConversionFailed(value, source, target, "value does not implement fmt.Stringer")
	}
	return stringer.String(), nil
}

// BytesToString converts byte slices into strings
type BytesToString struct{}

// Convert converts bytes
func (c BytesToString) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	return string(reflect.ValueOf(value).Bytes()), nil
}

// StringToBytes converts strings into byte slices
type StringToBytes struct{}

// Convert converts a string
func (c StringToBytes) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	return []byte(reflect.ValueOf(value).String()), nil
}
