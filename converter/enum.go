package converter

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/viant/convbus"
	"github.com/viant/convbus/xtype"
)

// StringToEnum creates name lookups for enum types
type StringToEnum struct{}

// Create creates a name lookup for the target enum
func (f StringToEnum) Create(target reflect.Type) (convbus.Converter, error) {
	names, err := xtype.EnumOf(target)
	if err != nil {
		return nil, err
	}
	return &stringToEnum{names: names}, nil
}

type stringToEnum struct {
	names *xtype.EnumNames
}

func (c *stringToEnum) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	text := reflect.ValueOf(value).String()
	if text == "" {
		return nil, convbus.NewConversionFailed(value, source, target, "empty enum name")
	}
	ret, ok := c.names.Lookup(strings.TrimSpace(text))
	if !ok {
		return nil, convbus.NewConversionFailed(value, source, target, fmt.Sprintf("unknown name, expected one of %v", c.names.Names()))
	}
	return ret, nil
}

// EnumToString returns enum names
type EnumToString struct{}

// Convert returns the enum name
func (c EnumToString) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	return StringerToString{}.Convert(value, source, target)
}

// EnumToInt returns enum ordinals
type EnumToInt struct{}

// Convert returns the enum ordinal
func (c EnumToInt) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	v := reflect.ValueOf(value)
	if xtype.IsSigned(v.Kind()) {
		return int(v.Int()), nil
	}
	ordinal := v.Uint()
	if ordinal > math.MaxInt {
		return nil, convbus.NewConversionFailed(value, source, target, "ordinal out of int range")
	}
	return int(ordinal), nil
}
