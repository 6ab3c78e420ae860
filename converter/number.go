package converter

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/viant/convbus"
	"github.com/viant/convbus/xtype"
)

// StringToNumber creates parsers for numeric target types
type StringToNumber struct{}

// Create creates a string parser for the target type
func (f StringToNumber) Create(target reflect.Type) (convbus.Converter, error) {
	if !xtype.IsNumber(target) {
		return nil, fmt.Errorf("unsupported number type: %v", target)
	}
	return convbus.ConverterFunc(func(value interface{}, source, target reflect.Type) (interface{}, error) {
		return parseNumber(value, source, target)
	}), nil
}

func parseNumber(value interface{}, source, target reflect.Type) (interface{}, error) {
	text := reflect.ValueOf(value).String()
	if text == "" {
		return nil, convbus.NewConversionFailed(value, source, target, "empty input")
	}
	text = strings.TrimSpace(text)
	switch {
	case xtype.IsBigInt(target):
		ret, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, convbus.NewConversionFailed(value, source, target, "invalid integer")
		}
		return ret, nil
	case xtype.IsBigFloat(target):
		ret, ok := new(big.Float).SetString(text)
		if !ok {
			return nil, convbus.NewConversionFailed(value, source, target, "invalid decimal")
		}
		return ret, nil
	}
	ret := reflect.New(target).Elem()
	kind := target.Kind()
	switch {
	case xtype.IsSigned(kind):
		v, err := strconv.ParseInt(text, 10, target.Bits())
		if err != nil {
			return nil, convbus.WrapConversionFailed(value, source, target, err)
		}
		ret.SetInt(v)
	case xtype.IsUnsigned(kind):
		v, err := strconv.ParseUint(text, 10, target.Bits())
		if err != nil {
			return nil, convbus.WrapConversionFailed(value, source, target, err)
		}
		ret.SetUint(v)
	case xtype.IsFloat(kind):
		v, err := strconv.ParseFloat(text, target.Bits())
		if err != nil {
			return nil, convbus.WrapConversionFailed(value, source, target, err)
		}
		ret.SetFloat(v)
	default:
		return nil, convbus.NewConversionFailed(value, source, target, "unsupported number type")
	}
	return ret.Interface(), nil
}

// NumberToNumber creates range checked numeric converters, applicable when source and target differ
type NumberToNumber struct{}

// Matches returns true when source and target differ
func (f NumberToNumber) Matches(source, target reflect.Type) bool {
	return source != target
}

// Create creates a numeric converter for the target type
func (f NumberToNumber) Create(target reflect.Type) (convbus.Converter, error) {
	if !xtype.IsNumber(target) {
		return nil, fmt.Errorf("unsupported number type: %v", target)
	}
	return convbus.ConverterFunc(convertNumber), nil
}

func convertNumber(value interface{}, source, target reflect.Type) (interface{}, error) {
	number, err := asBigFloat(value)
	if err != nil {
		return nil, convbus.WrapConversionFailed(value, source, target, err)
	}
	switch {
	case xtype.IsBigFloat(target):
		return number, nil
	case xtype.IsBigInt(target):
		if !number.IsInt() {
			return nil, convbus.NewConversionFailed(value, source, target, "value is not integral")
		}
		ret, _ := number.Int(nil)
		return ret, nil
	}
	ret := reflect.New(target).Elem()
	kind := target.Kind()
	switch {
	case xtype.IsSigned(kind):
		if !number.IsInt() {
			return nil, convbus.NewConversionFailed(value, source, target, "value is not integral")
		}
		integer, _ := number.Int(nil)
		bits := target.Bits()
		if !integer.IsInt64() || ret.OverflowInt(integer.Int64()) {
			return nil, convbus.NewConversionFailed(value, source, target, fmt.Sprintf("value out of %d-bit signed range", bits))
		}
		ret.SetInt(integer.Int64())
	case xtype.IsUnsigned(kind):
		if !number.IsInt() {
			return nil, convbus.NewConversionFailed(value, source, target, "value is not integral")
		}
		integer, _ := number.Int(nil)
		if integer.Sign() < 0 || !integer.IsUint64() || ret.OverflowUint(integer.Uint64()) {
			return nil, convbus.NewConversionFailed(value, source, target, fmt.Sprintf("value out of %d-bit unsigned range", target.Bits()))
		}
		ret.SetUint(integer.Uint64())
	case xtype.IsFloat(kind):
		f, _ := number.Float64()
		if math.IsInf(f, 0) && !number.IsInf() || ret.OverflowFloat(f) {
			return nil, convbus.NewConversionFailed(value, source, target, fmt.Sprintf("value out of %d-bit float range", target.Bits()))
		}
		ret.SetFloat(f)
	default:
		return nil, convbus.NewConversionFailed(value, source, target, "unsupported number type")
	}
	return ret.Interface(), nil
}

func asBigFloat(value interface{}) (*big.Float, error) {
	switch actual := value.(type) {
	case *big.Int:
		return new(big.Float).SetInt(actual), nil
	case *big.Float:
		return new(big.Float).Copy(actual), nil
	}
	v := reflect.ValueOf(value)
	kind := v.Kind()
	switch {
	case xtype.IsSigned(kind):
		return new(big.Float).SetInt64(v.Int()), nil
	case xtype.IsUnsigned(kind):
		return new(big.Float).SetUint64(v.Uint()), nil
	case xtype.IsFloat(kind):
		f := v.Float()
		if math.IsNaN(f) {
			return nil, fmt.Errorf("NaN is not a number")
		}
		return new(big.Float).SetFloat64(f), nil
	}
	return nil, fmt.Errorf("unsupported number type: %T", value)
}

// NumberToString formats numbers
type NumberToString struct{}

// Convert formats a number
func (c NumberToString) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	switch actual := value.(type) {
	case *big.Int:
		return actual.String(), nil
	case *big.Float:
		return actual.Text('g', -1), nil
	}
	v := reflect.ValueOf(value)
	kind := v.Kind()
	switch {
	case xtype.IsSigned(kind):
		return strconv.FormatInt(v.Int(), 10), nil
	case xtype.IsUnsigned(kind):
		return strconv.FormatUint(v.Uint(), 10), nil
	case xtype.IsFloat(kind):
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), nil
	}
	return nil, convbus.NewConversionFailed(value, source, target, "unsupported number type")
}
