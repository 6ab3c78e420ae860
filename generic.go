package convbus

import (
	"reflect"

	"github.com/viant/convbus/xtype"
)

// ConvertAs converts value into T using value runtime type as source type
func ConvertAs[T any](bus *Bus, value interface{}) (T, error) {
	var ret T
	target := xtype.TypeFor[T]()
	converted, err := bus.Convert(value, reflect.TypeOf(value), target)
	if err != nil {
		return ret, err
	}
	adapted, err := xtype.Adapt(converted, target)
	if err != nil {
		return ret, WrapConversionFailed(value, reflect.TypeOf(value), target, err)
	}
	return adapted.Interface().(T), nil
}

// ConvertTyped converts S value into T with both types taken from type parameters
func ConvertTyped[S, T any](bus *Bus, value S) (T, error) {
	var ret T
	source, target := xtype.TypeFor[S](), xtype.TypeFor[T]()
	converted, err := bus.Convert(value, source, target)
	if err != nil {
		return ret, err
	}
	adapted, err := xtype.Adapt(converted, target)
	if err != nil {
		return ret, WrapConversionFailed(value, source, target, err)
	}
	return adapted.Interface().(T), nil
}

// CanConvertTypes returns true if S converts into T
func CanConvertTypes[S, T any](bus *Bus) bool {
	return bus.CanConvert(xtype.TypeFor[S](), xtype.TypeFor[T]())
}
