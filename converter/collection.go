package converter

import (
	"fmt"
	"reflect"

	"github.com/viant/convbus"
	"github.com/viant/convbus/xtype"
)

// Dispatcher converts nested elements
type Dispatcher interface {
	CanConvert(source, target reflect.Type) bool
	Convert(value interface{}, source, target reflect.Type) (interface{}, error)
}

// SliceToSlice converts slices and arrays element wise
type SliceToSlice struct {
	bus Dispatcher
}

// NewSliceToSlice creates a slice converter
func NewSliceToSlice(bus Dispatcher) *SliceToSlice {
	return &SliceToSlice{bus: bus}
}

// Matches returns true if both types are sequences with convertible elements
func (c *SliceToSlice) Matches(source, target reflect.Type) bool {
	srcElem, destElem := xtype.ElementType(source), xtype.ElementType(target)
	if srcElem == nil || destElem == nil {
		return false
	}
	return c.elementsMatch(srcElem, destElem)
}

func (c *SliceToSlice) elementsMatch(srcElem, destElem reflect.Type) bool {
	if xtype.IsInterface(srcElem) {
		return true
	}
	return c.bus.CanConvert(srcElem, destElem)
}

// Convert converts every element, the source is returned when it fits the target and no element changed
func (c *SliceToSlice) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	srcValue := reflect.ValueOf(value)
	srcElem, destElem := xtype.ElementType(source), xtype.ElementType(target)
	length := srcValue.Len()
	copyRequired := !source.AssignableTo(target)
	if !copyRequired && length == 0 {
		return value, nil
	}
	var result reflect.Value
	switch target.Kind() {
	case reflect.Slice:
		result = reflect.MakeSlice(target, length, length)
	case reflect.Array:
		if target.Len() != length {
			return nil, convbus.NewConversionFailed(value, source, target, fmt.Sprintf("expected %d elements, but had %d", target.Len(), length))
		}
		result = reflect.New(target).Elem()
	default:
		return nil, convbus.NewConversionFailed(value, source, target, "unsupported sequence type")
	}
	for i := 0; i < length; i++ {
		item := srcValue.Index(i).Interface()
		converted, err := convertElement(c.bus, item, srcElem, destElem)
		if err != nil {
			return nil, fmt.Errorf("failed to convert element %d: %w", i, err)
		}
		result.Index(i).Set(converted)
		if !same(item, converted) {
			copyRequired = true
		}
	}
	if !copyRequired {
		return value, nil
	}
	return result.Interface(), nil
}

func (c *SliceToSlice) String() string {
	return "sequence -> sequence (converter.SliceToSlice)"
}

// MapToMap converts map keys and values
type MapToMap struct {
	bus Dispatcher
}

// NewMapToMap creates a map converter
func NewMapToMap(bus Dispatcher) *MapToMap {
	return &MapToMap{bus: bus}
}

// Matches returns true if both types are maps with convertible keys and values
func (c *MapToMap) Matches(source, target reflect.Type) bool {
	srcKey, srcValue, ok := xtype.KeyValueTypes(source)
	if !ok {
		return false
	}
	destKey, destValue, ok := xtype.KeyValueTypes(target)
	if !ok {
		return false
	}
	return (xtype.IsInterface(srcKey) || c.bus.CanConvert(srcKey, destKey)) &&
		(xtype.IsInterface(srcValue) || c.bus.CanConvert(srcValue, destValue))
}

// Convert converts every entry, the source is returned when it fits the target and no entry changed
func (c *MapToMap) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	srcMap := reflect.ValueOf(value)
	copyRequired := !source.AssignableTo(target)
	if !copyRequired && srcMap.Len() == 0 {
		return value, nil
	}
	srcKeyType, srcValueType, _ := xtype.KeyValueTypes(source)
	destKeyType, destValueType, _ := xtype.KeyValueTypes(target)
	result := reflect.MakeMapWithSize(target, srcMap.Len())
	iter := srcMap.MapRange()
	for iter.Next() {
		key := iter.Key().Interface()
		item := iter.Value().Interface()
		destKey, err := convertElement(c.bus, key, srcKeyType, destKeyType)
		if err != nil {
			return nil, fmt.Errorf("failed to convert map key %v: %w", key, err)
		}
		destValue, err := convertElement(c.bus, item, srcValueType, destValueType)
		if err != nil {
			return nil, fmt.Errorf("failed to convert map value at %v: %w", key, err)
		}
		if result.MapIndex(destKey).IsValid() {
			return nil, convbus.NewConversionFailed(value, source, target, fmt.Sprintf("duplicate map key %v converted from %v", destKey.Interface(), key))
		}
		result.SetMapIndex(destKey, destValue)
		if !same(key, destKey) || !same(item, destValue) {
			copyRequired = true
		}
	}
	if !copyRequired {
		return value, nil
	}
	return result.Interface(), nil
}

func (c *MapToMap) String() string {
	return "map -> map (converter.MapToMap)"
}

// ValueToSlice wraps a single convertible value into a one element slice
type ValueToSlice struct {
	bus Dispatcher
}

// NewValueToSlice creates a single value to slice converter
func NewValueToSlice(bus Dispatcher) *ValueToSlice {
	return &ValueToSlice{bus: bus}
}

// Matches returns true for a non container source convertible into the target slice element
func (c *ValueToSlice) Matches(source, target reflect.Type) bool {
	if target.Kind() != reflect.Slice {
		return false
	}
	switch source.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Interface:
		return false
	}
	return c.bus.CanConvert(source, target.Elem())
}

// Convert converts value into a one element slice
func (c *ValueToSlice) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	converted, err := convertElement(c.bus, value, source, target.Elem())
	if err != nil {
		return nil, err
	}
	result := reflect.MakeSlice(target, 1, 1)
	result.Index(0).Set(converted)
	return result.Interface(), nil
}

func (c *ValueToSlice) String() string {
	return "value -> slice (converter.ValueToSlice)"
}

// PointerToValue dereferences pointers whose element converts into the target
type PointerToValue struct {
	bus Dispatcher
}

// NewPointerToValue creates a pointer dereferencing converter
func NewPointerToValue(bus Dispatcher) *PointerToValue {
	return &PointerToValue{bus: bus}
}

// Matches returns true when the target does not accept the pointer itself but accepts its element
func (c *PointerToValue) Matches(source, target reflect.Type) bool {
	if source.Kind() != reflect.Ptr || xtype.IsSuperType(target, source) {
		return false
	}
	return c.bus.CanConvert(source.Elem(), target)
}

// Convert converts the pointed value
func (c *PointerToValue) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	ptr := reflect.ValueOf(value)
	if ptr.IsNil() {
		return nil, convbus.NewConversionFailed(value, source, target, "source pointer was nil")
	}
	return c.bus.Convert(ptr.Elem().Interface(), source.Elem(), target)
}

func (c *PointerToValue) String() string {
	return "pointer -> value (converter.PointerToValue)"
}

func convertElement(bus Dispatcher, item interface{}, source, target reflect.Type) (reflect.Value, error) {
	if xtype.IsNil(item) {
		switch target.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
			return reflect.Zero(target), nil
		}
		return reflect.Value{}, convbus.NewConversionFailed(item, source, target, "nil element")
	}
	converted, err := bus.Convert(item, source, target)
	if err != nil {
		return reflect.Value{}, err
	}
	adapted, err := xtype.Adapt(converted, target)
	if err != nil {
		return reflect.Value{}, convbus.WrapConversionFailed(item, source, target, err)
	}
	return adapted, nil
}

// same returns true if both values are identical
func same(prev interface{}, next reflect.Value) bool {
	if !next.IsValid() {
		return prev == nil
	}
	if prev == nil {
		return next.Kind() == reflect.Interface && next.IsNil()
	}
	prevValue := reflect.ValueOf(prev)
	if next.Kind() == reflect.Interface && !next.IsNil() {
		next = next.Elem()
	}
	if prevValue.Type() != next.Type() {
		return false
	}
	switch prevValue.Kind() {
	case reflect.Map, reflect.Slice:
		return prevValue.Pointer() == next.Pointer() && prevValue.Len() == next.Len()
	}
	if !prevValue.Comparable() || !next.Comparable() {
		return false
	}
	return prevValue.Equal(next)
}
