package objectmapper

import (
	"reflect"

	"github.com/viant/convbus"
	"github.com/viant/convbus/converter"
	"github.com/viant/convbus/xtype"
)

var (
	stringMapType = xtype.StringMapType()
	objectsType   = reflect.TypeOf([]interface{}{})
)

// NewBus creates a bus with built-in converters and struct mapping converters backed by a new factory
func NewBus(opts ...convbus.Option) *convbus.Bus {
	ret := newBus(opts...)
	Register(ret, NewFactory(WithBus(ret), WithLogger(ret.Logger())))
	return ret
}

func newBus(opts ...convbus.Option) *convbus.Bus {
	options := append([]convbus.Option{
		convbus.WithCanonicalTypes(converter.CanonicalTypes...),
		convbus.WithAdditionalCanonicalTypes(stringMapType, objectsType),
	}, opts...)
	ret := convbus.New(options...)
	converter.Register(ret)
	return ret
}

// Register registers struct mapping converters using factory mappers
func Register(bus *convbus.Bus, factory *Factory) {
	bus.RegisterConditional(&ObjectsToObjects{bus: bus})
	bus.Register(xtype.Struct, xtype.Of(stringMapType), &ObjectToMap{factory: factory})
	bus.RegisterFactory(xtype.StringMap, xtype.Struct, &MapToObject{factory: factory})
}

// ObjectToMap saves structs into maps
type ObjectToMap struct {
	factory *Factory
}

// Convert saves value with its type mapper
func (c *ObjectToMap) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	if xtype.IsNil(value) {
		return nil, convbus.NewConversionFailed(value, source, target, "source value was nil")
	}
	mapper, err := c.factory.Get(source)
	if err != nil {
		return nil, convbus.WrapConversionFailed(value, source, target, err)
	}
	return mapper.Save(value)
}

// MapToObject creates struct loaders
type MapToObject struct {
	factory *Factory
}

// Create creates a loader for target struct or pointer to struct
// The loader resolves its mapper from the factory on every call.
func (c *MapToObject) Create(target reflect.Type) (convbus.Converter, error) {
	if _, err := c.factory.Get(target); err != nil {
		return nil, err
	}
	return convbus.ConverterFunc(func(value interface{}, source, target reflect.Type) (interface{}, error) {
		values, err := asStringMap(value)
		if err != nil {
			return nil, convbus.WrapConversionFailed(value, source, target, err)
		}
		mapper, err := c.factory.Get(target)
		if err != nil {
			return nil, convbus.WrapConversionFailed(value, source, target, err)
		}
		instance, err := mapper.Load(values)
		if err != nil {
			return nil, err
		}
		if target.Kind() == reflect.Struct {
			return reflect.ValueOf(instance).Elem().Interface(), nil
		}
		return instance, nil
	}), nil
}

func asStringMap(value interface{}) (map[string]interface{}, error) {
	if ret, ok := value.(map[string]interface{}); ok {
		return ret, nil
	}
	source := reflect.ValueOf(value)
	if source.Kind() != reflect.Map || source.Type().Key().Kind() != reflect.String {
		return nil, convbus.NewConversionFailed(value, source.Type(), stringMapType, "expected string keyed map")
	}
	ret := make(map[string]interface{}, source.Len())
	iter := source.MapRange()
	for iter.Next() {
		ret[iter.Key().String()] = iter.Value().Interface()
	}
	return ret, nil
}

// ObjectsToObjects reduces slice elements and string keyed map values to canonical objects
type ObjectsToObjects struct {
	bus *convbus.Bus
}

// Matches returns true for sequences targeting []interface{} and string keyed maps targeting map[string]interface{}
func (c *ObjectsToObjects) Matches(source, target reflect.Type) bool {
	switch target {
	case objectsType:
		return xtype.ElementType(source) != nil
	case stringMapType:
		return source.Kind() == reflect.Map && source.Key().Kind() == reflect.String
	}
	return false
}

// Convert converts every element with ConvertToObject
func (c *ObjectsToObjects) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	src := reflect.ValueOf(value)
	if target == objectsType {
		ret := make([]interface{}, src.Len())
		for i := range ret {
			item, err := c.object(src.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			ret[i] = item
		}
		return ret, nil
	}
	ret := make(map[string]interface{}, src.Len())
	iter := src.MapRange()
	for iter.Next() {
		item, err := c.object(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		ret[iter.Key().String()] = item
	}
	return ret, nil
}

func (c *ObjectsToObjects) object(value interface{}) (interface{}, error) {
	if xtype.IsNil(value) {
		return nil, nil
	}
	return c.bus.ConvertToObject(value)
}

func (c *ObjectsToObjects) String() string {
	return "sequence|map -> []interface{}|map[string]interface{} (objectmapper.ObjectsToObjects)"
}
