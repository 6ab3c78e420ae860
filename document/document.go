package document

import (
	"github.com/viant/convbus/objectmapper"
)

// Load decodes JSON document and loads it with mapper
func Load(mapper *objectmapper.Mapper, data []byte) (interface{}, error) {
	values, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return mapper.Load(values)
}

// Save saves instance with mapper and encodes it as JSON document
func Save(mapper *objectmapper.Mapper, instance interface{}) ([]byte, error) {
	values, err := mapper.Save(instance)
	if err != nil {
		return nil, err
	}
	return Encode(values)
}

// Unmarshal decodes JSON document into a new T
func Unmarshal[T any](factory *objectmapper.Factory, data []byte) (*T, error) {
	typed, err := objectmapper.For[T](factory)
	if err != nil {
		return nil, err
	}
	values, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return typed.Load(values)
}

// Marshal encodes T as JSON document
func Marshal[T any](factory *objectmapper.Factory, instance *T) ([]byte, error) {
	typed, err := objectmapper.For[T](factory)
	if err != nil {
		return nil, err
	}
	values, err := typed.Save(instance)
	if err != nil {
		return nil, err
	}
	return Encode(values)
}
