package objectmapper

import (
	"reflect"

	"github.com/viant/convbus"
)

// Field describes one mapped field
type Field struct {
	//Name is a map key, unique within mapped type
	Name string
	//Type is a declared field type
	Type reflect.Type
	//TimeLayout optionally formats and parses time values
	TimeLayout string
	//Read returns field value from an instance pointer
	Read func(instance interface{}) (interface{}, error)
	//Write stages field value, nil stages the value under the field name
	Write func(staging *Staging, value interface{}) error
	//Set assigns field value on an instance pointer, used by default builder
	Set func(instance interface{}, value interface{}) error
}

func (f *Field) write(staging *Staging, value interface{}) error {
	if f.Write != nil {
		return f.Write(staging, value)
	}
	return staging.Set(f.Name, value)
}

// Describer is implemented by types supplying their own fields
type Describer interface {
	MappingFields() []*Field
}

// NewBuilder creates a builder allocating zero instances of t and assigning staged values with field setters
func NewBuilder(t reflect.Type, fields []*Field) *Builder {
	byName := make(map[string]*Field, len(fields))
	for _, field := range fields {
		byName[field.Name] = field
	}
	return &Builder{
		Type: t,
		New: func() (interface{}, error) {
			return reflect.New(t).Interface(), nil
		},
		Apply: func(instance interface{}, staging *Staging) error {
			for _, name := range staging.Names() {
				field, ok := byName[name]
				if !ok {
					return convbus.NewMappingError(t, name, "unknown field", nil)
				}
				if field.Set == nil {
					return convbus.NewMappingError(t, name, "field is not settable", nil)
				}
				value, _ := staging.Get(name)
				if err := field.Set(instance, value); err != nil {
					return convbus.NewMappingError(t, name, "failed to set field", err)
				}
			}
			return nil
		},
	}
}
