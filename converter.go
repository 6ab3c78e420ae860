package convbus

import (
	"reflect"
)

type (
	//Converter converts a value of a source type into a value of a target type
	Converter interface {
		Convert(value interface{}, source, target reflect.Type) (interface{}, error)
	}

	//ConverterFunc adapts a function to Converter
	ConverterFunc func(value interface{}, source, target reflect.Type) (interface{}, error)

	//Factory creates a converter specialized for a target type
	Factory interface {
		Create(target reflect.Type) (Converter, error)
	}

	//FactoryFunc adapts a function to Factory
	FactoryFunc func(target reflect.Type) (Converter, error)

	//Condition narrows converter applicability beyond declared types
	Condition interface {
		Matches(source, target reflect.Type) bool
	}

	//ConditionFunc adapts a function to Condition
	ConditionFunc func(source, target reflect.Type) bool

	//ConditionalConverter represents a registry entry
	ConditionalConverter interface {
		Converter
		Condition
	}

	conditional struct {
		Converter
		Condition
		name string
	}
)

// Convert converts a value
func (f ConverterFunc) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	return f(value, source, target)
}

// Create creates a converter
func (f FactoryFunc) Create(target reflect.Type) (Converter, error) {
	return f(target)
}

// Matches returns true if the condition holds
func (f ConditionFunc) Matches(source, target reflect.Type) bool {
	return f(source, target)
}

func (c *conditional) String() string {
	return c.name
}

// NewConditional pairs a converter with an applicability condition
func NewConditional(name string, converter Converter, condition Condition) ConditionalConverter {
	return &conditional{Converter: converter, Condition: condition, name: name}
}
