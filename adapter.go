package convbus

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/viant/convbus/xtype"
)

// identity returns the source value unchanged
var identity ConditionalConverter = &identityConverter{}

type identityConverter struct{}

func (i *identityConverter) Convert(value interface{}, _, _ reflect.Type) (interface{}, error) {
	return value, nil
}

func (i *identityConverter) Matches(_, _ reflect.Type) bool {
	return true
}

func (i *identityConverter) String() string {
	return "identity"
}

// converterAdapter matches a contravariant source and an invariant target
type converterAdapter struct {
	converter Converter
	source    xtype.Class
	target    xtype.Class
}

func (a *converterAdapter) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	return a.converter.Convert(value, source, target)
}

func (a *converterAdapter) Matches(source, target reflect.Type) bool {
	if a.target.Type() != target {
		return false
	}
	if !a.source.Contains(source) {
		return false
	}
	if condition, ok := a.converter.(Condition); ok {
		return condition.Matches(source, target)
	}
	return true
}

func (a *converterAdapter) String() string {
	return fmt.Sprintf("%v -> %v (%T)", a.source, a.target, a.converter)
}

// factoryAdapter matches source and target families, consulting factory and product conditions
type factoryAdapter struct {
	factory  Factory
	source   xtype.Class
	target   xtype.Class
	products sync.Map // map[reflect.Type]Converter
}

func (a *factoryAdapter) create(target reflect.Type) (Converter, error) {
	if product, ok := a.products.Load(target); ok {
		return product.(Converter), nil
	}
	product, err := a.factory.Create(target)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("factory %T created nil converter for %v", a.factory, target)
	}
	actual, _ := a.products.LoadOrStore(target, product)
	return actual.(Converter), nil
}

func (a *factoryAdapter) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	converter, err := a.create(target)
	if err != nil {
		return nil, WrapConversionFailed(value, source, target, err)
	}
	return converter.Convert(value, source, target)
}

func (a *factoryAdapter) Matches(source, target reflect.Type) bool {
	if !a.target.Contains(target) || !a.source.Contains(source) {
		return false
	}
	if condition, ok := a.factory.(Condition); ok && !condition.Matches(source, target) {
		return false
	}
	converter, err := a.create(target)
	if err != nil {
		return false
	}
	if condition, ok := converter.(Condition); ok {
		return condition.Matches(source, target)
	}
	return true
}

func (a *factoryAdapter) String() string {
	return fmt.Sprintf("%v -> %v (%T)", a.source, a.target, a.factory)
}
