package objectmapper

import (
	"fmt"
	"reflect"
	"time"

	"github.com/viant/convbus"
	"github.com/viant/convbus/xtype"
	"github.com/viant/xunsafe"
)

// Mapper maps between string keyed maps and instances of one type
type Mapper struct {
	t       reflect.Type
	fields  []*Field
	builder InstanceBuilder
	bus     *convbus.Bus
}

func newMapper(discovery *Discovery, bus *convbus.Bus) (*Mapper, error) {
	t := discovery.Type
	if discovery.Builder == nil {
		return nil, convbus.NewMappingError(t, "", "instance builder was nil", nil)
	}
	names := make(map[string]bool, len(discovery.Fields))
	for _, field := range discovery.Fields {
		if field == nil || field.Name == "" || field.Type == nil || field.Read == nil {
			return nil, convbus.NewMappingError(t, "", "invalid field descriptor", nil)
		}
		if names[field.Name] {
			return nil, convbus.NewMappingError(t, field.Name, "duplicate field name", nil)
		}
		names[field.Name] = true
	}
	return &Mapper{t: t, fields: discovery.Fields, builder: discovery.Builder, bus: bus}, nil
}

// Type returns mapped type
func (m *Mapper) Type() reflect.Type {
	return m.t
}

// Fields returns field descriptors
func (m *Mapper) Fields() []*Field {
	return m.fields
}

// Load creates an instance pointer from values, absent and nil values leave fields at their defaults
func (m *Mapper) Load(values map[string]interface{}) (interface{}, error) {
	staging := m.builder.Begin()
	if err := m.stage(staging, values); err != nil {
		return nil, err
	}
	return m.builder.Complete(staging)
}

// LoadInto updates instance pointer with values
func (m *Mapper) LoadInto(instance interface{}, values map[string]interface{}) error {
	if xtype.IsNil(instance) {
		return convbus.NewMappingError(m.t, "", "instance was nil", nil)
	}
	staging := m.builder.Begin()
	if err := m.stage(staging, values); err != nil {
		return err
	}
	return m.builder.CompleteInto(instance, staging)
}

func (m *Mapper) stage(staging *Staging, values map[string]interface{}) error {
	for _, field := range m.fields {
		raw, ok := values[field.Name]
		if !ok || raw == nil {
			continue
		}
		value, err := m.loadValue(field, raw)
		if err != nil {
			return err
		}
		if err = field.write(staging, value); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mapper) loadValue(field *Field, raw interface{}) (interface{}, error) {
	if field.TimeLayout != "" {
		if text, ok := raw.(string); ok {
			ts, err := time.Parse(field.TimeLayout, text)
			if err != nil {
				return nil, convbus.NewMappingError(m.t, field.Name, "invalid time", err)
			}
			return ts, nil
		}
	}
	target := field.Type
	source := reflect.TypeOf(raw)
	if target.Kind() == reflect.Ptr && !m.bus.CanConvert(source, target) && m.bus.CanConvert(source, target.Elem()) {
		target = target.Elem()
	}
	converted, err := m.bus.Convert(raw, source, target)
	if err != nil {
		return nil, convbus.NewMappingError(m.t, field.Name, "failed to convert value", err)
	}
	if !assignable(reflect.TypeOf(converted), field.Type) {
		return nil, convbus.NewMappingError(m.t, field.Name, fmt.Sprintf("converted value type %T is not assignable to %v", converted, field.Type), nil)
	}
	return converted, nil
}

func assignable(actual, declared reflect.Type) bool {
	if actual == nil {
		return false
	}
	if xtype.IsSuperType(xtype.Box(declared), actual) || xtype.IsSuperType(declared, actual) {
		return true
	}
	return declared.Kind() == reflect.Ptr && xtype.IsSuperType(declared.Elem(), actual)
}

// Save creates a map with canonical field values of instance
func (m *Mapper) Save(instance interface{}) (map[string]interface{}, error) {
	ret := make(map[string]interface{}, len(m.fields))
	if err := m.SaveInto(ret, instance); err != nil {
		return nil, err
	}
	return ret, nil
}

// SaveInto stores canonical field values of instance into values
func (m *Mapper) SaveInto(values map[string]interface{}, instance interface{}) error {
	if values == nil {
		return convbus.NewMappingError(m.t, "", "destination map was nil", nil)
	}
	if xtype.IsNil(instance) {
		return convbus.NewMappingError(m.t, "", "instance was nil", nil)
	}
	instance = m.addressable(instance)
	for _, field := range m.fields {
		value, err := field.Read(instance)
		if err != nil {
			return convbus.NewMappingError(m.t, field.Name, "failed to read field", err)
		}
		if xtype.IsNil(value) {
			values[field.Name] = nil
			continue
		}
		if field.TimeLayout != "" {
			if ts, ok := asTime(value); ok {
				values[field.Name] = ts.Format(field.TimeLayout)
				continue
			}
		}
		object, err := m.bus.ConvertToObject(value)
		if err != nil {
			return convbus.NewMappingError(m.t, field.Name, "failed to convert value", err)
		}
		values[field.Name] = object
	}
	return nil
}

// addressable returns a pointer to a copy of a struct value instance
func (m *Mapper) addressable(instance interface{}) interface{} {
	value := reflect.ValueOf(instance)
	if value.Type() != m.t || value.Kind() != reflect.Struct {
		return instance
	}
	ret := reflect.New(m.t).Interface()
	xunsafe.Copy(xunsafe.AsPointer(ret), xunsafe.AsPointer(instance), int(m.t.Size()))
	return ret
}

func asTime(value interface{}) (time.Time, bool) {
	switch actual := value.(type) {
	case time.Time:
		return actual, true
	case *time.Time:
		return *actual, true
	}
	return time.Time{}, false
}

// Typed maps between string keyed maps and T instances
type Typed[T any] struct {
	mapper *Mapper
}

// For returns typed mapper, T has to be a non pointer type
func For[T any](factory *Factory) (*Typed[T], error) {
	t := xtype.TypeFor[T]()
	if t.Kind() == reflect.Ptr {
		return nil, convbus.NewMappingError(t, "", "use element type instead of pointer", nil)
	}
	mapper, err := factory.Get(t)
	if err != nil {
		return nil, err
	}
	return &Typed[T]{mapper: mapper}, nil
}

// Mapper returns untyped mapper
func (t *Typed[T]) Mapper() *Mapper {
	return t.mapper
}

// Load creates T from values
func (t *Typed[T]) Load(values map[string]interface{}) (*T, error) {
	instance, err := t.mapper.Load(values)
	if err != nil {
		return nil, err
	}
	ret, ok := instance.(*T)
	if !ok {
		return nil, convbus.NewMappingError(t.mapper.t, "", fmt.Sprintf("builder created %T", instance), nil)
	}
	return ret, nil
}

// LoadInto updates instance with values
func (t *Typed[T]) LoadInto(instance *T, values map[string]interface{}) error {
	if instance == nil {
		return convbus.NewMappingError(t.mapper.t, "", "instance was nil", nil)
	}
	return t.mapper.LoadInto(instance, values)
}

// Save creates a map from instance
func (t *Typed[T]) Save(instance *T) (map[string]interface{}, error) {
	if instance == nil {
		return nil, convbus.NewMappingError(t.mapper.t, "", "instance was nil", nil)
	}
	return t.mapper.Save(instance)
}

// SaveInto stores instance fields into values
func (t *Typed[T]) SaveInto(values map[string]interface{}, instance *T) error {
	if instance == nil {
		return convbus.NewMappingError(t.mapper.t, "", "instance was nil", nil)
	}
	return t.mapper.SaveInto(values, instance)
}
