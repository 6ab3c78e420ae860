package objectmapper

import (
	"reflect"
	"sync"

	"github.com/viant/convbus"
)

type (
	//Discoverer discovers fields of a type, nil discovery means the type is not accepted
	Discoverer interface {
		Discover(t reflect.Type) (*Discovery, error)
	}

	//DiscovererFunc adapts a function to Discoverer
	DiscovererFunc func(t reflect.Type) (*Discovery, error)

	//Discovery represents discovered fields with instance builder
	Discovery struct {
		Type    reflect.Type
		Fields  []*Field
		Builder InstanceBuilder
	}

	//ManualDiscoverer returns explicitly registered fields
	ManualDiscoverer struct {
		mux        sync.RWMutex
		registered map[reflect.Type]*Discovery
	}
)

// Discover discovers fields
func (f DiscovererFunc) Discover(t reflect.Type) (*Discovery, error) {
	return f(t)
}

// NewManualDiscoverer creates a manual discoverer
func NewManualDiscoverer() *ManualDiscoverer {
	return &ManualDiscoverer{registered: map[reflect.Type]*Discovery{}}
}

// Register registers fields for t, a nil builder allocates zero instances and uses field setters
func (d *ManualDiscoverer) Register(t reflect.Type, fields []*Field, builder InstanceBuilder) *ManualDiscoverer {
	if builder == nil {
		builder = NewBuilder(t, fields)
	}
	d.mux.Lock()
	d.registered[t] = &Discovery{Type: t, Fields: fields, Builder: builder}
	d.mux.Unlock()
	return d
}

// Discover returns registered fields or fields described by the type itself
func (d *ManualDiscoverer) Discover(t reflect.Type) (*Discovery, error) {
	d.mux.RLock()
	ret, ok := d.registered[t]
	d.mux.RUnlock()
	if ok {
		return ret, nil
	}
	if t.Kind() == reflect.Interface {
		return nil, nil
	}
	describer, ok := reflect.New(t).Interface().(Describer)
	if !ok {
		return nil, nil
	}
	fields := describer.MappingFields()
	if len(fields) == 0 {
		return nil, convbus.NewMappingError(t, "", "describer returned no fields", nil)
	}
	return &Discovery{Type: t, Fields: fields, Builder: NewBuilder(t, fields)}, nil
}
