package objectmapper

import (
	"log/slog"
	"reflect"

	"github.com/viant/convbus"
	"github.com/viant/convbus/internal/fifo"
)

// Factory creates and caches mappers per type
type Factory struct {
	bus         *convbus.Bus
	discoverers []Discoverer
	capacity    int
	logger      *slog.Logger
	mappers     *fifo.Cache[reflect.Type, *Mapper]
}

// FactoryOption represents factory option
type FactoryOption func(f *Factory)

// WithBus sets conversion bus used by mappers
func WithBus(bus *convbus.Bus) FactoryOption {
	return func(f *Factory) {
		f.bus = bus
	}
}

// WithDiscoverers sets discoverers, the first accepting a type wins
func WithDiscoverers(discoverers ...Discoverer) FactoryOption {
	return func(f *Factory) {
		f.discoverers = discoverers
	}
}

// WithCapacity sets maximum number of cached mappers
func WithCapacity(capacity int) FactoryOption {
	return func(f *Factory) {
		f.capacity = capacity
	}
}

// WithLogger sets factory logger
func WithLogger(logger *slog.Logger) FactoryOption {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFactory creates a mapper factory, by default it uses manual then struct discoverer and a bus with object mapping converters
func NewFactory(opts ...FactoryOption) *Factory {
	ret := &Factory{capacity: fifo.DefaultCapacity, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(ret)
	}
	if len(ret.discoverers) == 0 {
		ret.discoverers = []Discoverer{NewManualDiscoverer(), NewStructDiscoverer()}
	}
	if ret.bus == nil {
		ret.bus = newBus(convbus.WithLogger(ret.logger))
		Register(ret.bus, ret)
	}
	ret.mappers = fifo.New[reflect.Type, *Mapper](ret.capacity).OnEvict(func(key reflect.Type, _ *Mapper) {
		ret.logger.Debug("mapper evicted", "type", key.String())
	})
	return ret
}

// Bus returns conversion bus
func (f *Factory) Bus() *convbus.Bus {
	return f.bus
}

// Len returns number of cached mappers
func (f *Factory) Len() int {
	return f.mappers.Len()
}

// Get returns a cached mapper or builds one, a pointer to struct resolves to the struct mapper
func (f *Factory) Get(t reflect.Type) (*Mapper, error) {
	if t == nil {
		return nil, convbus.NewMappingError(nil, "", "type was nil", nil)
	}
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct {
		t = t.Elem()
	}
	return f.mappers.GetOrCreate(t, func() (*Mapper, error) {
		return f.build(t)
	})
}

func (f *Factory) build(t reflect.Type) (*Mapper, error) {
	for _, discoverer := range f.discoverers {
		discovery, err := discoverer.Discover(t)
		if err != nil {
			return nil, err
		}
		if discovery == nil {
			continue
		}
		if discovery.Type == nil {
			discovery.Type = t
		}
		mapper, err := newMapper(discovery, f.bus)
		if err != nil {
			return nil, err
		}
		f.logger.Debug("mapper created", "type", t.String(), "fields", len(discovery.Fields))
		return mapper, nil
	}
	if t.Kind() == reflect.Interface {
		return nil, convbus.NewMappingError(t, "", "concrete type required", nil)
	}
	return nil, convbus.NewMappingError(t, "", "no field discoverer accepted type", nil)
}
