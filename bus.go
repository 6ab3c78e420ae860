package convbus

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/viant/convbus/xtype"
)

type (
	typeKey struct {
		srcType  reflect.Type
		destType reflect.Type
	}

	//snapshot holds registered entries (highest priority first) with their resolution cache
	snapshot struct {
		entries []ConditionalConverter
		cache   *sync.Map // map[typeKey]ConditionalConverter
	}

	//Bus represents a converter registry and dispatcher
	Bus struct {
		mux       sync.Mutex
		state     atomic.Pointer[snapshot]
		canonical []reflect.Type
		logger    *slog.Logger
	}
)

// New creates an empty bus
func New(opts ...Option) *Bus {
	ret := &Bus{logger: slog.New(slog.DiscardHandler)}
	Options(opts).Apply(ret)
	ret.state.Store(&snapshot{cache: &sync.Map{}})
	return ret
}

// Logger returns bus logger
func (b *Bus) Logger() *slog.Logger {
	return b.logger
}

// Register registers a converter for a source class and an exact target type
func (b *Bus) Register(source, target xtype.Class, converter Converter) {
	b.RegisterConditional(&converterAdapter{converter: converter, source: source, target: target})
}

// RegisterFunc registers a converter function for a source class and an exact target type
func (b *Bus) RegisterFunc(source, target xtype.Class, fn ConverterFunc) {
	b.Register(source, target, fn)
}

// RegisterFactory registers a converter factory for source and target classes
func (b *Bus) RegisterFactory(source, target xtype.Class, factory Factory) {
	b.RegisterConditional(&factoryAdapter{factory: factory, source: source, target: target})
}

// RegisterConditional registers an entry with the highest priority
func (b *Bus) RegisterConditional(converter ConditionalConverter) {
	b.register(converter, true)
}

// RegisterFallback registers an entry with the lowest priority
func (b *Bus) RegisterFallback(converter ConditionalConverter) {
	b.register(converter, false)
}

func (b *Bus) register(converter ConditionalConverter, first bool) {
	b.mux.Lock()
	defer b.mux.Unlock()
	prev := b.state.Load()
	entries := make([]ConditionalConverter, 0, len(prev.entries)+1)
	if first {
		entries = append(entries, converter)
		entries = append(entries, prev.entries...)
	} else {
		entries = append(entries, prev.entries...)
		entries = append(entries, converter)
	}
	b.state.Store(&snapshot{entries: entries, cache: &sync.Map{}})
	b.logger.Debug("converter registered", "converter", describe(converter), "entries", len(entries))
}

// Entries returns registered entry descriptions ordered by priority
func (b *Bus) Entries() []string {
	state := b.state.Load()
	ret := make([]string, len(state.entries))
	for i, entry := range state.entries {
		ret[i] = describe(entry)
	}
	return ret
}

// CanonicalTypes returns types tried by ConvertToObject
func (b *Bus) CanonicalTypes() []reflect.Type {
	return b.canonical
}

// CanConvert returns true if a converter exists for the supplied types
func (b *Bus) CanConvert(source, target reflect.Type) bool {
	if source == nil || target == nil {
		return false
	}
	return b.resolve(xtype.Box(source), xtype.Box(target)) != nil
}

// ConvertTo converts value using its runtime type as source type
func (b *Bus) ConvertTo(value interface{}, target reflect.Type) (interface{}, error) {
	return b.Convert(value, reflect.TypeOf(value), target)
}

// Convert converts value from source to target type
func (b *Bus) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	if target == nil {
		return nil, fmt.Errorf("target type was nil")
	}
	if value == nil {
		return nil, NewConversionFailed(value, source, target, "source value was nil")
	}
	if source == nil || source.Kind() == reflect.Interface {
		source = reflect.TypeOf(value)
	}
	if xtype.IsBoxed(source) {
		deref, ok := xtype.Deref(value)
		if !ok {
			return nil, NewConversionFailed(value, source, target, "source pointer was nil")
		}
		value = deref
		source = xtype.Box(source)
	}
	target = xtype.Box(target)
	converter := b.resolve(source, target)
	if converter == nil {
		return nil, &ConverterNotFoundError{Source: source, Target: target}
	}
	return converter.Convert(value, source, target)
}

// ConvertToObject converts value into the first canonical type that accepts it
func (b *Bus) ConvertToObject(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, NewConversionFailed(value, nil, nil, "source value was nil")
	}
	source := reflect.TypeOf(value)
	if b.isCanonical(source) && !isContainer(source) {
		return value, nil
	}
	for _, candidate := range b.candidates(source) {
		if !b.CanConvert(source, candidate) {
			continue
		}
		ret, err := b.Convert(value, source, candidate)
		if err != nil {
			b.logger.Debug("canonical candidate rejected", "source", source.String(), "candidate", candidate.String(), "error", err)
			continue
		}
		return ret, nil
	}
	return nil, &ConverterNotFoundError{Source: source}
}

func (b *Bus) isCanonical(t reflect.Type) bool {
	for _, candidate := range b.canonical {
		if candidate == t {
			return true
		}
	}
	return false
}

// isContainer returns true for types whose elements may still need reduction
func isContainer(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// candidates returns canonical types sharing source scalar kind first, followed by the remaining ones in configured order
func (b *Bus) candidates(source reflect.Type) []reflect.Type {
	kind := xtype.Box(source).Kind()
	ret := make([]reflect.Type, 0, len(b.canonical))
	for _, candidate := range b.canonical {
		if candidate.Kind() == kind && xtype.IsScalar(kind) {
			ret = append(ret, candidate)
		}
	}
	for _, candidate := range b.canonical {
		if candidate.Kind() != kind || !xtype.IsScalar(kind) {
			ret = append(ret, candidate)
		}
	}
	return ret
}

func (b *Bus) resolve(source, target reflect.Type) ConditionalConverter {
	state := b.state.Load()
	key := typeKey{srcType: source, destType: target}
	if cached, ok := state.cache.Load(key); ok {
		return cached.(ConditionalConverter)
	}
	for _, entry := range state.entries {
		if entry.Matches(source, target) {
			state.cache.Store(key, entry)
			return entry
		}
	}
	if xtype.IsSuperType(target, source) {
		state.cache.Store(key, identity)
		return identity
	}
	return nil
}

func describe(converter ConditionalConverter) string {
	if stringer, ok := converter.(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%T", converter)
}
