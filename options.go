package convbus

import (
	"log/slog"
	"reflect"
)

// Option bus option
type Option func(b *Bus)

// Options represents bus options
type Options []Option

// Apply applies options
func (o Options) Apply(b *Bus) {
	if len(o) == 0 {
		return
	}
	for _, opt := range o {
		opt(b)
	}
}

// WithLogger sets bus logger
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithCanonicalTypes sets ordered types tried by ConvertToObject
func WithCanonicalTypes(types ...reflect.Type) Option {
	return func(b *Bus) {
		b.canonical = append([]reflect.Type{}, types...)
	}
}

// WithAdditionalCanonicalTypes appends types tried by ConvertToObject
func WithAdditionalCanonicalTypes(types ...reflect.Type) Option {
	return func(b *Bus) {
		b.canonical = append(b.canonical, types...)
	}
}
