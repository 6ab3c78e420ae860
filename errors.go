package convbus

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	//ErrConverterNotFound matches errors reported when no converter applies to a type pair
	ErrConverterNotFound = errors.New("converter not found")
	//ErrConversionFailed matches errors reported by a converter that could not produce a value
	ErrConversionFailed = errors.New("conversion failed")
	//ErrMapping matches object mapper errors
	ErrMapping = errors.New("mapping failed")
)

// ConverterNotFoundError reports a type pair without converter, Target is nil when no canonical type applied
type ConverterNotFoundError struct {
	Source reflect.Type
	Target reflect.Type
}

func (e *ConverterNotFoundError) Error() string {
	if e.Target == nil {
		return fmt.Sprintf("failed to find converter for source type %v to any canonical type", e.Source)
	}
	return fmt.Sprintf("failed to find converter for source type %v to target type %v", e.Source, e.Target)
}

// Is matches ErrConverterNotFound
func (e *ConverterNotFoundError) Is(target error) bool {
	return target == ErrConverterNotFound
}

// ConversionFailedError reports a converter failure
type ConversionFailedError struct {
	Source reflect.Type
	Target reflect.Type
	Value  interface{}
	Reason string
	Err    error
}

func (e *ConversionFailedError) Error() string {
	msg := fmt.Sprintf("failed to convert value %v of type %v to %v", e.Value, e.Source, e.Target)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrConversionFailed
func (e *ConversionFailedError) Is(target error) bool {
	return target == ErrConversionFailed
}

func (e *ConversionFailedError) Unwrap() error {
	return e.Err
}

// MappingError reports an object mapper failure
type MappingError struct {
	Type    reflect.Type
	Field   string
	Message string
	Err     error
}

func (e *MappingError) Error() string {
	msg := fmt.Sprintf("failed to map %v", e.Type)
	if e.Field != "" {
		msg += "." + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches ErrMapping
func (e *MappingError) Is(target error) bool {
	return target == ErrMapping
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// NewConversionFailed creates a conversion failure
func NewConversionFailed(value interface{}, source, target reflect.Type, reason string) error {
	return &ConversionFailedError{Value: value, Source: source, Target: target, Reason: reason}
}

// WrapConversionFailed creates a conversion failure caused by err
func WrapConversionFailed(value interface{}, source, target reflect.Type, err error) error {
	return &ConversionFailedError{Value: value, Source: source, Target: target, Err: err}
}

// NewMappingError creates a mapping error
func NewMappingError(t reflect.Type, field string, message string, err error) error {
	return &MappingError{Type: t, Field: field, Message: message, Err: err}
}
