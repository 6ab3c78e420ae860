package xtype

import (
	"math/big"
	"reflect"
)

// Class represents a type or a family of types a converter is declared for
type Class interface {
	//Contains returns true if candidate belongs to the class
	Contains(candidate reflect.Type) bool
	//Type returns the concrete type of the class, nil for families
	Type() reflect.Type
	String() string
}

type typeClass struct {
	rType reflect.Type
}

func (c *typeClass) Contains(candidate reflect.Type) bool {
	return IsSuperType(c.rType, candidate)
}

func (c *typeClass) Type() reflect.Type {
	return c.rType
}

func (c *typeClass) String() string {
	return c.rType.String()
}

// Of returns a class of a concrete type, including all its subtypes
func Of(t reflect.Type) Class {
	return &typeClass{rType: t}
}

// ClassFor returns a class of T
func ClassFor[T any]() Class {
	return Of(TypeFor[T]())
}

type family struct {
	name     string
	contains func(t reflect.Type) bool
}

func (f *family) Contains(candidate reflect.Type) bool {
	if candidate == nil {
		return false
	}
	return f.contains(candidate)
}

func (f *family) Type() reflect.Type {
	return nil
}

func (f *family) String() string {
	return f.name
}

// NewFamily creates a family class
func NewFamily(name string, contains func(t reflect.Type) bool) Class {
	return &family{name: name, contains: contains}
}

var (
	bigIntType   = reflect.TypeOf((*big.Int)(nil))
	bigFloatType = reflect.TypeOf((*big.Float)(nil))
	stringMap    = reflect.TypeOf(map[string]interface{}{})
)

var (
	//Any contains every type
	Any = NewFamily("any", func(t reflect.Type) bool { return true })

	//Integer contains all integer kinds
	Integer = NewFamily("integer", func(t reflect.Type) bool { return IsInteger(t.Kind()) || t == bigIntType })

	//Float contains float kinds and big floats
	Float = NewFamily("float", func(t reflect.Type) bool { return IsFloat(t.Kind()) || t == bigFloatType })

	//Number contains integers and floats
	Number = NewFamily("number", IsNumber)

	//String contains string kinds
	String = NewFamily("string", func(t reflect.Type) bool { return t.Kind() == reflect.String })

	//Bool contains bool kinds
	Bool = NewFamily("bool", func(t reflect.Type) bool { return t.Kind() == reflect.Bool })

	//Enum contains named integer types implementing fmt.Stringer
	Enum = NewFamily("enum", IsEnum)

	//Struct contains record like structs and pointers to them
	Struct = NewFamily("struct", IsRecord)

	//StringMap contains maps keyed by string kinds
	StringMap = NewFamily("map[string]", func(t reflect.Type) bool {
		return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
	})
)

// StringMapType returns map[string]interface{} type
func StringMapType() reflect.Type {
	return stringMap
}

// IsNumber returns true for numeric kinds and big numbers
func IsNumber(t reflect.Type) bool {
	if t == nil {
		return false
	}
	return IsInteger(t.Kind()) || IsFloat(t.Kind()) || t == bigIntType || t == bigFloatType
}

// IsInteger returns true for signed and unsigned integer kinds
func IsInteger(kind reflect.Kind) bool {
	return IsSigned(kind) || IsUnsigned(kind)
}

// IsSigned returns true for signed integer kinds
func IsSigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// IsUnsigned returns true for unsigned integer kinds
func IsUnsigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// IsFloat returns true for float kinds
func IsFloat(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

// IsBigInt returns true for *big.Int
func IsBigInt(t reflect.Type) bool {
	return t == bigIntType
}

// IsBigFloat returns true for *big.Float
func IsBigFloat(t reflect.Type) bool {
	return t == bigFloatType
}

// IsRecord returns true for structs (or pointers to structs) with at least one exported field
func IsRecord(t reflect.Type) bool {
	aStruct := EnsureStruct(t)
	if aStruct == nil || aStruct == timeType {
		return false
	}
	for i := 0; i < aStruct.NumField(); i++ {
		if aStruct.Field(i).IsExported() {
			return true
		}
	}
	return false
}
