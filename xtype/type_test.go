package xtype

import (
	"fmt"
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	Animal  interface{ Sound() string }
	Dog     struct{ Name string }
	Names   []string
	Color   int
	Level   uint8
	Size    int
	Weekday int
	hidden  struct{ id int }
)

func (d Dog) Sound() string { return "woof" }

const (
	Red Color = iota
	Green
	Blue
)

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

func (l Level) String() string {
	return [...]string{"low", "high"}[l]
}

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
)

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday"}

func (d Weekday) String() string {
	return weekdayNames[d-1]
}

func TestIsSuperType(t *testing.T) {
	var testCases = []struct {
		description string
		super       reflect.Type
		sub         reflect.Type
		expect      bool
	}{
		{description: "identical", super: TypeFor[int](), sub: TypeFor[int](), expect: true},
		{description: "interface", super: TypeFor[Animal](), sub: TypeFor[Dog](), expect: true},
		{description: "empty interface", super: TypeFor[interface{}](), sub: TypeFor[Dog](), expect: true},
		{description: "reversed interface", super: TypeFor[Dog](), sub: TypeFor[Animal](), expect: false},
		{description: "named from unnamed", super: TypeFor[Names](), sub: TypeFor[[]string](), expect: true},
		{description: "distinct scalars", super: TypeFor[int64](), sub: TypeFor[int](), expect: false},
		{description: "nil", super: nil, sub: TypeFor[int](), expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, IsSuperType(testCase.super, testCase.sub), testCase.description)
	}
}

func TestBox(t *testing.T) {
	assert.Equal(t, TypeFor[int](), Box(TypeFor[*int]()))
	assert.Equal(t, TypeFor[string](), Box(TypeFor[*string]()))
	assert.Equal(t, TypeFor[*Dog](), Box(TypeFor[*Dog]()))
	assert.Equal(t, TypeFor[int](), Box(TypeFor[int]()))
	assert.True(t, IsBoxed(TypeFor[*float64]()))
	assert.False(t, IsBoxed(TypeFor[**int]()))
	assert.Nil(t, Box(nil))
}

func TestElementAndKeyValueTypes(t *testing.T) {
	assert.Equal(t, TypeFor[string](), ElementType(TypeFor[[]string]()))
	assert.Equal(t, TypeFor[int](), ElementType(TypeFor[[3]int]()))
	assert.Nil(t, ElementType(TypeFor[map[string]int]()))

	key, value, ok := KeyValueTypes(TypeFor[map[string]int]())
	assert.True(t, ok)
	assert.Equal(t, TypeFor[string](), key)
	assert.Equal(t, TypeFor[int](), value)
	_, _, ok = KeyValueTypes(TypeFor[[]int]())
	assert.False(t, ok)
}

func TestDerefAndAdapt(t *testing.T) {
	v := 5
	actual, ok := Deref(&v)
	assert.True(t, ok)
	assert.Equal(t, 5, actual)
	_, ok = Deref((*int)(nil))
	assert.False(t, ok)

	adapted, err := Adapt(5, TypeFor[*int]())
	require.NoError(t, err)
	assert.Equal(t, 5, *adapted.Interface().(*int))

	adapted, err = Adapt([]string{"a"}, TypeFor[Names]())
	require.NoError(t, err)
	assert.Equal(t, Names{"a"}, adapted.Interface())

	adapted, err = Adapt(nil, TypeFor[*Dog]())
	require.NoError(t, err)
	assert.True(t, adapted.IsNil())

	_, err = Adapt("x", TypeFor[int]())
	assert.Error(t, err)
}

func TestClasses(t *testing.T) {
	var testCases = []struct {
		description string
		class       Class
		candidate   reflect.Type
		expect      bool
	}{
		{description: "integer", class: Integer, candidate: TypeFor[uint16](), expect: true},
		{description: "big integer", class: Integer, candidate: TypeFor[*big.Int](), expect: true},
		{description: "float not integer", class: Integer, candidate: TypeFor[float32](), expect: false},
		{description: "number", class: Number, candidate: TypeFor[*big.Float](), expect: true},
		{description: "named int not string", class: String, candidate: TypeFor[time.Month](), expect: false},
		{description: "enum", class: Enum, candidate: TypeFor[Color](), expect: true},
		{description: "duration not enum", class: Enum, candidate: TypeFor[time.Duration](), expect: false},
		{description: "plain named int not enum", class: Enum, candidate: TypeFor[Size](), expect: false},
		{description: "struct", class: Struct, candidate: TypeFor[*Dog](), expect: true},
		{description: "time not struct", class: Struct, candidate: TypeFor[time.Time](), expect: false},
		{description: "unexported fields only", class: Struct, candidate: TypeFor[hidden](), expect: false},
		{description: "string map", class: StringMap, candidate: TypeFor[map[string]int](), expect: true},
		{description: "type class subtype", class: Of(TypeFor[Animal]()), candidate: TypeFor[Dog](), expect: true},
		{description: "any", class: Any, candidate: TypeFor[chan int](), expect: true},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.class.Contains(testCase.candidate), testCase.description)
	}
	assert.Nil(t, Number.Type())
	assert.Equal(t, TypeFor[Dog](), ClassFor[Dog]().Type())
	assert.Equal(t, "number", Number.String())
}

func TestEnum(t *testing.T) {
	names, err := EnumOf(TypeFor[Color]())
	require.NoError(t, err)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, names.Names())
	value, ok := names.Lookup("Blue")
	assert.True(t, ok)
	assert.Equal(t, Blue, value)
	_, ok = names.Lookup("Purple")
	assert.False(t, ok)

	cached, err := EnumOf(TypeFor[Color]())
	require.NoError(t, err)
	assert.Same(t, names, cached)

	levels, err := EnumOf(TypeFor[Level]())
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "high"}, levels.Names())

	weekdays, err := EnumOf(TypeFor[Weekday]())
	require.NoError(t, err)
	assert.Equal(t, weekdayNames, weekdays.Names())
	day, ok := weekdays.Lookup("Tuesday")
	assert.True(t, ok)
	assert.Equal(t, Tuesday, day)

	months, err := EnumOf(TypeFor[time.Month]())
	require.NoError(t, err)
	assert.Len(t, months.Names(), 12)
	month, ok := months.Lookup("March")
	assert.True(t, ok)
	assert.Equal(t, time.March, month)

	_, err = EnumOf(TypeFor[Size]())
	assert.Error(t, err)
}
