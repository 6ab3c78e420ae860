package objectmapper

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/convbus"
	"github.com/viant/convbus/xtype"
)

type (
	Status int

	Address struct {
		Street string `json:"street"`
		City   string `json:"city"`
	}

	Person struct {
		Name     string         `json:"name"`
		Age      int            `json:"age"`
		Email    *string        `json:"email,omitempty"`
		Address  *Address       `json:"address"`
		Tags     []string       `json:"tags"`
		Scores   map[string]int `json:"scores"`
		Status   Status
		Joined   time.Time `json:"joined" format:"dateFormat=yyyy-MM-dd"`
		Secret   string    `json:"-"`
		Cache    string    `transient:"true"`
		internal int
	}

	Team struct {
		Name    string   `format:"name=title"`
		Members []Person `json:"members"`
		Lead    *Person  `json:"lead"`
		Home    Address  `json:"home"`
	}

	Base struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	Audit struct {
		Created string
	}

	Entity struct {
		Base
		*Audit
		Name string `json:"name"`
	}

	Sample struct {
		Small  int8
		Count  uint16
		Ratio  float32
		Flag   bool
		Level  Status
		Point  *Address
		Home   Address
		Any    interface{}
		Raw    []byte
		Labels map[string]string
		Total  float64
	}

	Holder struct {
		Extra map[string]interface{} `json:"extra"`
		Items []interface{}          `json:"items"`
	}
)

const (
	Active Status = iota
	Disabled
)

func (s Status) String() string {
	switch s {
	case Active:
		return "Active"
	case Disabled:
		return "Disabled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func TestTyped_RoundTrip(t *testing.T) {
	people, err := For[Person](NewFactory())
	require.NoError(t, err)

	person := &Person{
		Name:     "Bob",
		Age:      30,
		Address:  &Address{Street: "Main", City: "Austin"},
		Tags:     []string{"a", "b"},
		Scores:   map[string]int{"x": 1},
		Status:   Disabled,
		Joined:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Secret:   "s",
		Cache:    "c",
		internal: 7,
	}
	values, err := people.Save(person)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"name":     "Bob",
		"age":      30,
		"email":    nil,
		"address":  map[string]interface{}{"street": "Main", "city": "Austin"},
		"tags":     []interface{}{"a", "b"},
		"scores":   map[string]interface{}{"x": 1},
		"Status":   1,
		"joined":   "2024-01-02",
		"internal": 7,
	}, values)

	loaded, err := people.Load(values)
	require.NoError(t, err)
	expect := *person
	expect.Secret, expect.Cache = "", ""
	assert.Equal(t, &expect, loaded)
}

func TestMapper_Load(t *testing.T) {
	var testCases = []struct {
		description string
		values      map[string]interface{}
		expect      *Person
		expectErr   bool
	}{
		{
			description: "values converted from runtime types",
			values:      map[string]interface{}{"name": "Ann", "age": "41", "Status": "Disabled", "tags": "solo"},
			expect:      &Person{Name: "Ann", Age: 41, Status: Disabled, Tags: []string{"solo"}},
		},
		{
			description: "absent and nil values left at default",
			values:      map[string]interface{}{"name": nil},
			expect:      &Person{},
		},
		{
			description: "boxed field",
			values:      map[string]interface{}{"email": "a@b.c"},
			expect: func() *Person {
				email := "a@b.c"
				return &Person{Email: &email}
			}(),
		},
		{
			description: "float to int",
			values:      map[string]interface{}{"age": 12.0},
			expect:      &Person{Age: 12},
		},
		{
			description: "unknown keys ignored",
			values:      map[string]interface{}{"nickname": "B", "Secret": "x"},
			expect:      &Person{},
		},
		{
			description: "invalid value",
			values:      map[string]interface{}{"age": "abc"},
			expectErr:   true,
		},
		{
			description: "invalid date",
			values:      map[string]interface{}{"joined": "02/01/2024"},
			expectErr:   true,
		},
	}

	people, err := For[Person](NewFactory())
	require.NoError(t, err)
	for _, testCase := range testCases {
		actual, err := people.Load(testCase.values)
		if testCase.expectErr {
			assert.ErrorIs(t, err, convbus.ErrMapping, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestMapper_LoadInto(t *testing.T) {
	people, err := For[Person](NewFactory())
	require.NoError(t, err)
	person := &Person{Name: "Old", Age: 10}
	require.NoError(t, people.LoadInto(person, map[string]interface{}{"age": "42"}))
	assert.Equal(t, &Person{Name: "Old", Age: 42}, person)

	assert.ErrorIs(t, people.LoadInto(nil, map[string]interface{}{}), convbus.ErrMapping)
}

func TestMapper_SaveInto(t *testing.T) {
	people, err := For[Person](NewFactory())
	require.NoError(t, err)
	values := map[string]interface{}{"extra": true}
	require.NoError(t, people.SaveInto(values, &Person{Name: "Bob"}))
	assert.Equal(t, true, values["extra"])
	assert.Equal(t, "Bob", values["name"])
	assert.Nil(t, values["address"])
	assert.Nil(t, values["tags"])

	_, err = people.Save(nil)
	assert.ErrorIs(t, err, convbus.ErrMapping)
	assert.ErrorIs(t, people.SaveInto(nil, &Person{}), convbus.ErrMapping)

	values, err = people.Mapper().Save(Person{Name: "Value"})
	require.NoError(t, err)
	assert.Equal(t, "Value", values["name"])
}

func TestMapper_Nested(t *testing.T) {
	teams, err := For[Team](NewFactory())
	require.NoError(t, err)
	team := &Team{
		Name:    "core",
		Members: []Person{{Name: "A", Age: 1, Tags: []string{}}, {Name: "B", Age: 2, Tags: []string{"x"}}},
		Lead:    &Person{Name: "L", Scores: map[string]int{"q": 3}},
		Home:    Address{City: "Paris"},
	}
	values, err := teams.Save(team)
	require.NoError(t, err)
	assert.Equal(t, "core", values["title"])
	members, ok := values["members"].([]interface{})
	require.True(t, ok)
	require.Len(t, members, 2)
	assert.Equal(t, "B", members[1].(map[string]interface{})["name"])
	assert.Equal(t, map[string]interface{}{"street": "", "city": "Paris"}, values["home"])

	loaded, err := teams.Load(values)
	require.NoError(t, err)
	assert.Equal(t, team, loaded)
}

func TestMapper_Embedded(t *testing.T) {
	mapper, err := NewFactory().Get(reflect.TypeOf(Entity{}))
	require.NoError(t, err)
	var names []string
	for _, field := range mapper.Fields() {
		names = append(names, field.Name)
	}
	assert.Equal(t, []string{"name", "id", "Created"}, names)

	loaded, err := mapper.Load(map[string]interface{}{"id": "5", "name": "outer", "Created": "now"})
	require.NoError(t, err)
	assert.Equal(t, &Entity{Base: Base{ID: 5}, Audit: &Audit{Created: "now"}, Name: "outer"}, loaded)

	values, err := mapper.Save(&Entity{Base: Base{ID: 1, Name: "inner"}, Name: "outer"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": 1, "name": "outer", "Created": nil}, values)
}

func TestMapper_NotAssignable(t *testing.T) {
	bus := NewBus()
	bus.RegisterFunc(xtype.String, xtype.Of(reflect.TypeOf(0)), func(value interface{}, source, target reflect.Type) (interface{}, error) {
		return "not a number", nil
	})
	people, err := For[Person](NewFactory(WithBus(bus)))
	require.NoError(t, err)
	_, err = people.Load(map[string]interface{}{"age": "1"})
	require.ErrorIs(t, err, convbus.ErrMapping)
	assert.Contains(t, err.Error(), "not assignable")
}

func TestMapper_FieldKinds(t *testing.T) {
	samples, err := For[Sample](NewFactory())
	require.NoError(t, err)
	loaded, err := samples.Load(map[string]interface{}{
		"Small":  7,
		"Count":  "12",
		"Ratio":  1.5,
		"Flag":   "yes",
		"Level":  "Disabled",
		"Point":  map[string]interface{}{"city": "Oslo"},
		"Home":   map[string]interface{}{"street": "Main"},
		"Any":    "v",
		"Raw":    "abc",
		"Labels": map[string]interface{}{"a": "b"},
		"Total":  "2.25",
	})
	require.NoError(t, err)
	expect := &Sample{
		Small:  7,
		Count:  12,
		Ratio:  1.5,
		Flag:   true,
		Level:  Disabled,
		Point:  &Address{City: "Oslo"},
		Home:   Address{Street: "Main"},
		Any:    "v",
		Raw:    []byte("abc"),
		Labels: map[string]string{"a": "b"},
		Total:  2.25,
	}
	assert.Equal(t, expect, loaded)

	into := &Sample{Small: 1, Count: 2, Flag: true, Total: 3}
	require.NoError(t, samples.LoadInto(into, map[string]interface{}{"Small": -3}))
	assert.Equal(t, &Sample{Small: -3, Count: 2, Flag: true, Total: 3}, into, "narrow writes leave neighbouring fields intact")
}

func TestMapper_SaveInterfaceContainers(t *testing.T) {
	holders, err := For[Holder](NewFactory())
	require.NoError(t, err)
	holder := &Holder{
		Extra: map[string]interface{}{"a": Address{City: "Paris"}, "n": 1},
		Items: []interface{}{&Address{Street: "Main"}, "x", []interface{}{Address{}}},
	}
	values, err := holders.Save(holder)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"extra": map[string]interface{}{
			"a": map[string]interface{}{"street": "", "city": "Paris"},
			"n": 1,
		},
		"items": []interface{}{
			map[string]interface{}{"street": "Main", "city": ""},
			"x",
			[]interface{}{map[string]interface{}{"street": "", "city": ""}},
		},
	}, values)
}
