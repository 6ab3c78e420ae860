package objectmapper

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/convbus"
)

func TestStaging(t *testing.T) {
	staging := NewStaging(reflect.TypeOf(Person{}))
	assert.Equal(t, Accumulating, staging.State())
	require.NoError(t, staging.Set("name", "a"))
	require.NoError(t, staging.Set("age", 1))
	require.NoError(t, staging.Set("name", "b"))
	assert.Equal(t, []string{"name", "age"}, staging.Names())
	assert.Equal(t, 2, staging.Len())
	value, ok := staging.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "b", value)

	require.NoError(t, staging.Complete())
	assert.Equal(t, Completed, staging.State())
	assert.Equal(t, "completed", staging.State().String())
	assert.ErrorIs(t, staging.Set("name", "c"), convbus.ErrMapping)
	assert.ErrorIs(t, staging.Complete(), convbus.ErrMapping)
}

func TestBuilder(t *testing.T) {
	mapper, err := NewFactory().Get(reflect.TypeOf(Address{}))
	require.NoError(t, err)
	builder := mapper.builder

	staging := builder.Begin()
	require.NoError(t, staging.Set("city", "Rome"))
	instance, err := builder.Complete(staging)
	require.NoError(t, err)
	assert.Equal(t, &Address{City: "Rome"}, instance)

	_, err = builder.Complete(staging)
	assert.ErrorIs(t, err, convbus.ErrMapping, "completed staging can not be completed again")

	existing := &Address{Street: "Via"}
	staging = builder.Begin()
	require.NoError(t, staging.Set("city", "Rome"))
	require.NoError(t, builder.CompleteInto(existing, staging))
	assert.Equal(t, &Address{Street: "Via", City: "Rome"}, existing)

	staging = builder.Begin()
	require.NoError(t, staging.Set("unknown", 1))
	_, err = builder.Complete(staging)
	assert.ErrorIs(t, err, convbus.ErrMapping)

	_, err = (&Builder{Type: reflect.TypeOf(Address{})}).Complete(NewStaging(nil))
	assert.ErrorIs(t, err, convbus.ErrMapping, "builder without constructor")
}
