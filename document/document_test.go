package document

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/convbus/objectmapper"
)

type (
	Item struct {
		SKU   string  `json:"sku"`
		Price float64 `json:"price"`
	}

	Order struct {
		ID       int               `json:"id"`
		Customer string            `json:"customer"`
		Paid     bool              `json:"paid"`
		Items    []Item            `json:"items"`
		Labels   map[string]string `json:"labels"`
		Note     *string           `json:"note"`
	}

	Envelope struct {
		Meta    map[string]interface{} `json:"meta"`
		Payload []interface{}          `json:"payload"`
	}
)

func TestEncode(t *testing.T) {
	var testCases = []struct {
		description string
		values      map[string]interface{}
		expect      string
		expectErr   bool
	}{
		{
			description: "scalars with sorted keys",
			values:      map[string]interface{}{"b": 1, "a": "x", "c": true, "d": nil, "e": 1.5, "f": uint8(2)},
			expect:      `{"a":"x","b":1,"c":true,"d":null,"e":1.5,"f":2}`,
		},
		{
			description: "nested",
			values: map[string]interface{}{
				"list": []interface{}{1, "two", nil, map[string]interface{}{"k": false}},
				"map":  map[string]interface{}{"x": []interface{}{}},
			},
			expect: `{"list":[1,"two",null,{"k":false}],"map":{"x":[]}}`,
		},
		{
			description: "big numbers",
			values:      map[string]interface{}{"n": new(big.Int).Lsh(big.NewInt(1), 70)},
			expect:      `{"n":1180591620717411303424}`,
		},
		{
			description: "typed collections",
			values:      map[string]interface{}{"ids": []int{1, 2}, "m": map[string]int{"a": 1}},
			expect:      `{"ids":[1,2],"m":{"a":1}}`,
		},
		{
			description: "unsupported value",
			values:      map[string]interface{}{"ch": make(chan int)},
			expectErr:   true,
		},
	}
	for _, testCase := range testCases {
		data, err := Encode(testCase.values)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.JSONEq(t, testCase.expect, string(data), testCase.description)
	}
}

func TestDecode(t *testing.T) {
	values, err := Decode([]byte(`{"a":"x","b":1,"c":[1,{"d":null}],"e":{"f":true}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"a": "x",
		"b": float64(1),
		"c": []interface{}{float64(1), map[string]interface{}{"d": nil}},
		"e": map[string]interface{}{"f": true},
	}, values)

	_, err = Decode([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	factory := objectmapper.NewFactory()
	order := &Order{
		ID:       7,
		Customer: "Ann",
		Paid:     true,
		Items:    []Item{{SKU: "a-1", Price: 2.5}, {SKU: "b-2", Price: 10}},
		Labels:   map[string]string{"channel": "web"},
	}
	data, err := Marshal(factory, order)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"customer":"Ann","paid":true,"items":[{"sku":"a-1","price":2.5},{"sku":"b-2","price":10}],"labels":{"channel":"web"},"note":null}`, string(data))

	loaded, err := Unmarshal[Order](factory, data)
	require.NoError(t, err)
	assert.Equal(t, order, loaded)

	mapper, err := factory.Get(reflect.TypeOf(Order{}))
	require.NoError(t, err)
	instance, err := Load(mapper, []byte(`{"id":"8","customer":"Bob","note":"fragile"}`))
	require.NoError(t, err)
	note := "fragile"
	assert.Equal(t, &Order{ID: 8, Customer: "Bob", Note: &note}, instance)

	data, err = Save(mapper, instance)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":8,"customer":"Bob","paid":false,"items":null,"labels":null,"note":"fragile"}`, string(data))
}

func TestMarshal_InterfaceContainers(t *testing.T) {
	factory := objectmapper.NewFactory()
	envelope := &Envelope{
		Meta:    map[string]interface{}{"item": Item{SKU: "a-1", Price: 2.5}},
		Payload: []interface{}{&Item{SKU: "b-2"}, 3},
	}
	data, err := Marshal(factory, envelope)
	require.NoError(t, err)
	assert.JSONEq(t, `{"meta":{"item":{"sku":"a-1","price":2.5}},"payload":[{"sku":"b-2","price":0},3]}`, string(data))
}
