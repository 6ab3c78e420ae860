package document

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/francoispqt/gojay"
)

type (
	encoder struct {
		err error
	}

	object struct {
		values map[string]interface{}
		state  *encoder
	}

	array struct {
		values []interface{}
		state  *encoder
	}

	decoded map[string]interface{}
)

// Decode decodes JSON object, numbers are decoded as float64
func Decode(data []byte) (map[string]interface{}, error) {
	ret := decoded{}
	if err := gojay.UnmarshalJSONObject(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return ret, nil
}

func (d decoded) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var value interface{}
	if err := dec.Interface(&value); err != nil {
		return err
	}
	d[key] = value
	return nil
}

func (d decoded) NKeys() int {
	return 0
}

// Encode encodes values as JSON object with sorted keys
func Encode(values map[string]interface{}) ([]byte, error) {
	if values == nil {
		return []byte("null"), nil
	}
	state := &encoder{}
	data, err := gojay.MarshalJSONObject(&object{values: values, state: state})
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if state.err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", state.err)
	}
	return data, nil
}

func (o *object) MarshalJSONObject(enc *gojay.Encoder) {
	keys := make([]string, 0, len(o.values))
	for key := range o.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value, err := o.state.normalize(o.values[key])
		if err != nil {
			o.state.fail(fmt.Errorf("%v: %w", key, err))
			continue
		}
		switch actual := value.(type) {
		case nil:
			enc.AddNullKey(key)
		case bool:
			enc.AddBoolKey(key, actual)
		case string:
			enc.AddStringKey(key, actual)
		case int64:
			enc.AddInt64Key(key, actual)
		case uint64:
			enc.AddUint64Key(key, actual)
		case float64:
			enc.AddFloat64Key(key, actual)
		case *gojay.EmbeddedJSON:
			enc.AddEmbeddedJSONKey(key, actual)
		case *object:
			enc.AddObjectKey(key, actual)
		case *array:
			enc.AddArrayKey(key, actual)
		}
	}
}

func (o *object) IsNil() bool {
	return o.values == nil
}

func (a *array) MarshalJSONArray(enc *gojay.Encoder) {
	for i, item := range a.values {
		value, err := a.state.normalize(item)
		if err != nil {
			a.state.fail(fmt.Errorf("[%d]: %w", i, err))
			enc.AddNull()
			continue
		}
		switch actual := value.(type) {
		case nil:
			enc.AddNull()
		case bool:
			enc.AddBool(actual)
		case string:
			enc.AddString(actual)
		case int64:
			enc.AddInt64(actual)
		case uint64:
			enc.AddUint64(actual)
		case float64:
			enc.AddFloat64(actual)
		case *gojay.EmbeddedJSON:
			enc.AddEmbeddedJSON(actual)
		case *object:
			enc.AddObject(actual)
		case *array:
			enc.AddArray(actual)
		}
	}
}

func (a *array) IsNil() bool {
	return a.values == nil
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// normalize reduces value to one of nil, bool, string, int64, uint64, float64, *gojay.EmbeddedJSON, *object or *array
func (e *encoder) normalize(value interface{}) (interface{}, error) {
	switch actual := value.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return &object{values: actual, state: e}, nil
	case []interface{}:
		return &array{values: actual, state: e}, nil
	case *big.Int:
		if actual == nil {
			return nil, nil
		}
		embedded := gojay.EmbeddedJSON(actual.String())
		return &embedded, nil
	case *big.Float:
		if actual == nil {
			return nil, nil
		}
		if actual.IsInf() {
			return nil, fmt.Errorf("unsupported value: %v", actual)
		}
		embedded := gojay.EmbeddedJSON(actual.Text('g', -1))
		return &embedded, nil
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return e.normalize(v.Elem().Interface())
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		values := make(map[string]interface{}, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			values[iter.Key().String()] = iter.Value().Interface()
		}
		return &object{values: values, state: e}, nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, nil
		}
		values := make([]interface{}, v.Len())
		for i := range values {
			values[i] = v.Index(i).Interface()
		}
		return &array{values: values, state: e}, nil
	}
	return nil, fmt.Errorf("unsupported value type: %T", value)
}
