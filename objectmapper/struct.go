package objectmapper

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/viant/convbus"
	"github.com/viant/convbus/xtype"
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	ftime "github.com/viant/tagly/format/time"
	"github.com/viant/xunsafe"
)

type (
	//Constructor creates an instance pointer of a struct type, nil instance means the type is not accepted
	Constructor func(t reflect.Type) (interface{}, error)

	//StructOption represents struct discoverer option
	StructOption func(d *StructDiscoverer)

	//StructDiscoverer discovers struct fields with reflection
	StructDiscoverer struct {
		exportedOnly bool
		caseFormat   text.CaseFormat
		constructor  Constructor
	}

	accessor struct {
		owner reflect.Type
		path  []*xunsafe.Field
		field *xunsafe.Field
	}

	level struct {
		t    reflect.Type
		path []*xunsafe.Field
	}
)

// WithExportedOnly skips unexported fields
func WithExportedOnly() StructOption {
	return func(d *StructDiscoverer) {
		d.exportedOnly = true
	}
}

// WithCaseFormat formats untagged field names
func WithCaseFormat(caseFormat text.CaseFormat) StructOption {
	return func(d *StructDiscoverer) {
		d.caseFormat = caseFormat
	}
}

// WithConstructor sets instance constructor
func WithConstructor(fn Constructor) StructOption {
	return func(d *StructDiscoverer) {
		d.constructor = fn
	}
}

// NewStructDiscoverer creates a struct discoverer
func NewStructDiscoverer(opts ...StructOption) *StructDiscoverer {
	ret := &StructDiscoverer{}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Discover discovers struct fields, embedded structs fields are promoted unless shadowed
func (d *StructDiscoverer) Discover(t reflect.Type) (*Discovery, error) {
	if t == nil {
		return nil, convbus.NewMappingError(nil, "", "type was nil", nil)
	}
	if t.Kind() == reflect.Interface {
		return nil, convbus.NewMappingError(t, "", "concrete type required", nil)
	}
	structType := xtype.EnsureStruct(t)
	if structType == nil {
		return nil, nil
	}
	newInstance := d.newInstance(structType)
	if d.constructor != nil {
		probe, err := newInstance()
		if err != nil {
			return nil, convbus.NewMappingError(structType, "", "failed to create instance", err)
		}
		if probe == nil {
			return nil, nil
		}
	}
	fields := d.fields(structType)
	builder := NewBuilder(structType, fields)
	builder.New = newInstance
	return &Discovery{Type: structType, Fields: fields, Builder: builder}, nil
}

func (d *StructDiscoverer) newInstance(t reflect.Type) func() (interface{}, error) {
	if d.constructor == nil {
		return func() (interface{}, error) {
			return reflect.New(t).Interface(), nil
		}
	}
	return func() (interface{}, error) {
		ret, err := d.constructor(t)
		if err != nil || ret == nil {
			return nil, err
		}
		if reflect.TypeOf(ret) != reflect.PointerTo(t) {
			return nil, fmt.Errorf("constructor returned %T, expected *%v", ret, t)
		}
		return ret, nil
	}
}

func (d *StructDiscoverer) fields(structType reflect.Type) []*Field {
	var ret []*Field
	seen := map[string]bool{}
	visited := map[reflect.Type]bool{structType: true}
	queue := []level{{t: structType}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for i := 0; i < current.t.NumField(); i++ {
			structField := current.t.Field(i)
			tag, _ := format.Parse(structField.Tag)
			if tag == nil {
				tag = &format.Tag{}
			}
			jsonName, transient := jsonTag(structField.Tag)
			if transient || tag.Ignore || structField.Tag.Get("transient") == "true" {
				continue
			}
			if structField.Anonymous && tag.Name == "" && jsonName == "" {
				if embedded := xtype.EnsureStruct(structField.Type); embedded != nil && !xtype.IsTime(embedded) {
					if !visited[embedded] {
						visited[embedded] = true
						path := append(append([]*xunsafe.Field{}, current.path...), xunsafe.NewField(structField))
						queue = append(queue, level{t: embedded, path: path})
					}
					continue
				}
			}
			if !structField.IsExported() && d.exportedOnly {
				continue
			}
			switch structField.Type.Kind() {
			case reflect.Func, reflect.Chan, reflect.UnsafePointer:
				continue
			}
			name := d.fieldName(structField, tag, jsonName)
			if seen[name] {
				continue
			}
			seen[name] = true
			ret = append(ret, newStructField(structType, name, structField, tag, current.path))
		}
	}
	return ret
}

func (d *StructDiscoverer) fieldName(field reflect.StructField, tag *format.Tag, jsonName string) string {
	if tag.Name != "" {
		return tag.Name
	}
	if jsonName != "" {
		return jsonName
	}
	if d.caseFormat.IsDefined() {
		return text.DetectCaseFormat(field.Name).Format(field.Name, d.caseFormat)
	}
	return field.Name
}

func jsonTag(tag reflect.StructTag) (string, bool) {
	encoded, ok := tag.Lookup("json")
	if !ok {
		return "", false
	}
	if encoded == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(encoded, ",")
	return name, false
}

func newStructField(owner reflect.Type, name string, structField reflect.StructField, tag *format.Tag, path []*xunsafe.Field) *Field {
	acc := &accessor{owner: owner, path: path, field: xunsafe.NewField(structField)}
	ret := &Field{
		Name: name,
		Type: structField.Type,
		Read: acc.read,
		Set:  acc.set,
	}
	if xtype.IsTime(structField.Type) {
		ret.TimeLayout = tag.TimeLayout
		if ret.TimeLayout == "" && tag.DateFormat != "" {
			ret.TimeLayout = ftime.DateFormatToTimeLayout(tag.DateFormat)
		}
	}
	return ret
}

// holder returns pointer of a struct declaring the field, unset embedded pointers are allocated on demand
func (a *accessor) holder(instance interface{}, allocate bool) (unsafe.Pointer, error) {
	value := reflect.ValueOf(instance)
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Type().Elem() != a.owner {
		return nil, fmt.Errorf("expected non nil *%v, but had %T", a.owner, instance)
	}
	ptr := xunsafe.AsPointer(instance)
	for _, hop := range a.path {
		slot := hop.Pointer(ptr)
		if hop.Type.Kind() != reflect.Ptr {
			ptr = slot
			continue
		}
		if *(*unsafe.Pointer)(slot) == nil && !allocate {
			return nil, nil
		}
		ptr = xunsafe.SafeDerefPointer(slot, hop.Type)
	}
	return ptr, nil
}

func (a *accessor) read(instance interface{}) (interface{}, error) {
	ptr, err := a.holder(instance, false)
	if err != nil || ptr == nil {
		return nil, err
	}
	return a.field.Value(ptr), nil
}

func (a *accessor) set(instance interface{}, value interface{}) error {
	ptr, err := a.holder(instance, true)
	if err != nil {
		return err
	}
	adapted, err := xtype.Adapt(value, a.field.Type)
	if err != nil {
		return err
	}
	setField(a.field, ptr, adapted)
	return nil
}

// setField writes value of exactly the field type
func setField(field *xunsafe.Field, structPtr unsafe.Pointer, value reflect.Value) {
	switch field.Kind() {
	case reflect.String, reflect.Int, reflect.Float64, reflect.Float32, reflect.Bool, reflect.Ptr, reflect.Slice, reflect.Map:
		field.SetValue(structPtr, value.Interface())
		return
	}
	reflect.ValueOf(field.Addr(structPtr)).Elem().Set(value)
}
