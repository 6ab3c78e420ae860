package converter

import (
	"math/big"
	"reflect"

	"github.com/viant/convbus"
	"github.com/viant/convbus/xtype"
)

var (
	stringType = reflect.TypeOf("")
	boolType   = reflect.TypeOf(true)
	intType    = reflect.TypeOf(0)
	bytesType  = reflect.TypeOf([]byte{})
)

// CanonicalTypes represents default types tried by Bus.ConvertToObject
var CanonicalTypes = []reflect.Type{
	boolType,
	intType,
	reflect.TypeOf(int64(0)),
	reflect.TypeOf(uint64(0)),
	reflect.TypeOf(float64(0)),
	reflect.TypeOf((*big.Int)(nil)),
	reflect.TypeOf((*big.Float)(nil)),
	stringType,
}

// NewBus creates a bus with built-in converters and default canonical types
func NewBus(opts ...convbus.Option) *convbus.Bus {
	options := append([]convbus.Option{convbus.WithCanonicalTypes(CanonicalTypes...)}, opts...)
	ret := convbus.New(options...)
	Register(ret)
	return ret
}

// Register registers built-in converters, later registrations take precedence over earlier ones
func Register(bus *convbus.Bus) {
	toString := xtype.Of(stringType)

	bus.RegisterFallback(NewValueToSlice(bus))
	bus.RegisterConditional(NewPointerToValue(bus))
	bus.RegisterConditional(NewSliceToSlice(bus))
	bus.RegisterConditional(NewMapToMap(bus))

	bus.RegisterFactory(xtype.String, xtype.Number, StringToNumber{})
	bus.RegisterFactory(xtype.Number, xtype.Number, NumberToNumber{})
	bus.Register(xtype.Number, toString, NumberToString{})
	bus.Register(xtype.String, xtype.Of(boolType), StringToBool{})
	bus.Register(xtype.Bool, toString, BoolToString{})
	bus.RegisterConditional(SameKind{})
	bus.Register(xtype.Of(bytesType), toString, BytesToString{})
	bus.Register(xtype.String, xtype.Of(bytesType), StringToBytes{})

	bus.RegisterFactory(xtype.String, xtype.Enum, StringToEnum{})
	bus.Register(xtype.Enum, toString, EnumToString{})
	bus.Register(xtype.Enum, xtype.Of(intType), EnumToInt{})

	bus.Register(xtype.String, xtype.Of(uuidType), StringToUUID{})
	bus.Register(xtype.Of(uuidType), toString, StringerToString{})
	bus.Register(xtype.String, xtype.Of(charsetType), StringToCharset{})
	bus.Register(xtype.Of(charsetType), toString, CharsetToString{})
	bus.Register(xtype.String, xtype.Of(currencyType), StringToCurrency{})
	bus.Register(xtype.Of(currencyType), toString, StringerToString{})
	bus.Register(xtype.String, xtype.Of(localeType), StringToLocale{})
	bus.Register(xtype.Of(localeType), toString, StringerToString{})

	bus.Register(xtype.String, xtype.Of(timeType), NewStringToTime(""))
	bus.Register(xtype.Of(timeType), toString, TimeToString{})
	bus.Register(xtype.String, xtype.Of(durationType), StringToDuration{})
	bus.Register(xtype.Of(durationType), toString, StringerToString{})
	bus.Register(xtype.String, xtype.Of(locationType), StringToLocation{})
	bus.Register(xtype.Of(locationType), toString, StringerToString{})
}
