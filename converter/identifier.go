package converter

import (
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/convbus"
	"github.com/viant/convbus/xtype"
	"golang.org/x/text/currency"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/language"
)

var (
	uuidType     = xtype.TypeFor[uuid.UUID]()
	charsetType  = xtype.TypeFor[encoding.Encoding]()
	currencyType = xtype.TypeFor[currency.Unit]()
	localeType   = xtype.TypeFor[language.Tag]()
)

func trimmed(value interface{}, source, target reflect.Type) (string, error) {
	text := strings.TrimSpace(reflect.ValueOf(value).String())
	if text == "" {
		return "", convbus.NewConversionFailed(value, source, target, "empty input")
	}
	return text, nil
}

// StringToUUID parses UUIDs
type StringToUUID struct{}

// Convert parses a UUID
func (c StringToUUID) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	text, err := trimmed(value, source, target)
	if err != nil {
		return nil, err
	}
	ret, err := uuid.Parse(text)
	if err != nil {
		return nil, convbus.WrapConversionFailed(value, source, target, err)
	}
	return ret, nil
}

// StringToCharset looks up IANA registered character sets
type StringToCharset struct{}

// Convert looks up a character set encoding
func (c StringToCharset) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	text, err := trimmed(value, source, target)
	if err != nil {
		return nil, err
	}
	ret, err := ianaindex.IANA.Encoding(text)
	if err != nil {
		return nil, convbus.WrapConversionFailed(value, source, target, err)
	}
	if ret == nil {
		return nil, convbus.NewConversionFailed(value, source, target, "charset is not supported")
	}
	return ret, nil
}

// CharsetToString returns IANA character set names
type CharsetToString struct{}

// Convert returns a character set name
func (c CharsetToString) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	enc, ok := value.(encoding.Encoding)
	if !ok {
		return nil, convbus.NewConversionFailed(value, source, target, "value is not a charset encoding")
	}
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return nil, convbus.WrapConversionFailed(value, source, target, err)
	}
	return name, nil
}

// StringToCurrency parses ISO 4217 currency codes
type StringToCurrency struct{}

// Convert parses a currency code
func (c StringToCurrency) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	text, err := trimmed(value, source, target)
	if err != nil {
		return nil, err
	}
	ret, err := currency.ParseISO(text)
	if err != nil {
		return nil, convbus.WrapConversionFailed(value, source, target, err)
	}
	return ret, nil
}

// StringToLocale parses BCP 47 language tags
type StringToLocale struct{}

// Convert parses a language tag
func (c StringToLocale) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	text, err := trimmed(value, source, target)
	if err != nil {
		return nil, err
	}
	ret, err := language.Parse(text)
	if err != nil {
		return nil, convbus.WrapConversionFailed(value, source, target, err)
	}
	return ret, nil
}
