package converter

import (
	"reflect"
	"strings"
	"time"

	"github.com/viant/convbus"
	ftime "github.com/viant/tagly/format/time"
)

// DefaultDateLayout is the layout tried first when parsing time without configured layouts
const DefaultDateLayout = "2006-01-02 15:04:05.000"

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	locationType = reflect.TypeOf((*time.Location)(nil))
)

var defaultTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DefaultDateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// StringToTime parses time with an ordered list of layouts
type StringToTime struct {
	Layouts []string
}

// NewStringToTime creates a time parser, a non empty ISO date format (i.e. yyyy-MM-dd) takes precedence over default layouts
func NewStringToTime(dateFormat string) *StringToTime {
	ret := &StringToTime{}
	if dateFormat != "" {
		ret.Layouts = append(ret.Layouts, ftime.DateFormatToTimeLayout(dateFormat))
	}
	ret.Layouts = append(ret.Layouts, defaultTimeLayouts...)
	return ret
}

// Convert parses time
func (c *StringToTime) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	text, err := trimmed(value, source, target)
	if err != nil {
		return nil, err
	}
	layouts := c.Layouts
	if len(layouts) == 0 {
		layouts = defaultTimeLayouts
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	return nil, convbus.NewConversionFailed(value, source, target, "unsupported time layout")
}

// TimeToString formats time with RFC3339 nano layout
type TimeToString struct{}

// Convert formats time
func (c TimeToString) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	ts, ok := value.(time.Time)
	if !ok {
		return nil, convbus.NewConversionFailed(value, source, target, "value is not time.Time")
	}
	return ts.Format(time.RFC3339Nano), nil
}

// StringToDuration parses durations
type StringToDuration struct{}

// Convert parses a duration
func (c StringToDuration) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	text, err := trimmed(value, source, target)
	if err != nil {
		return nil, err
	}
	ret, err := time.ParseDuration(text)
	if err != nil {
		return nil, convbus.WrapConversionFailed(value, source, target, err)
	}
	return ret, nil
}

// StringToLocation loads time zone locations
type StringToLocation struct{}

// Convert loads a location
func (c StringToLocation) Convert(value interface{}, source, target reflect.Type) (interface{}, error) {
	text, err := trimmed(value, source, target)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(text, "utc") {
		return time.UTC, nil
	}
	ret, err := time.LoadLocation(text)
	if err != nil {
		return nil, convbus.WrapConversionFailed(value, source, target, err)
	}
	return ret, nil
}
