// Package converter defines built-in converters and the default conversion bus.
//
// Numbers are converted with range checks, strings are parsed into numbers, booleans,
// enums, UUIDs, character sets, currencies, locales, times, durations and locations,
// slices, arrays and maps are converted element wise.
//
//	bus := converter.NewBus()
//	v, err := bus.Convert("127", reflect.TypeOf(""), reflect.TypeOf(int8(0)))
package converter
