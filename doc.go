// Package convbus provides a runtime type conversion bus.
//
// A Bus holds an ordered list of conditional converters. Conversion of a value
// between two types resolves the first entry matching the type pair, the most
// recently registered entry first, and memoizes the resolution per pair.
// When no entry matches but the target type accepts the source type as is, the
// value is returned unchanged. Registration invalidates all memoized resolutions.
//
// Built-in converters live in the converter package and the struct mapper
// built on top of the bus lives in the objectmapper package.
package convbus
