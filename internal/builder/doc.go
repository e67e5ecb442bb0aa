// Package builder turns command inputs into request bodies and query
// parameters.
//
// A body or parameter set can come from one of three places: inline JSON,
// a JSON file, or the individual fields of a command. Inline JSON and a
// file are mutually exclusive; either one, when given, replaces the
// structured fields entirely.
//
// Start and end values are encoded with TimeObject, which decides between
// an all-day date and a date-time from the shape of the string alone.
package builder
