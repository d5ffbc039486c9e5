// Package mapping turns content into sound and animation parameters.
//
// The package is the single mapping engine shared by the HTTP API, the
// experience builder and the CLI. Every function is pure: results depend only
// on the arguments and the built-in scale table, so calls are safe from any
// number of goroutines and repeated calls return identical values.
//
//	Classify   content -> color | number | text | unknown
//	MapText    text    -> note sequence on a scale
//	MapColor   hex     -> frequency, waveform, volume, HSL, complement
//	MapNumber  number  -> frequency, pattern, oscillators, polygon visual
//	MapAuto    content -> Classify + the matching mapper
package mapping
