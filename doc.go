// Package tokenstream decodes Go values from a flat, ordered sequence of
// kind tagged scalar tokens. It pairs a generic reflect based [Decoder] with
// a position tracked [Cursor] backend: the target type drives which
// extraction the decoder requests, and the cursor hands out the next scalar
// of the requested kind or exposes the remaining input as a sequence of
// elements via [Source.Iter].
//
// Structs and arrays are decoded positionally. Their fields consume a
// contiguous run of the input in declaration order; there are no field names
// and no length markers in the token sequence. A slice consumes every
// remaining element. [Unmarshal] fails with [ErrTrailingInput] unless the
// whole input was consumed.
package tokenstream
