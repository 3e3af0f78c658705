package tokenstream

import "iter"

// Source is the capability interface the [Decoder] requires of a decoding
// backend. A Source hands out one scalar at a time; the decoder, driven by
// the target type, decides which extraction to request and composes the
// scalars into aggregate values purely through consumption order. The
// backend never learns the target's concrete type, only which extraction is
// being asked for.
//
// The package ships one implementation, the [Cursor] over an in-memory
// token sequence. Custom implementations can stream values from anywhere;
// there is no requirement for a Source to be idempotent.
type Source interface {
	// PeekKind returns the kind of the next scalar without consuming it.
	// Returns ErrEndOfInput if nothing is left. This is the only capability
	// the decoder uses to infer a kind from the data instead of the target
	// type, e.g. when decoding into an empty interface.
	PeekKind() (Kind, error)

	// Int32 consumes the next scalar and returns it as an int32.
	// Returns a MismatchError, consuming nothing, if the next scalar is of
	// a different kind, or ErrEndOfInput if nothing is left.
	Int32() (int32, error)

	// Int64 consumes the next scalar and returns it as an int64.
	// Returns a MismatchError, consuming nothing, if the next scalar is of
	// a different kind, or ErrEndOfInput if nothing is left.
	Int64() (int64, error)

	// Iter interprets the remaining input as a sequence and yields one
	// Source per element until it is exhausted. Decoding a yielded element
	// consumes that element's scalars from the shared input.
	Iter() (iter.Seq[Source], error)
}
