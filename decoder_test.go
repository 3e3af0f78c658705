package tokenstream

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"
)

type point struct {
	X int32
	Y int32
}

type point64 struct {
	X int64
	Y int64
}

func TestUnmarshalStruct(t *testing.T) {
	tokens := []Token{Int32(1), Int32(2)}

	parsed, err := UnmarshalNew[point](tokens)
	require.Equal(t, err, nil)
	require.Equal(t, parsed, point{X: 1, Y: 2})
}

func TestUnmarshalKindStrictness(t *testing.T) {
	// 32 bit tokens never widen into 64 bit fields
	tokens := []Token{Int32(1), Int32(2)}

	_, err := UnmarshalNew[point64](tokens)

	var mismatch MismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, mismatch, MismatchError{Expected: KindInt64, Found: KindInt32})
}

func TestUnmarshalCompound(t *testing.T) {
	type compound struct {
		Points     [2]point
		MorePoints []point64
	}

	tokens := []Token{
		Int32(1), Int32(2),
		Int32(3), Int32(4),
		Int64(5), Int64(6),
	}

	parsed, err := UnmarshalNew[compound](tokens)
	require.Equal(t, err, nil)
	require.Equal(t, parsed, compound{
		Points:     [2]point{{X: 1, Y: 2}, {X: 3, Y: 4}},
		MorePoints: []point64{{X: 5, Y: 6}},
	})
}

func TestUnmarshalTrailingInput(t *testing.T) {
	// the prefix matches the target perfectly, the leftover token still fails
	tokens := []Token{Int32(1), Int32(2), Int32(3)}

	_, err := UnmarshalNew[point](tokens)
	require.ErrorIs(t, err, ErrTrailingInput)
}

func TestUnmarshalEmptyInput(t *testing.T) {
	_, err := UnmarshalNew[point](nil)
	require.ErrorIs(t, err, ErrEndOfInput)

	_, err = UnmarshalNew[int32](nil)
	require.ErrorIs(t, err, ErrEndOfInput)

	_, err = UnmarshalNew[[2]int64](nil)
	require.ErrorIs(t, err, ErrEndOfInput)
}

func TestUnmarshalShortInput(t *testing.T) {
	// a struct never gets default filled fields
	tokens := []Token{Int32(1)}

	_, err := UnmarshalNew[point](tokens)
	require.ErrorIs(t, err, ErrEndOfInput)
}

func TestUnmarshalSlice(t *testing.T) {
	tokens := []Token{Int32(1), Int32(2), Int32(3)}

	parsed, err := UnmarshalNew[[]int32](tokens)
	require.Equal(t, err, nil)
	require.Equal(t, parsed, []int32{1, 2, 3})

	// a slice over empty input is empty, not an error
	empty, err := UnmarshalNew[[]int32](nil)
	require.Equal(t, err, nil)
	require.Equal(t, len(empty), 0)
}

func TestUnmarshalSliceOfStructs(t *testing.T) {
	tokens := []Token{Int64(1), Int64(2), Int64(3), Int64(4)}

	parsed, err := UnmarshalNew[[]point64](tokens)
	require.Equal(t, err, nil)
	require.Equal(t, parsed, []point64{{X: 1, Y: 2}, {X: 3, Y: 4}})
}

func TestUnmarshalSliceStarvesLaterFields(t *testing.T) {
	// a slice consumes until exhaustion wherever it appears. in a non
	// trailing position it starves everything after it
	type shape struct {
		Values []int32
		Z      int64
	}

	tokens := []Token{Int32(1), Int32(2)}

	_, err := UnmarshalNew[shape](tokens)
	require.ErrorIs(t, err, ErrEndOfInput)
}

func TestUnmarshalAny(t *testing.T) {
	parsed, err := UnmarshalNew[any]([]Token{Int64(9)})
	require.Equal(t, err, nil)
	require.Equal(t, parsed, any(int64(9)))

	type pair struct {
		A any
		B any
	}

	mixed, err := UnmarshalNew[pair]([]Token{Int32(1), Int64(2)})
	require.Equal(t, err, nil)
	require.Equal(t, mixed, pair{A: int32(1), B: int64(2)})
}

func TestUnmarshalPointerField(t *testing.T) {
	type shape struct {
		P *point
		Z int64
	}

	tokens := []Token{Int32(1), Int32(2), Int64(3)}

	parsed, err := UnmarshalNew[shape](tokens)
	require.Equal(t, err, nil)
	require.Equal(t, parsed, shape{P: &point{X: 1, Y: 2}, Z: 3})
}

func TestUnmarshalEmbeddedStruct(t *testing.T) {
	type shape struct {
		point
		Z int64
	}

	tokens := []Token{Int32(1), Int32(2), Int64(3)}

	parsed, err := UnmarshalNew[shape](tokens)
	require.Equal(t, err, nil)
	require.Equal(t, parsed, shape{point: point{X: 1, Y: 2}, Z: 3})
}

func TestUnmarshalEmbeddedUnexportedType(t *testing.T) {
	// the embedded type's name is unexported. its promoted exported
	// fields still consume their run of the input, so everything after
	// them stays aligned
	type inner struct {
		A int32
		b int32
		B int64
	}

	type outer struct {
		inner
		C int64
	}

	tokens := []Token{Int32(1), Int64(2), Int64(3)}

	parsed, err := UnmarshalNew[outer](tokens)
	require.Equal(t, err, nil)
	require.Equal(t, parsed, outer{inner: inner{A: 1, B: 2}, C: 3})
}

func TestUnmarshalSkipsTaggedFields(t *testing.T) {
	//goland:noinspection ALL
	type shape struct {
		X    int32
		Skip string `json:"-"`
		Y    int32

		// not exported, must not be touched
		note string
	}

	tokens := []Token{Int32(1), Int32(2)}

	parsed, err := UnmarshalNew[shape](tokens)
	require.Equal(t, err, nil)
	require.Equal(t, parsed, shape{X: 1, Y: 2})
}

func TestUnmarshalWithTag(t *testing.T) {
	type shape struct {
		X    int32
		Skip string `token:"-"`
	}

	tokens := []Token{Int32(1)}

	parsed, err := UnmarshalNewWith[shape](NewDecoder().WithTag("token"), tokens)
	require.Equal(t, err, nil)
	require.Equal(t, parsed, shape{X: 1})
}

func TestUnmarshalNotSupported(t *testing.T) {
	var notSupported NotSupportedError

	_, err := UnmarshalNew[string]([]Token{Int32(1)})
	require.ErrorAs(t, err, &notSupported)

	_, err = UnmarshalNew[map[int32]int32]([]Token{Int32(1)})
	require.ErrorAs(t, err, &notSupported)

	_, err = UnmarshalNew[struct{ F float64 }]([]Token{Int32(1)})
	require.ErrorAs(t, err, &notSupported)

	// unsized ints have no kind in the vocabulary either
	_, err = UnmarshalNew[int]([]Token{Int32(1)})
	require.ErrorAs(t, err, &notSupported)
}

func TestUnmarshalZeroWidthElements(t *testing.T) {
	// an element type that consumes nothing can not exhaust the input.
	// iteration stops and the leftover input fails the trailing check
	_, err := UnmarshalNew[[]struct{}]([]Token{Int32(1)})
	require.ErrorIs(t, err, ErrTrailingInput)
}

func TestUnmarshalMismatchKeepsPosition(t *testing.T) {
	cursor := NewCursor([]Token{Int32(1), Int64(2)})

	var target point64
	err := NewDecoder().Unmarshal(cursor, &target)

	var mismatch MismatchError
	require.ErrorAs(t, err, &mismatch)

	// the mismatched token was not consumed
	require.Equal(t, cursor.Rest(), 2)
}

func TestDecoderReuse(t *testing.T) {
	// the setter cache survives across calls
	decoder := NewDecoder()

	for range 3 {
		parsed, err := UnmarshalNewWith[point](decoder, []Token{Int32(1), Int32(2)})
		require.Equal(t, err, nil)
		require.Equal(t, parsed, point{X: 1, Y: 2})
	}
}

// exhaustedSource reports end of input for everything. It stands in for a
// backend whose sequence protocol is unavailable.
type exhaustedSource struct{}

func (exhaustedSource) PeekKind() (Kind, error) { return 0, ErrEndOfInput }
func (exhaustedSource) Int32() (int32, error)   { return 0, ErrEndOfInput }
func (exhaustedSource) Int64() (int64, error)   { return 0, ErrEndOfInput }

func (exhaustedSource) Iter() (iter.Seq[Source], error) {
	return func(yield func(Source) bool) {}, nil
}

func TestUnmarshalCustomSource(t *testing.T) {
	var target point
	err := NewDecoder().Unmarshal(exhaustedSource{}, &target)
	require.ErrorIs(t, err, ErrEndOfInput)
}
