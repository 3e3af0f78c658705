package tokenstream

import "iter"

// Cursor is a position tracked read pointer over a token sequence. It
// borrows the input slice and never copies or mutates it; the position only
// ever advances, by exactly one token per successful read.
//
// All consumption during one decode goes through a single Cursor instance,
// shared by pointer through the whole recursion. That gives one global
// consumption order no matter how deeply nested the target type is.
type Cursor struct {
	input []Token
	idx   int
}

var _ Source = &Cursor{}

func NewCursor(input []Token) *Cursor {
	return &Cursor{input: input}
}

// Peek returns the token at the current position without consuming it.
func (c *Cursor) Peek() (Token, error) {
	if c.idx >= len(c.input) {
		return Token{}, ErrEndOfInput
	}

	return c.input[c.idx], nil
}

// Next returns the token at the current position and advances the cursor.
func (c *Cursor) Next() (Token, error) {
	token, err := c.Peek()
	if err != nil {
		return Token{}, err
	}

	c.idx++
	return token, nil
}

// Int32 consumes the next token if it carries KindInt32. On a kind mismatch
// the cursor does not advance, so a retry at the same position with the
// right kind succeeds.
func (c *Cursor) Int32() (int32, error) {
	token, err := c.Peek()
	if err != nil {
		return 0, err
	}

	if token.kind != KindInt32 {
		return 0, MismatchError{Expected: KindInt32, Found: token.kind}
	}

	c.idx++
	return int32(token.num), nil
}

// Int64 consumes the next token if it carries KindInt64. On a kind mismatch
// the cursor does not advance.
func (c *Cursor) Int64() (int64, error) {
	token, err := c.Peek()
	if err != nil {
		return 0, err
	}

	if token.kind != KindInt64 {
		return 0, MismatchError{Expected: KindInt64, Found: token.kind}
	}

	c.idx++
	return token.num, nil
}

// PeekKind returns the kind of the next token without consuming it.
func (c *Cursor) PeekKind() (Kind, error) {
	token, err := c.Peek()
	if err != nil {
		return 0, err
	}

	return token.kind, nil
}

// Iter exposes the remaining tokens as a sequence of elements. The cursor
// yields itself once per element until the input is exhausted; decoding the
// yielded element advances the shared position by that element's flattened
// token count. Iteration stops early if an element did not advance the
// cursor, otherwise a zero width element type would never exhaust the input.
func (c *Cursor) Iter() (iter.Seq[Source], error) {
	it := func(yield func(Source) bool) {
		for c.idx < len(c.input) {
			before := c.idx
			if !yield(c) {
				return
			}

			if c.idx == before {
				return
			}
		}
	}

	return it, nil
}

// Rest returns the number of unconsumed tokens.
func (c *Cursor) Rest() int {
	return len(c.input) - c.idx
}
