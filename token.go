package tokenstream

import "fmt"

// Kind identifies the scalar kind carried by a [Token]. The vocabulary is
// closed: every kind a token can carry is listed here, and every consumption
// site matches on it exhaustively.
type Kind int

const (
	KindInt32 Kind = iota + 1
	KindInt64
)

func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one tagged scalar of an input sequence. Tokens are immutable,
// build one with [Int32] or [Int64].
type Token struct {
	kind Kind
	num  int64
}

// Int32 builds a Token carrying a 32 bit signed integer.
func Int32(value int32) Token {
	return Token{kind: KindInt32, num: int64(value)}
}

// Int64 builds a Token carrying a 64 bit signed integer.
func Int64(value int64) Token {
	return Token{kind: KindInt64, num: value}
}

// Kind returns the scalar kind of the token.
func (t Token) Kind() Kind {
	return t.kind
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%d)", t.kind, t.num)
}
