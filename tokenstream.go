package tokenstream

// The default Decoder instance.
var dec Decoder

// Unmarshal decodes the token sequence into the value pointed to by target.
// The whole input must be consumed by the target's shape; leftover tokens
// fail with ErrTrailingInput.
func Unmarshal(tokens []Token, target any) error {
	return dec.UnmarshalTokens(tokens, target)
}

func UnmarshalNew[T any](tokens []Token) (T, error) {
	return UnmarshalNewWith[T](&dec, tokens)
}

func UnmarshalNewWith[T any](dec *Decoder, tokens []Token) (T, error) {
	var target T
	err := dec.UnmarshalTokens(tokens, &target)
	return target, err
}
