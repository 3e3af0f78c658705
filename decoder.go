package tokenstream

import (
	"fmt"
	"iter"
	"reflect"
	"sync"

	"golang.org/x/exp/constraints"
)

// A setter sets the reflect.Value to a value extracted from the given Source
type setter func(Source, reflect.Value) error

// A set of types that are currently in construction
type typeSet map[reflect.Type]struct{}

// Decoder can be used to customize unmarshalling. This type is typesafe.
type Decoder struct {
	// the struct tag that is used
	structTag string

	// Cache for setters, indexed by reflect.Type
	setterCache sync.Map
}

func NewDecoder() *Decoder {
	return &Decoder{
		structTag: "json",
	}
}

func (d *Decoder) WithTag(structTag string) *Decoder {
	if d.structTag == structTag {
		return d
	}

	return &Decoder{
		structTag: structTag,
	}
}

// Unmarshal decodes one value from the source into the target, which must be
// a non nil pointer. It does not check for leftover input; use
// [Decoder.UnmarshalTokens] to decode a token sequence to the end.
func (d *Decoder) Unmarshal(source Source, target any) error {
	targetValue := reflect.ValueOf(target).Elem()

	// build the setter for the targets type
	setter, err := d.setterOf(typeSet{}, targetValue.Type())
	if err != nil {
		return err
	}

	return setter(source, targetValue)
}

// UnmarshalTokens decodes the token sequence into the target. The sequence
// must be consumed in full: leftover tokens discard the decoded value and
// fail with ErrTrailingInput.
func (d *Decoder) UnmarshalTokens(tokens []Token, target any) error {
	cursor := NewCursor(tokens)

	if err := d.Unmarshal(cursor, target); err != nil {
		return err
	}

	if rest := cursor.Rest(); rest > 0 {
		return fmt.Errorf("%d tokens not consumed: %w", rest, ErrTrailingInput)
	}

	return nil
}

func (d *Decoder) setterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	if cached, ok := d.setterCache.Load(ty); ok {
		return cached.(setter), nil
	}

	if _, ok := inConstruction[ty]; ok {
		// detected a cycle. return a setter that does a cache lookup when executed.
		// we assume that the actual setter will be in the cache once this setter is executed.
		lazySetter := func(source Source, target reflect.Value) error {
			cached, _ := d.setterCache.Load(ty)
			return cached.(setter)(source, target)
		}

		return lazySetter, nil
	}

	inConstruction[ty] = struct{}{}

	setter, err := d.makeSetterOf(inConstruction, ty)
	if err != nil {
		return nil, err
	}

	d.setterCache.Store(ty, setter)

	return setter, nil
}

func (d *Decoder) makeSetterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	switch ty.Kind() {
	case reflect.Int32:
		return makeSetScalar(Source.Int32), nil

	case reflect.Int64:
		return makeSetScalar(Source.Int64), nil

	case reflect.Interface:
		// an empty interface target takes whatever kind the data carries
		if ty.NumMethod() == 0 {
			return setAny, nil
		}

		return nil, NotSupportedError{Type: ty}

	case reflect.Pointer:
		return d.makeSetPointer(inConstruction, ty)

	case reflect.Struct:
		return d.makeSetStruct(inConstruction, ty)

	case reflect.Slice:
		return d.makeSetSlice(inConstruction, ty)

	case reflect.Array:
		return d.makeSetArray(inConstruction, ty)

	default:
		// bool, string, float, maps and unsized ints have no representation
		// in the token vocabulary. Fail fast instead of guessing.
		return nil, NotSupportedError{Type: ty}
	}
}

func (d *Decoder) makeSetStruct(inConstruction typeSet, ty reflect.Type) (setter, error) {
	var setters []setter

	structTag := d.structTag
	if structTag == "" {
		structTag = "json"
	}

	fields := fieldsInOrder(ty, structTag)

	for _, field := range fields {
		de, err := d.setterOf(inConstruction, field.Type)
		if err != nil {
			return nil, fmt.Errorf("setter for field %q: %w", field.Name, err)
		}

		setters = append(setters, de)
	}

	setter := func(source Source, target reflect.Value) error {
		elements, err := source.Iter()
		if err != nil {
			return fmt.Errorf("as iter: %w", err)
		}

		next, stop := iter.Pull(elements)
		defer stop()

		for idx, field := range fields {
			elementSource, ok := next()
			if !ok {
				// a struct never gets default filled fields
				return fmt.Errorf("field %q of %q: %w", field.Name, ty, ErrEndOfInput)
			}

			fieldValue := target.FieldByIndex(field.Index)
			if err := setters[idx](elementSource, fieldValue); err != nil {
				return fmt.Errorf("set field %q on %q: %w", field.Name, ty, err)
			}
		}

		return nil
	}

	return setter, nil
}

func (d *Decoder) makeSetSlice(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := d.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	// a empty element
	placeholderValue := reflect.New(ty.Elem()).Elem()

	setter := func(source Source, target reflect.Value) error {
		elements, err := source.Iter()
		if err != nil {
			return fmt.Errorf("as iter: %w", err)
		}

		for elementSource := range elements {
			// add an empty element to grow the list
			target.Set(reflect.Append(target, placeholderValue))

			idx := target.Len() - 1
			elementValue := target.Index(idx)
			if err := elementSetter(elementSource, elementValue); err != nil {
				return fmt.Errorf("set element idx=%d: %w", idx, err)
			}
		}

		return nil
	}

	return setter, nil
}

func (d *Decoder) makeSetArray(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := d.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	// number of elements in the array
	elementCount := ty.Len()

	setter := func(source Source, target reflect.Value) error {
		elements, err := source.Iter()
		if err != nil {
			return fmt.Errorf("as iter: %w", err)
		}

		next, stop := iter.Pull(elements)
		defer stop()

		for idx := 0; idx < elementCount; idx++ {
			elementSource, ok := next()
			if !ok {
				return fmt.Errorf("element idx=%d of %q: %w", idx, ty, ErrEndOfInput)
			}

			elementValue := target.Index(idx)
			if err := elementSetter(elementSource, elementValue); err != nil {
				return fmt.Errorf("set element idx=%d: %w", idx, err)
			}
		}

		return nil
	}

	return setter, nil
}

func (d *Decoder) makeSetPointer(inConstruction typeSet, ty reflect.Type) (setter, error) {
	pointeeType := ty.Elem()

	pointeeSetter, err := d.setterOf(inConstruction, pointeeType)
	if err != nil {
		return nil, err
	}

	setter := func(source Source, target reflect.Value) error {
		// newValue is now a pointer to an instance of the pointeeType
		newValue := reflect.New(pointeeType)
		if err := pointeeSetter(source, newValue.Elem()); err != nil {
			return err
		}

		// set pointer to the new value
		target.Set(newValue)

		return nil
	}

	return setter, err
}

func makeSetScalar[T constraints.Signed](take func(Source) (T, error)) setter {
	return func(source Source, target reflect.Value) error {
		value, err := take(source)
		if err != nil {
			return fmt.Errorf("take %T value: %w", value, err)
		}

		target.SetInt(int64(value))
		return nil
	}
}

// setAny routes by the kind of the data instead of the target type. This is
// the only place kind inference happens; every other request states its
// expected kind and fails on a mismatch rather than coercing.
func setAny(source Source, target reflect.Value) error {
	kind, err := source.PeekKind()
	if err != nil {
		return fmt.Errorf("peek kind: %w", err)
	}

	switch kind {
	case KindInt32:
		value, err := source.Int32()
		if err != nil {
			return fmt.Errorf("take int32 value: %w", err)
		}

		target.Set(reflect.ValueOf(value))
		return nil

	case KindInt64:
		value, err := source.Int64()
		if err != nil {
			return fmt.Errorf("take int64 value: %w", err)
		}

		target.Set(reflect.ValueOf(value))
		return nil

	default:
		return fmt.Errorf("unexpected kind %s", kind)
	}
}
