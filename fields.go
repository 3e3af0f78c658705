package tokenstream

import (
	"reflect"
	"strings"
)

type field struct {
	Name  string
	Type  reflect.Type
	Index []int
}

// fieldsInOrder returns the decodable fields of a struct in declaration
// order. Unexported fields and fields tagged with "-" are skipped. Field
// names never drive any lookup, decoding is purely positional; the name is
// kept for error messages only, so a tag alias shows up there too.
//
// An embedded struct is an ordinary positional field: recursing into it
// consumes its fields as one contiguous run, which is the same as flattening
// it in place.
func fieldsInOrder(ty reflect.Type, structTag string) []field {
	if ty.Kind() != reflect.Struct {
		panic("not a struct")
	}

	var fields []field

	for idx := range ty.NumField() {
		fi := ty.Field(idx)
		if !fi.IsExported() {
			// an embedded struct whose type name is unexported still
			// contributes its promoted exported fields. reflect can set
			// those through the embedded value, so the field stays
			// decodable; any other unexported field is skipped
			if !fi.Anonymous || fi.Type.Kind() != reflect.Struct {
				continue
			}
		}

		name := nameOf(fi, structTag)
		if name == "" {
			// this one is skipped
			continue
		}

		fields = append(fields, field{
			Name:  name,
			Type:  fi.Type,
			Index: fi.Index,
		})
	}

	return fields
}

func nameOf(fi reflect.StructField, structTag string) string {
	tag := fi.Tag.Get(structTag)

	if tag == "" {
		// tag is empty, take the original name
		return fi.Name
	}

	if tag == "-" {
		// return empty name to indicate: skip this field
		return ""
	}

	idx := strings.IndexByte(tag, ',')
	switch {
	case idx == -1:
		// no comma, take the full tag as alias
		return tag

	case idx > 0:
		// non empty alias, take up to comma
		return tag[:idx]

	default:
		// no alias before the comma, keep field name
		return fi.Name
	}
}
