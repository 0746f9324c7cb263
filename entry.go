package localstore

import (
	"math/big"
	"reflect"

	"github.com/localstore/localstore/encoding"
)

// UndefinedToken is the text stored for the Undefined value.
const UndefinedToken = "undefined"

type undefined struct{}

func (undefined) String() string {
	return UndefinedToken
}

// MarshalJSON fails, because Undefined can only be stored as a whole value.
func (undefined) MarshalJSON() ([]byte, error) {
	return nil, ErrNestedUndefined
}

// Undefined is the "explicitly no value" value.
// Storing it writes UndefinedToken instead of a serialization,
// and reading that token back returns Undefined with found == true.
// It's different from nil (which most codecs store as null)
// and from a missing entry (found == false).
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined value.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// EntryCodec converts values to the text that's written to a Backend and back.
// It's stateless and safe for concurrent use.
type EntryCodec struct {
	codec encoding.Codec
}

// NewEntryCodec creates an EntryCodec for the given structural codec.
// A nil codec means encoding.JSON.
func NewEntryCodec(codec encoding.Codec) EntryCodec {
	if codec == nil {
		codec = encoding.JSON
	}
	return EntryCodec{codec: codec}
}

// Encode returns the text to store for v.
// Undefined is encoded as UndefinedToken without consulting the codec.
// Codec errors and empty codec output lead to a KindEncode error.
func (c EntryCodec) Encode(v any) (string, error) {
	if IsUndefined(v) {
		return UndefinedToken, nil
	}

	if err := checkEncodable(reflect.ValueOf(v), make(map[visit]bool)); err != nil {
		return "", &Error{Kind: KindEncode, Value: v, Err: err}
	}

	data, err := c.codec.Marshal(v)
	if err != nil {
		return "", &Error{Kind: KindEncode, Value: v, Err: err}
	}
	if len(data) == 0 {
		return "", &Error{Kind: KindEncode, Value: v, Err: ErrNoOutput}
	}
	return string(data), nil
}

// Decode returns the value for the text a Backend returned.
// found is the backend's "entry exists" result: when it's false,
// Decode returns (nil, false, nil) without looking at raw.
// UndefinedToken decodes to Undefined.
// Anything the codec can't decode leads to a KindDecode error.
func (c EntryCodec) Decode(raw string, found bool) (v any, ok bool, err error) {
	if !found {
		return nil, false, nil
	}
	if raw == UndefinedToken {
		return Undefined, true, nil
	}

	if err := c.codec.Unmarshal([]byte(raw), &v); err != nil {
		return nil, true, &Error{Kind: KindDecode, Raw: raw, Err: err}
	}
	return v, true, nil
}

// DecodeInto decodes raw into the value v points to.
// UndefinedToken sets the pointed-to value to its zero value.
// v must be a non-nil pointer.
func (c EntryCodec) DecodeInto(raw string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}

	if raw == UndefinedToken {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
		return nil
	}

	if err := c.codec.Unmarshal([]byte(raw), v); err != nil {
		return &Error{Kind: KindDecode, Raw: raw, Err: err}
	}
	return nil
}

var (
	undefinedType = reflect.TypeOf(undefined{})
	bigTypes      = map[reflect.Type]bool{
		reflect.TypeOf(big.Int{}):   true,
		reflect.TypeOf(big.Float{}): true,
		reflect.TypeOf(big.Rat{}):   true,
	}
)

type visit struct {
	ptr uintptr
	typ reflect.Type
}

// checkEncodable walks v and rejects values that codecs would store without
// an error but that can't be read back: nested Undefined values and math/big numbers.
// Unexported struct fields are skipped, codecs don't see them either.
func checkEncodable(v reflect.Value, seen map[visit]bool) error {
	if !v.IsValid() {
		return nil
	}
	t := v.Type()
	if t == undefinedType {
		return ErrNestedUndefined
	}
	if bigTypes[t] {
		return ErrUnboundedNumber
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil
		}
		key := visit{ptr: v.Pointer(), typ: t}
		if seen[key] {
			return nil
		}
		seen[key] = true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return checkEncodable(v.Elem(), seen)
	case reflect.Slice, reflect.Array:
		if isScalar(t.Elem().Kind()) {
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := checkEncodable(v.Index(i), seen); err != nil {
				return err
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if err := checkEncodable(iter.Key(), seen); err != nil {
				return err
			}
			if err := checkEncodable(iter.Value(), seen); err != nil {
				return err
			}
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f := t.Field(i); !f.IsExported() && !f.Anonymous {
				continue
			}
			if err := checkEncodable(v.Field(i), seen); err != nil {
				return err
			}
		}
	}
	return nil
}

func isScalar(k reflect.Kind) bool {
	return k >= reflect.Bool && k <= reflect.Complex128 || k == reflect.String
}
