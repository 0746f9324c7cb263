package localstore

import (
	"errors"
	"fmt"
)

// Kind classifies the failures reported by this package.
type Kind int

const (
	// KindKeyType means the key is not a string.
	KindKeyType Kind = iota + 1
	// KindKeyEmpty means the key is the empty string.
	KindKeyEmpty
	// KindDecode means the stored text couldn't be decoded.
	KindDecode
	// KindEncode means the value couldn't be encoded.
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindKeyType:
		return "key type"
	case KindKeyEmpty:
		return "key empty"
	case KindDecode:
		return "entry decode"
	case KindEncode:
		return "entry encode"
	}
	return "unknown"
}

// Error is the error type for invalid keys and for entries that can't be
// encoded or decoded.
// Only the fields that apply to the Kind are set.
type Error struct {
	Kind Kind
	// Key is the offending key (KindKeyType, KindKeyEmpty).
	Key any
	// Raw is the stored text that failed to decode (KindDecode).
	Raw string
	// Value is the value that failed to encode (KindEncode).
	Value any
	// Err is the underlying codec error, if any.
	Err error
}

var (
	// ErrKeyType matches every error of kind KindKeyType with errors.Is.
	ErrKeyType = &Error{Kind: KindKeyType}
	// ErrKeyEmpty matches every error of kind KindKeyEmpty with errors.Is.
	ErrKeyEmpty = &Error{Kind: KindKeyEmpty}
	// ErrDecode matches every error of kind KindDecode with errors.Is.
	ErrDecode = &Error{Kind: KindDecode}
	// ErrEncode matches every error of kind KindEncode with errors.Is.
	ErrEncode = &Error{Kind: KindEncode}

	// ErrNoOutput is the cause of a KindEncode error when the codec
	// succeeded but produced nothing that could be stored.
	ErrNoOutput = errors.New("codec produced no output")

	// ErrNestedUndefined is the cause of a KindEncode error when Undefined
	// is part of a value instead of being the value.
	ErrNestedUndefined = errors.New("undefined can't be nested in a value")

	// ErrUnboundedNumber is the cause of a KindEncode error for math/big numbers,
	// which can't be decoded back without losing precision.
	ErrUnboundedNumber = errors.New("unbounded-precision numbers can't be encoded")

	// ErrInvalidTarget is returned by GetInto when v isn't a non-nil pointer.
	ErrInvalidTarget = errors.New("localstore: target must be a non-nil pointer")
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindKeyType:
		return fmt.Sprintf("localstore: key must be a string, got %T", e.Key)
	case KindKeyEmpty:
		return "localstore: key must not be an empty string"
	case KindDecode:
		if e.Err == nil {
			return fmt.Sprintf("localstore: cannot decode entry %q", e.Raw)
		}
		return fmt.Sprintf("localstore: cannot decode entry %q: %v", e.Raw, e.Err)
	case KindEncode:
		if e.Err == nil {
			return fmt.Sprintf("localstore: cannot encode value of type %T", e.Value)
		}
		return fmt.Sprintf("localstore: cannot encode value of type %T: %v", e.Value, e.Err)
	}
	return "localstore: unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind,
// which makes the Err* sentinels usable with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain,
// or 0 if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
