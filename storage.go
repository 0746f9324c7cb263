// Package localstore is a typed layer over a raw key-value Backend.
//
// Values are encoded to text before they're written and decoded when they're
// read. Every operation works on a single key and runs synchronously.
// A missing entry and an entry that holds Undefined are different results:
//
//	_, found, _ := s.Get("never-set", localstore.GetOptions{})  // found == false
//	_ = s.Set("k", localstore.Undefined)
//	v, found, _ := s.Get("k", localstore.GetOptions{})          // v == localstore.Undefined, found == true
package localstore

import (
	"fmt"
	"io"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/localstore/localstore/encoding"
)

// GetOptions are the options for Storage.Get and Storage.GetInto.
type GetOptions struct {
	// Destroy deletes the entry after it was read,
	// whether decoding succeeds or not.
	Destroy bool
	// DestroyOnError deletes the entry only if it can't be decoded.
	DestroyOnError bool
}

// ParseGetOptions builds GetOptions from loosely typed input,
// like a config file section or a decoded JSON object.
// Recognized keys are "destroy" and "destroyOnError"
// ("destroyonerror" and "destroy-on-error" are accepted as well,
// viper lowercases all keys).
// A flag is only set when its value is exactly the boolean true,
// so 1, "true" or "yes" leave it false.
func ParseGetOptions(m map[string]any) GetOptions {
	var o GetOptions
	for k, v := range m {
		b, ok := v.(bool)
		if !ok || !b {
			continue
		}
		switch k {
		case "destroy":
			o.Destroy = true
		case "destroyOnError", "destroyonerror", "destroy-on-error":
			o.DestroyOnError = true
		}
	}
	return o
}

// Storage reads and writes typed values to a Backend.
type Storage struct {
	backend Backend
	codec   EntryCodec
	logger  logrus.FieldLogger
}

// Options are the options for Storage.
type Options struct {
	// Encoding format.
	// Optional (encoding.JSON by default).
	Codec encoding.Codec
	// Logger for debug output, like entries deleted by GetOptions.
	// Optional (no output by default).
	Logger logrus.FieldLogger
}

// DefaultOptions is an Options object with default values.
// Codec: encoding.JSON, Logger: discarding logger
var DefaultOptions = Options{
	Codec: encoding.JSON,
	// Logger is set in New, because each discarding logger is its own instance.
}

// New creates a new Storage on top of the given backend.
//
// You should call the Close() method on the storage when you're done working with it.
func New(backend Backend, options Options) *Storage {
	// Set default values
	if options.Codec == nil {
		options.Codec = DefaultOptions.Codec
	}
	if options.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		options.Logger = l
	}

	return &Storage{
		backend: backend,
		codec:   NewEntryCodec(options.Codec),
		logger:  options.Logger,
	}
}

// Get retrieves the value stored for the given key.
// If no entry exists it returns (nil, false, nil).
// An entry that holds Undefined returns (Undefined, true, nil).
// Entries that can't be decoded lead to a KindDecode error.
// The key must be a non-empty string.
func (s *Storage) Get(k string, options GetOptions) (v any, found bool, err error) {
	raw, found, err := s.read(k, options)
	if err != nil || !found {
		return nil, false, err
	}

	v, _, err = s.codec.Decode(raw, found)
	if err != nil {
		return nil, false, s.handleDecodeError(k, options, err)
	}
	return v, true, nil
}

// GetInto retrieves the value stored for the given key
// and decodes it into the value that v points to.
// An entry that holds Undefined sets the pointed-to value to its zero value.
// Otherwise it behaves like Get.
func (s *Storage) GetInto(k string, v any, options GetOptions) (found bool, err error) {
	if err := CheckKey(k); err != nil {
		return false, err
	}
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false, ErrInvalidTarget
	}

	raw, found, err := s.read(k, options)
	if err != nil || !found {
		return false, err
	}

	if err := s.codec.DecodeInto(raw, v); err != nil {
		if KindOf(err) != KindDecode {
			return false, err
		}
		return false, s.handleDecodeError(k, options, err)
	}
	return true, nil
}

// read validates the key, reads the raw entry and honors options.Destroy.
func (s *Storage) read(k string, options GetOptions) (string, bool, error) {
	if err := CheckKey(k); err != nil {
		return "", false, err
	}

	raw, found, err := s.backend.Get(k)
	if err != nil {
		return "", false, fmt.Errorf("localstore: get %q: %w", k, err)
	}
	if !found {
		return "", false, nil
	}

	if options.Destroy {
		if err := s.destroy(k, "destroy"); err != nil {
			return "", false, err
		}
	}
	return raw, true, nil
}

// handleDecodeError deletes the entry if options.DestroyOnError is set
// and it wasn't deleted already, then returns decodeErr unchanged.
func (s *Storage) handleDecodeError(k string, options GetOptions, decodeErr error) error {
	s.logger.WithError(decodeErr).WithField("key", k).Debug("Entry can't be decoded")
	if options.DestroyOnError && !options.Destroy {
		if err := s.destroy(k, "destroyOnError"); err != nil {
			return err
		}
	}
	return decodeErr
}

func (s *Storage) destroy(k, reason string) error {
	if err := s.backend.Delete(k); err != nil {
		return fmt.Errorf("localstore: delete %q: %w", k, err)
	}
	s.logger.WithFields(logrus.Fields{
		"key":    k,
		"reason": reason,
	}).Debug("Entry destroyed")
	return nil
}

// Set stores the given value for the given key.
// Undefined is stored as UndefinedToken, other values are encoded with the
// configured codec. If encoding fails, nothing is written and
// a KindEncode error is returned.
// The key must be a non-empty string.
func (s *Storage) Set(k string, v any) error {
	if err := CheckKey(k); err != nil {
		return err
	}

	text, err := s.codec.Encode(v)
	if err != nil {
		return err
	}

	if err := s.backend.Set(k, text); err != nil {
		return fmt.Errorf("localstore: set %q: %w", k, err)
	}
	return nil
}

// Exists reports whether an entry exists for the given key.
// Entries holding Undefined exist.
// The key must be a non-empty string.
func (s *Storage) Exists(k string) (bool, error) {
	if err := CheckKey(k); err != nil {
		return false, err
	}

	_, found, err := s.backend.Get(k)
	if err != nil {
		return false, fmt.Errorf("localstore: get %q: %w", k, err)
	}
	return found, nil
}

// Remove deletes the entry for the given key
// and reports whether it existed before the call.
// Removing a non-existing entry returns (false, nil).
// The key must be a non-empty string.
func (s *Storage) Remove(k string) (bool, error) {
	existed, err := s.Exists(k)
	if err != nil {
		return false, err
	}

	if err := s.backend.Delete(k); err != nil {
		return false, fmt.Errorf("localstore: delete %q: %w", k, err)
	}
	return existed, nil
}

// Clear deletes all entries
// and reports whether there was at least one entry before the call.
func (s *Storage) Clear() (bool, error) {
	n, err := s.backend.Len()
	if err != nil {
		return false, fmt.Errorf("localstore: len: %w", err)
	}

	if err := s.backend.Clear(); err != nil {
		return false, fmt.Errorf("localstore: clear: %w", err)
	}
	return n > 0, nil
}

// Close closes the backend if it has a Close method.
func (s *Storage) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
