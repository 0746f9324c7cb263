// Package msgpack provides a MessagePack codec for entries.
// Encoded entries are binary, so only use it with backends that store
// arbitrary bytes (every backend in this module does).
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v4"
)

// Codec encodes/decodes Go values to/from MessagePack.
// You can use MsgPack instead of creating an instance of this struct.
type Codec struct{}

// Marshal encodes a Go value to MessagePack.
func (c Codec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes a MessagePack value into a Go value.
// data must hold exactly one value, trailing bytes lead to an error.
func (c Codec) Unmarshal(data []byte, v any) error {
	r := bytes.NewReader(data)
	if err := msgpack.NewDecoder(r).Decode(v); err != nil {
		return err
	}
	if r.Len() > 0 {
		return fmt.Errorf("msgpack: %d unexpected bytes after the value", r.Len())
	}
	return nil
}

// MsgPack is a Codec that encodes/decodes Go values to/from MessagePack.
var MsgPack = Codec{}
