package main

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/localstore/localstore"
	"github.com/localstore/localstore/bbolt"
	"github.com/localstore/localstore/buntdb"
	"github.com/localstore/localstore/encoding"
	"github.com/localstore/localstore/encoding/msgpack"
	"github.com/localstore/localstore/file"
	"github.com/localstore/localstore/gomap"
	"github.com/localstore/localstore/leveldb"
	"github.com/localstore/localstore/nop"
	"github.com/localstore/localstore/redis"
	"github.com/localstore/localstore/sqlite"
)

var backendNames = []string{"gomap", "file", "bbolt", "buntdb", "leveldb", "redis", "sqlite", "nop"}

// newBackend creates the backend with the given name.
// options are decoded into the backend's Options, unset fields keep their defaults.
func newBackend(name string, options map[string]any) (localstore.Backend, error) {
	switch name {
	case "gomap":
		return gomap.NewStore(), nil
	case "nop":
		return nop.NewStore(), nil
	case "file":
		var o file.Options
		if err := decodeOptions(options, &o); err != nil {
			return nil, err
		}
		s, err := file.NewStore(o)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "bbolt":
		var o bbolt.Options
		if err := decodeOptions(options, &o); err != nil {
			return nil, err
		}
		s, err := bbolt.NewStore(o)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "buntdb":
		var o buntdb.Options
		if err := decodeOptions(options, &o); err != nil {
			return nil, err
		}
		s, err := buntdb.NewStore(o)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "leveldb":
		var o leveldb.Options
		if err := decodeOptions(options, &o); err != nil {
			return nil, err
		}
		s, err := leveldb.NewStore(o)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		var o redis.Options
		if err := decodeOptions(options, &o); err != nil {
			return nil, err
		}
		c, err := redis.NewClient(o)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "sqlite":
		var o sqlite.Options
		if err := decodeOptions(options, &o); err != nil {
			return nil, err
		}
		c, err := sqlite.NewClient(o)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown backend %q, must be one of %v", name, backendNames)
}

// decodeOptions decodes input into the Options struct that output points to.
// String values are converted, so "true" or "15" from environment variables work.
func decodeOptions(input map[string]any, output any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	if err := d.Decode(input); err != nil {
		return fmt.Errorf("invalid backend options: %w", err)
	}
	return nil
}

func newCodec(name string) (encoding.Codec, error) {
	switch name {
	case "", "json":
		return encoding.JSON, nil
	case "toml":
		return encoding.TOML, nil
	case "msgpack":
		return msgpack.MsgPack, nil
	}
	return nil, fmt.Errorf("unknown encoding %q, must be one of [json toml msgpack]", name)
}
