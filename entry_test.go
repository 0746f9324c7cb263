package localstore_test

import (
	"encoding/json"
	"math"
	"math/big"
	"math/rand"
	"strconv"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"

	"github.com/localstore/localstore"
	"github.com/localstore/localstore/encoding"
	"github.com/localstore/localstore/encoding/msgpack"
)

var jsonCodec = localstore.NewEntryCodec(nil)

func TestEncodeUndefined(t *testing.T) {
	// TOML can't encode anything but tables, but the token doesn't go through the codec.
	for _, codec := range []encoding.Codec{encoding.JSON, encoding.TOML, msgpack.MsgPack} {
		text, err := localstore.NewEntryCodec(codec).Encode(localstore.Undefined)
		require.NoError(t, err)
		require.Equal(t, "undefined", text)
	}
}

func TestDecodeUndefined(t *testing.T) {
	v, found, err := jsonCodec.Decode("undefined", true)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, localstore.IsUndefined(v))
	require.Equal(t, localstore.Undefined, v)
	require.Equal(t, "undefined", v.(interface{ String() string }).String())
}

func TestDecodeMissing(t *testing.T) {
	// The text is ignored when there's no entry.
	for _, raw := range []string{"", "undefined", "null", "{bad"} {
		v, found, err := jsonCodec.Decode(raw, false)
		require.NoError(t, err)
		require.False(t, found)
		require.Nil(t, v)
	}
}

func TestDecodeNull(t *testing.T) {
	v, found, err := jsonCodec.Decode("null", true)
	require.NoError(t, err)
	require.True(t, found)
	require.Nil(t, v)
	require.False(t, localstore.IsUndefined(v))
}

func TestDecodeError(t *testing.T) {
	for _, raw := range []string{"{bad json", "", "Undefined", "undefined ", "[1,"} {
		_, _, err := jsonCodec.Decode(raw, true)
		require.ErrorIs(t, err, localstore.ErrDecode, "%q", raw)

		var e *localstore.Error
		require.ErrorAs(t, err, &e)
		require.Equal(t, raw, e.Raw)
		require.Error(t, e.Err)
	}

	var syntaxErr *json.SyntaxError
	_, _, err := jsonCodec.Decode("{bad json", true)
	require.ErrorAs(t, err, &syntaxErr)
}

func TestEncode(t *testing.T) {
	tables := []struct {
		name     string
		input    any
		expected string
	}{
		{"map", map[string]any{"everyone": true}, `{"everyone":true}`},
		{"struct", struct{ Bar string }{"baz"}, `{"Bar":"baz"}`},
		{"nil", nil, "null"},
		{"empty string", "", `""`},
		{"string undefined", "undefined", `"undefined"`},
		{"zero", 0, "0"},
		{"false", false, "false"},
		{"nested", []any{map[string]any{"a": []any{}}}, `[{"a":[]}]`},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			text, err := jsonCodec.Encode(table.input)
			require.NoError(t, err)
			require.Equal(t, table.expected, text)
		})
	}
}

type cycle struct {
	Next *cycle
}

func TestEncodeError(t *testing.T) {
	c := &cycle{}
	c.Next = c
	n, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tables := []struct {
		name  string
		input any
	}{
		{"channel", make(chan int)},
		{"func", func() {}},
		{"complex", complex(1, 2)},
		{"NaN", math.NaN()},
		{"infinity", math.Inf(-1)},
		{"cycle", c},
		{"map with channel", map[string]any{"a": make(chan int)}},
		{"big int", n},
		{"big float", big.NewFloat(1.5)},
		{"big rat", big.NewRat(1, 3)},
		{"big int value", *big.NewInt(1)},
		{"nested big int", map[string]any{"a": []any{1, n}}},
		{"big int in struct", struct{ N *big.Int }{N: n}},
		{"nested undefined", map[string]any{"x": localstore.Undefined}},
		{"undefined in slice", []any{1, localstore.Undefined}},
		{"undefined in struct", struct{ U any }{U: localstore.Undefined}},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			_, err := jsonCodec.Encode(table.input)
			require.ErrorIs(t, err, localstore.ErrEncode)

			var e *localstore.Error
			require.ErrorAs(t, err, &e)
			require.Error(t, e.Err)
		})
	}
}

func TestEncodeErrorCause(t *testing.T) {
	codecs := []localstore.EntryCodec{
		jsonCodec,
		localstore.NewEntryCodec(encoding.TOML),
		localstore.NewEntryCodec(msgpack.MsgPack),
	}
	for _, c := range codecs {
		_, err := c.Encode(map[string]any{"n": big.NewInt(1)})
		require.ErrorIs(t, err, localstore.ErrUnboundedNumber)
		_, err = c.Encode(map[string]any{"x": localstore.Undefined})
		require.ErrorIs(t, err, localstore.ErrNestedUndefined)
	}

	// Encoding Undefined directly with a codec fails as well
	_, err := encoding.JSON.Marshal(map[string]any{"x": localstore.Undefined})
	require.ErrorIs(t, err, localstore.ErrNestedUndefined)
}

func TestEncodeSkipsUnexportedFields(t *testing.T) {
	type withHidden struct {
		Visible string
		hidden  *big.Int
	}
	text, err := jsonCodec.Encode(withHidden{Visible: "a", hidden: big.NewInt(1)})
	require.NoError(t, err)
	require.Equal(t, `{"Visible":"a"}`, text)

	text, err = jsonCodec.Encode(struct{ N *big.Int }{})
	require.NoError(t, err)
	require.Equal(t, `{"N":null}`, text)
}

func TestEncodeNoOutput(t *testing.T) {
	// An empty table is an empty TOML document.
	_, err := localstore.NewEntryCodec(encoding.TOML).Encode(map[string]any{})
	require.ErrorIs(t, err, localstore.ErrEncode)
	require.ErrorIs(t, err, localstore.ErrNoOutput)

	// Non-tables are rejected by the TOML codec itself.
	_, err = localstore.NewEntryCodec(encoding.TOML).Encode(1)
	require.ErrorIs(t, err, localstore.ErrEncode)
	require.NotErrorIs(t, err, localstore.ErrNoOutput)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		v := randomValue(r, 3)
		text, err := jsonCodec.Encode(v)
		require.NoError(t, err)

		actual, found, err := jsonCodec.Decode(text, true)
		require.NoError(t, err)
		require.True(t, found)
		if diff := deep.Equal(actual, v); diff != nil {
			t.Fatalf("%s: %v", text, diff)
		}
	}
}

func TestRoundTripOtherCodecs(t *testing.T) {
	v := map[string]any{"foo": "bar", "baz": true}
	for _, codec := range []encoding.Codec{encoding.TOML, msgpack.MsgPack} {
		c := localstore.NewEntryCodec(codec)
		text, err := c.Encode(v)
		require.NoError(t, err)

		actual, _, err := c.Decode(text, true)
		require.NoError(t, err)
		require.Equal(t, v, actual)
	}
}

// randomValue returns a random value of the types JSON decodes into.
func randomValue(r *rand.Rand, depth int) any {
	kinds := 7
	if depth == 0 {
		kinds = 5
	}
	switch r.Intn(kinds) {
	case 0:
		return nil
	case 1:
		return r.Intn(2) == 0
	case 2:
		return float64(r.Intn(2000) - 1000)
	case 3:
		return r.NormFloat64()
	case 4:
		return "s" + strconv.Itoa(r.Int()) + "\"<\\>é⚡"
	case 5:
		s := make([]any, r.Intn(4))
		for i := range s {
			s[i] = randomValue(r, depth-1)
		}
		return s
	default:
		m := make(map[string]any)
		for i := r.Intn(4); i > 0; i-- {
			m["k"+strconv.Itoa(r.Intn(100))] = randomValue(r, depth-1)
		}
		return m
	}
}

func TestDecodeInto(t *testing.T) {
	var foo struct{ Bar string }
	require.NoError(t, jsonCodec.DecodeInto(`{"Bar":"baz"}`, &foo))
	require.Equal(t, "baz", foo.Bar)

	// The token resets the target
	require.NoError(t, jsonCodec.DecodeInto("undefined", &foo))
	require.Equal(t, "", foo.Bar)

	i := 5
	require.NoError(t, jsonCodec.DecodeInto("undefined", &i))
	require.Equal(t, 0, i)

	err := jsonCodec.DecodeInto(`"not a number"`, &i)
	require.ErrorIs(t, err, localstore.ErrDecode)

	require.ErrorIs(t, jsonCodec.DecodeInto("1", nil), localstore.ErrInvalidTarget)
	require.ErrorIs(t, jsonCodec.DecodeInto("1", i), localstore.ErrInvalidTarget)
	var nilPtr *int
	require.ErrorIs(t, jsonCodec.DecodeInto("1", nilPtr), localstore.ErrInvalidTarget)
}
