package mummy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	v := List{int64(1), "two", 3.0, Hash{{Key: "a", Value: true}}}

	encoded, err := Encode(v)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, v, decoded)
}

func TestEncodeWithDefaultFallback(t *testing.T) {
	type celsius float64

	encoded, err := Encode(celsius(36.6), WithDefault(func(v any) (any, error) {
		if c, ok := v.(celsius); ok {
			return float64(c), nil
		}
		return nil, ErrUnencodable
	}))
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 36.6, decoded)
}

func TestDecimalConstructors(t *testing.T) {
	d := FiniteDecimal(0, -2, []byte{1, 4, 1, 5})

	encoded, err := Encode(d)
	require.NoError(t, err)
	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, d, decoded)

	encoded, err = Encode(Infinity(true))
	require.NoError(t, err)
	decoded, err = Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, Infinity(true), decoded)

	encoded, err = Encode(NaN())
	require.NoError(t, err)
	decoded, err = Decode(encoded)
	require.NoError(t, err)
	assert.True(t, decoded.(Decimal).Kind == NaN().Kind)
}

func TestSchemaBindValidateAndTransform(t *testing.T) {
	typ, err := Bind(Dict{
		{Key: Key("name"), Value: Text},
		{Key: OptionalKey("nickname"), Value: Text},
	})
	require.NoError(t, err)

	msg := typ.New(Hash{
		{Key: "name", Value: "Ada"},
	})
	require.NoError(t, msg.Validate())

	encoded, err := msg.EncodeTransformed()
	require.NoError(t, err)

	decoded, err := typ.DecodeTransformed(encoded)
	require.NoError(t, err)
	assert.Equal(t, msg.Value(), decoded.Value())
}

func TestSchemaValidateRejectsMismatch(t *testing.T) {
	typ, err := Bind(Dict{{Key: Key("count"), Value: Int}})
	require.NoError(t, err)

	msg := typ.New(Hash{{Key: "count", Value: "not an int"}})
	assert.ErrorIs(t, msg.Validate(), ErrInvalidMessage)
}

func TestBindRejectsMalformedSchema(t *testing.T) {
	_, err := Bind(TupleSchema{OptionalSchema(Int), Text})
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestUnionAndRuleSchemas(t *testing.T) {
	typ, err := Bind(UnionSchema(Int, Text))
	require.NoError(t, err)

	msg := typ.New(int64(7))
	assert.NoError(t, msg.Validate())

	positive, err := Bind(RuleSchema(func(v any) bool {
		n, ok := v.(int64)
		return ok && n > 0
	}))
	require.NoError(t, err)
	assert.NoError(t, positive.New(int64(1)).Validate())
	assert.Error(t, positive.New(int64(-1)).Validate())
}

func TestDecodeLegacyRoundTrip(t *testing.T) {
	encoded, err := Encode(List{int64(1), int64(2)})
	require.NoError(t, err)

	decoded, err := DecodeLegacy(encoded)
	require.NoError(t, err)
	assert.Equal(t, List{int64(1), int64(2)}, decoded)
}
