package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mummydata/mummy/errs"
	"github.com/mummydata/mummy/wire"
)

// abDict is the literal scenario from spec section 8: {"a": int, "b": int}
// applied to {"a": 1, "b": 2} transforms to [1, 2] and encodes to
// [0x10, 0x02, 0x02, 0x01, 0x02, 0x02].
func abDict() Dict {
	return Dict{
		{Key: Key("a"), Value: Int},
		{Key: Key("b"), Value: Int},
	}
}

func TestLiteralDictTransformScenario(t *testing.T) {
	message := wire.Hash{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: int64(2)},
	}

	require.NoError(t, Validate(abDict(), message))

	transformed, err := Transform(abDict(), message)
	require.NoError(t, err)
	assert.Equal(t, wire.List{int64(1), int64(2)}, transformed)

	encoded, err := wire.Encode(transformed)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x02, 0x02, 0x01, 0x02, 0x02}, encoded)
}

func TestSchemaRoundTrip(t *testing.T) {
	sch := Dict{
		{Key: Key("name"), Value: Text},
		{Key: OptionalKey("nickname"), Value: Text},
		{Key: WildcardKey(Int), Value: Text},
	}

	message := wire.Hash{
		{Key: "name", Value: "Ada"},
		{Key: "nickname", Value: "Countess"},
		{Key: int64(7), Value: "lucky number"},
	}

	require.NoError(t, ValidateSchema(sch))
	require.NoError(t, Validate(sch, message))

	transformed, err := Transform(sch, message)
	require.NoError(t, err)

	restored, err := Untransform(sch, transformed)
	require.NoError(t, err)

	assert.ElementsMatch(t, message, restored.(wire.Hash))
}

func TestSchemaRoundTripOmitsAbsentOptional(t *testing.T) {
	sch := Dict{
		{Key: Key("name"), Value: Text},
		{Key: OptionalKey("nickname"), Value: Text},
	}

	message := wire.Hash{
		{Key: "name", Value: "Ada"},
	}

	transformed, err := Transform(sch, message)
	require.NoError(t, err)
	assert.Equal(t, wire.List{"Ada", nil}, transformed)

	restored, err := Untransform(sch, transformed)
	require.NoError(t, err)
	assert.Equal(t, message, restored.(wire.Hash))
}

func TestSchemaShortensEncodedForm(t *testing.T) {
	message := wire.Hash{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: int64(2)},
	}

	plain, err := wire.Encode(message)
	require.NoError(t, err)

	transformed, err := Transform(abDict(), message)
	require.NoError(t, err)
	shortened, err := wire.Encode(transformed)
	require.NoError(t, err)

	assert.Less(t, len(shortened), len(plain))
}

func TestValidateRejectsWrongType(t *testing.T) {
	err := Validate(Int, "not an int")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidMessage)

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "not an int", verr.Message)
}

func TestValidateDictRejectsMissingRequiredKey(t *testing.T) {
	err := Validate(abDict(), wire.Hash{{Key: "a", Value: int64(1)}})
	assert.ErrorIs(t, err, errs.ErrInvalidMessage)
}

func TestValidateDictRejectsUnclaimedKey(t *testing.T) {
	sch := Dict{{Key: Key("a"), Value: Int}}
	message := wire.Hash{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: int64(2)},
	}
	assert.ErrorIs(t, Validate(sch, message), errs.ErrInvalidMessage)
}

func TestValidateUnionAcceptsAnyOption(t *testing.T) {
	sch := Union{Int, Text}
	assert.NoError(t, Validate(sch, int64(1)))
	assert.NoError(t, Validate(sch, "hi"))
	assert.Error(t, Validate(sch, true))
}

func TestValidateTupleTrailingOptionals(t *testing.T) {
	sch := Tuple{Int, Optional{Schema: Text}}
	assert.NoError(t, Validate(sch, wire.Tuple{int64(1)}))
	assert.NoError(t, Validate(sch, wire.Tuple{int64(1), "hi"}))
	assert.Error(t, Validate(sch, wire.Tuple{int64(1), "hi", "extra"}))
}

func TestValidateListRequiresNonEmptyWithoutOptional(t *testing.T) {
	sch := List{Elem: Int}
	assert.Error(t, Validate(sch, wire.List{}))

	optSch := List{Elem: Optional{Schema: Int}}
	assert.NoError(t, Validate(optSch, wire.List{}))
}

func TestValidateSchemaRejectsRequiredAfterOptionalInTuple(t *testing.T) {
	bad := Tuple{Optional{Schema: Int}, Text}
	err := ValidateSchema(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidSchema)
}

func TestValidateSchemaRejectsNilRulePredicate(t *testing.T) {
	assert.ErrorIs(t, ValidateSchema(Rule{}), errs.ErrInvalidSchema)
}

func TestBindRejectsMalformedSchema(t *testing.T) {
	_, err := Bind(Tuple{Optional{Schema: Int}, Text})
	assert.ErrorIs(t, err, errs.ErrInvalidSchema)
}

func TestMessageEncodeTransformedRoundTrip(t *testing.T) {
	typ, err := Bind(abDict())
	require.NoError(t, err)

	msg := typ.New(wire.Hash{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: int64(2)},
	})

	encoded, err := msg.EncodeTransformed()
	require.NoError(t, err)

	decoded, err := typ.DecodeTransformed(encoded)
	require.NoError(t, err)
	assert.ElementsMatch(t, msg.Value().(wire.Hash), decoded.Value().(wire.Hash))
}

func TestFingerprintStableAcrossEquivalentSchemas(t *testing.T) {
	a, err := Bind(abDict())
	require.NoError(t, err)
	b, err := Bind(Dict{
		{Key: Key("b"), Value: Int},
		{Key: Key("a"), Value: Int},
	})
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}
