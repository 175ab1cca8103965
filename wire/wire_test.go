package wire

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mummydata/mummy/errs"
)

func TestEncodeLiteralScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want []byte
	}{
		{"null", nil, []byte{0x00}},
		{"true", true, []byte{0x01, 0x01}},
		{"false", false, []byte{0x01, 0x00}},
		{"zero", int64(0), []byte{0x02, 0x00}},
		{"neg one", int64(-1), []byte{0x02, 0xFF}},
		{"127", int64(127), []byte{0x02, 0x7F}},
		{"128", int64(128), []byte{0x03, 0x00, 0x80}},
		{"empty list", List{}, []byte{0x10, 0x00}},
		{"list 1 2 3", List{int64(1), int64(2), int64(3)},
			[]byte{0x10, 0x03, 0x02, 0x01, 0x02, 0x02, 0x02, 0x03}},
		{"bytes hi", []byte("hi"), []byte{0x08, 0x02, 0x68, 0x69}},
		{"date", Date{Year: 2024, Month: 1, Day: 6}, []byte{0x1A, 0x07, 0xE8, 0x01, 0x06}},
		{"+inf", Infinity(false), []byte{0x1F, 0x10}},
		{"-inf", Infinity(true), []byte{0x1F, 0x11}},
		{"nan", NaN(), []byte{0x1F, 0x20}},
		{"snan", SignalingNaN(), []byte{0x1F, 0x21}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Encode(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	values := []any{
		nil,
		true,
		false,
		int64(0),
		int64(-1),
		int64(127),
		int64(128),
		int64(-129),
		int64(32767),
		int64(32768),
		int64(-2147483648),
		int64(2147483647),
		int64(2147483648),
		int64(9223372036854775807),
		new(big.Int).Lsh(big.NewInt(1), 100),
		new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 100)),
		3.14159,
		[]byte("hello world"),
		"hello, 世界",
		List{int64(1), "two", 3.0, nil},
		Tuple{int64(1), int64(2)},
		Date{Year: 2024, Month: 1, Day: 6},
		Time{Hour: 12, Minute: 30, Second: 5, Microsecond: 123456},
		DateTime{Date: Date{Year: 2024, Month: 1, Day: 6}, Time: Time{Hour: 1, Minute: 2, Second: 3}},
		Duration{Days: 1, Seconds: -5, Microseconds: 999},
		Finite(0, -2, []byte{1, 2, 3}),
		Finite(1, 5, []byte{9}),
		Infinity(false),
		Infinity(true),
		NaN(),
		SignalingNaN(),
	}

	for _, v := range values {
		encoded, err := Encode(v)
		require.NoError(t, err)
		got, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestHashRoundTrip(t *testing.T) {
	h := Hash{
		{Key: "a", Value: int64(1)},
		{Key: "b", Value: int64(2)},
	}
	encoded, err := Encode(h)
	require.NoError(t, err)
	got, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHashDuplicateKeyLastWins(t *testing.T) {
	// hand-built short hash: 2 pairs, both keyed "a", values 1 then 2.
	key, err := Encode("a")
	require.NoError(t, err)
	v1, err := Encode(int64(1))
	require.NoError(t, err)
	v2, err := Encode(int64(2))
	require.NoError(t, err)

	body := []byte{2} // 2 key/value pairs
	body = append(body, key...)
	body = append(body, v1...)
	body = append(body, key...)
	body = append(body, v2...)

	raw := append([]byte{byte(TagHashS)}, body...)
	got, err := Decode(raw)
	require.NoError(t, err)

	h, ok := got.(Hash)
	require.True(t, ok)
	require.Len(t, h, 1)
	assert.Equal(t, int64(2), h[0].Value)
}

func TestSetDeduplicatesOnDecode(t *testing.T) {
	one, err := Encode(int64(1))
	require.NoError(t, err)

	body := []byte{3}
	body = append(body, one...)
	body = append(body, one...)
	body = append(body, one...)
	raw := append([]byte{byte(TagSetS)}, body...)

	got, err := Decode(raw)
	require.NoError(t, err)
	s, ok := got.(Set)
	require.True(t, ok)
	assert.Len(t, s, 1)
}

func TestNarrowestTagBoundaries(t *testing.T) {
	cases := []struct {
		in      int64
		wantTag Tag
	}{
		{0, TagInt8},
		{127, TagInt8},
		{-128, TagInt8},
		{128, TagInt16},
		{-129, TagInt16},
		{32767, TagInt16},
		{32768, TagInt32},
		{-32769, TagInt32},
		{2147483647, TagInt32},
		{2147483648, TagInt64},
		{-2147483649, TagInt64},
	}
	for _, tc := range cases {
		encoded, err := Encode(tc.in)
		require.NoError(t, err)
		assert.Equal(t, byte(tc.wantTag), encoded[0])
	}
}

func TestHugeIntegerBoundary(t *testing.T) {
	maxInt64 := big.NewInt(9223372036854775807)
	tooBig := new(big.Int).Add(maxInt64, big.NewInt(1))

	encoded, err := Encode(tooBig)
	require.NoError(t, err)
	assert.Equal(t, byte(TagHuge), encoded[0])

	got, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 0, tooBig.Cmp(got.(*big.Int)))
}

func TestContainerWidthClassBoundaries(t *testing.T) {
	mk := func(n int) List {
		l := make(List, n)
		for i := range l {
			l[i] = int64(0)
		}
		return l
	}

	// These bodies are highly redundant, so Encode wraps them in the
	// compression envelope; the width class is the tag with the flag cleared.
	encoded255, err := Encode(mk(255))
	require.NoError(t, err)
	assert.Equal(t, byte(TagListS), encoded255[0]&^compressionFlag)

	encoded256, err := Encode(mk(256))
	require.NoError(t, err)
	assert.Equal(t, byte(TagListM), encoded256[0]&^compressionFlag)

	encoded65535, err := Encode(mk(65535))
	require.NoError(t, err)
	assert.Equal(t, byte(TagListM), encoded65535[0]&^compressionFlag)

	encoded65536, err := Encode(mk(65536))
	require.NoError(t, err)
	assert.Equal(t, byte(TagListL), encoded65536[0]&^compressionFlag)
}

func TestUTF8ByteLengthPromotion(t *testing.T) {
	// 128 two-byte UTF-8 characters: 256 bytes, 128 runes -> must promote past short (255).
	s := ""
	for i := 0; i < 128; i++ {
		s += "é" // 2 bytes in UTF-8, 1 rune
	}
	encoded, err := Encode(s)
	require.NoError(t, err)
	// The repetitive body is compressed, so compare with the flag cleared.
	assert.Equal(t, byte(TagUTF8M), encoded[0]&^compressionFlag)
}

func TestDepthGuardOnEncode(t *testing.T) {
	var v any = List{}
	for i := 0; i < MaxDepth+1; i++ {
		v = List{v}
	}
	_, err := Encode(v)
	assert.ErrorIs(t, err, errs.ErrDepthExceeded)
}

func TestDepthGuardOnDecode(t *testing.T) {
	// a chain of MaxDepth+2 nested empty-short-lists: [0x10,0x01]{N} then [0x10,0x00]
	deepest := []byte{byte(TagListS), 0x00}
	for i := 0; i < MaxDepth+1; i++ {
		wrapper := []byte{byte(TagListS), 0x01}
		wrapper = append(wrapper, deepest...)
		deepest = wrapper
	}
	_, err := Decode(deepest)
	assert.ErrorIs(t, err, errs.ErrDepthExceeded)
}

func TestCompressionEnvelopeRoundTrip(t *testing.T) {
	l := make(List, 64)
	for i := range l {
		l[i] = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	}

	encoded, err := Encode(l)
	require.NoError(t, err)
	require.NotZero(t, encoded[0]&compressionFlag, "highly redundant payload should compress")

	got, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, l, got)
}

func TestCompressionSkippedWhenNotWorthwhile(t *testing.T) {
	// A short body (<=5 bytes) never attempts compression.
	encoded, err := Encode(int64(1))
	require.NoError(t, err)
	assert.Zero(t, encoded[0]&compressionFlag)
}

func TestTagIdempotence(t *testing.T) {
	v := List{int64(1), "two", []byte{3, 4}, Date{Year: 2024, Month: 1, Day: 6}}
	encoded, err := Encode(v)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	reencoded, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded)
}

func TestWithDefaultFallback(t *testing.T) {
	type myInt int
	encoded, err := Encode(myInt(7), WithDefault(func(v any) (any, error) {
		if n, ok := v.(myInt); ok {
			return int64(n), nil
		}
		return nil, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(TagInt8), 7}, encoded)
}

func TestUnencodableWithoutDefault(t *testing.T) {
	type notSupported struct{}
	_, err := Encode(notSupported{})
	assert.Error(t, err)
}

func TestTruncatedInput(t *testing.T) {
	_, err := Decode([]byte{byte(TagInt32), 0x00, 0x01})
	assert.Error(t, err)
}

func TestInvalidUTF8(t *testing.T) {
	raw := []byte{byte(TagUTF8S), 0x02, 0xFF, 0xFE}
	_, err := Decode(raw)
	assert.Error(t, err)
}

func TestDecodeLegacyRejectsMediumWidth(t *testing.T) {
	encoded := []byte{byte(TagListM), 0x00, 0x00}
	_, err := DecodeLegacy(encoded)
	assert.Error(t, err)
}

func TestDecodeLegacyAcceptsOverlappingTags(t *testing.T) {
	encoded, err := Encode(List{int64(1), int64(2)})
	require.NoError(t, err)

	got, err := DecodeLegacy(encoded)
	require.NoError(t, err)
	assert.Equal(t, List{int64(1), int64(2)}, got)
}
