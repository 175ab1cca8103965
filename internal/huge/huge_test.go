package huge

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	maxInt64 := big.NewInt(9223372036854775807)
	cases := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(127),
		big.NewInt(128),
		big.NewInt(-128),
		big.NewInt(-129),
		new(big.Int).Add(maxInt64, big.NewInt(1)),
		new(big.Int).Neg(new(big.Int).Add(maxInt64, big.NewInt(2))),
		new(big.Int).Lsh(big.NewInt(1), 512),
		new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 512)),
	}
	for _, x := range cases {
		encoded := Encode(x)
		got := Decode(encoded)
		assert.Equal(t, 0, x.Cmp(got), "round trip mismatch for %s", x)
	}
}

func TestEncodeMinimalLength(t *testing.T) {
	// 255 fits in one byte unsigned but needs a leading 0x00 to stay
	// non-negative in two's complement.
	assert.Equal(t, []byte{0x00, 0xFF}, Encode(big.NewInt(255)))
	assert.Equal(t, []byte{0x7F}, Encode(big.NewInt(127)))
	assert.Equal(t, []byte{0x80}, Encode(big.NewInt(-128)))
	assert.Equal(t, []byte{0xFF, 0x00}, Encode(big.NewInt(-256)))
}

func TestFitsInt64(t *testing.T) {
	assert.True(t, FitsInt64(big.NewInt(9223372036854775807)))
	assert.False(t, FitsInt64(new(big.Int).Add(big.NewInt(9223372036854775807), big.NewInt(1))))
}
