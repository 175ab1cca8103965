// Package huge encodes and decodes arbitrary-precision signed integers as
// minimal-length, two's-complement, big-endian byte sequences (spec section
// 4.4, "Huge-integer codec").
package huge

import "math/big"

// Encode returns the minimal-length two's-complement big-endian byte
// representation of x: positive values are left-padded with 0x00 if their
// top bit would otherwise look negative, and negative values are left-padded
// with 0xFF if their top bit would otherwise look positive.
func Encode(x *big.Int) []byte {
	if x.Sign() == 0 {
		return []byte{0}
	}

	if x.Sign() > 0 {
		b := x.Bytes() // big-endian magnitude, no leading zero byte
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}

	// Negative: two's-complement of (-x), i.e. ^(x+1)'s magnitude.
	mag := new(big.Int).Add(x, big.NewInt(1))
	mag.Neg(mag) // mag = -(x+1) = |x| - 1, magnitude of ~x
	b := mag.Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}
	for i, by := range b {
		b[i] = by ^ 0xff
	}
	if b[0]&0x80 == 0 {
		b = append([]byte{0xff}, b...)
	}
	return b
}

// Decode interprets data as a two's-complement big-endian signed integer.
func Decode(data []byte) *big.Int {
	if len(data) == 0 {
		return big.NewInt(0)
	}

	if data[0]&0x80 == 0 {
		return new(big.Int).SetBytes(data)
	}

	inverted := make([]byte, len(data))
	for i, b := range data {
		inverted[i] = b ^ 0xff
	}
	magPlusOne := new(big.Int).SetBytes(inverted)
	result := new(big.Int).Add(magPlusOne, big.NewInt(1))
	result.Neg(result)
	return result
}

// FitsInt64 reports whether x is representable as a signed 64-bit integer.
func FitsInt64(x *big.Int) bool {
	return x.IsInt64()
}
