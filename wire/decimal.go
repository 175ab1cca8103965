package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/mummydata/mummy/errs"
)

// Decimal bodies (spec section 4.5) are:
//
//	finite:  sign(1) exponent(2, signed) digitCount(2, unsigned) digits(ceil(digitCount/2))
//	special: classifier(1)
//
// Digits are packed two per byte, the first (more significant) digit of each
// pair in the low nibble: digit[2k] occupies the low nibble of digit-byte k,
// digit[2k+1] the high nibble. The high nibble of the final byte is unused
// (left zero) when digitCount is odd.

func encodeDecimal(d Decimal) (Tag, []byte, error) {
	if d.IsSpecial() {
		var classifier byte
		switch d.Kind {
		case DecimalInfinity:
			classifier = specialInfinity
			if d.Sign != 0 {
				classifier |= specialNegOrSig
			}
		case DecimalNaN:
			classifier = specialNaN
		case DecimalSignalingNaN:
			classifier = specialNaN | specialNegOrSig
		default:
			return 0, nil, fmt.Errorf("%w: unrecognized decimal kind %d", errs.ErrUnencodable, d.Kind)
		}
		return TagSpecialNum, []byte{classifier}, nil
	}

	if d.Sign != 0 && d.Sign != 1 {
		return 0, nil, fmt.Errorf("%w: decimal sign must be 0 or 1", errs.ErrUnencodable)
	}
	if len(d.Digits) > 0xFFFF {
		return 0, nil, fmt.Errorf("%w: decimal has too many digits", errs.ErrUnencodable)
	}

	header := make([]byte, 5)
	header[0] = byte(d.Sign)
	binary.BigEndian.PutUint16(header[1:3], uint16(d.Exponent))
	binary.BigEndian.PutUint16(header[3:5], uint16(len(d.Digits)))

	digitBytes := make([]byte, (len(d.Digits)+1)/2)
	for i, dig := range d.Digits {
		if dig > 9 {
			return 0, nil, fmt.Errorf("%w: decimal digit %d out of range", errs.ErrUnencodable, dig)
		}
		if i&1 == 0 {
			digitBytes[i/2] |= dig
		} else {
			digitBytes[i/2] |= dig << 4
		}
	}

	return TagDecimal, append(header, digitBytes...), nil
}

func decodeDecimalBody(body []byte) (Decimal, int, error) {
	if len(body) < 5 {
		return Decimal{}, 0, fmt.Errorf("%w: truncated decimal header", errs.ErrTruncated)
	}

	sign := int8(body[0])
	if sign != 0 && sign != 1 {
		return Decimal{}, 0, fmt.Errorf("%w: decimal sign must be 0 or 1", errs.ErrInvalidBody)
	}
	exponent := int16(binary.BigEndian.Uint16(body[1:3]))
	count := int(binary.BigEndian.Uint16(body[3:5]))

	width := 5 + (count+1)/2
	if len(body) < width {
		return Decimal{}, 0, fmt.Errorf("%w: truncated decimal digits", errs.ErrTruncated)
	}

	digits := make([]byte, count)
	digitBytes := body[5:width]
	for i := 0; i < count; i++ {
		b := digitBytes[i/2]
		if i&1 == 0 {
			digits[i] = b & 0x0F
		} else {
			digits[i] = b >> 4
		}
	}

	return Finite(sign, exponent, digits), width, nil
}

func decodeSpecialNumBody(body []byte) (Decimal, int, error) {
	if len(body) < 1 {
		return Decimal{}, 0, fmt.Errorf("%w: truncated special-num classifier", errs.ErrTruncated)
	}

	b := body[0]
	switch b & 0xF0 {
	case specialInfinity:
		return Infinity(b&specialNegOrSig != 0), 1, nil
	case specialNaN:
		if b&specialNegOrSig != 0 {
			return SignalingNaN(), 1, nil
		}
		return NaN(), 1, nil
	default:
		return Decimal{}, 0, fmt.Errorf("%w: unrecognized special-num classifier 0x%02x", errs.ErrInvalidBody, b)
	}
}
