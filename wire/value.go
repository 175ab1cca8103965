package wire

// This file defines the closed set of Go types the encoder recognizes by
// exact dynamic type (spec section 3, "Value"). Go has no native tuple, set,
// or arbitrary-precision decimal type, so those are modeled as distinct
// defined types rather than reusing a single generic container.
//
// Encode switches on the dynamic type of its argument, never on interface
// satisfaction: a named type whose underlying type is []any is not a List
// unless it literally is wire.List (spec section 9, "do not rely on subtype
// relationships").

// List is an ordered, homogeneous-in-practice sequence. Decode never
// produces anything but wire.List for list values.
type List []any

// Tuple is an ordered, fixed-shape sequence. On the wire it is
// indistinguishable from List except by tag.
type Tuple []any

// Set is an unordered collection of unique elements. Encode emits it exactly
// like List/Tuple; Decode deduplicates (spec section 3, "Invariants").
type Set []any

// HashEntry is one key/value pair of a Hash. Hash is a slice rather than a
// Go map because the wire format allows any value as a key, including types
// that are not comparable in Go (a []byte or List key would panic a map
// index). Order is preserved on decode except where a later duplicate key
// overwrites an earlier one ("last-wins", spec section 3).
type HashEntry struct {
	Key   any
	Value any
}

// Hash is a key/value mapping, encoded as a flat stream of alternating keys
// and values (spec section 4.1, tag 0x0F/0x13/0x17).
type Hash []HashEntry

// Date is a calendar date with no time component.
type Date struct {
	Year  int16
	Month uint8
	Day   uint8
}

// Time is a wall-clock time with microsecond resolution and no timezone.
// Encoding a Time with a timezone attached is not representable in this
// type; callers that need zone-aware values must normalize to UTC (or
// another fixed offset) before constructing one (spec section 4.2, "Time").
type Time struct {
	Hour        uint8
	Minute      uint8
	Second      uint8
	Microsecond uint32 // stored in 3 bytes on the wire, so 0..0xFFFFFF
}

// DateTime is the concatenation of a Date and a Time.
type DateTime struct {
	Date Date
	Time Time
}

// Duration is a signed day/second/microsecond offset, matching Python's
// timedelta normalization rather than Go's single int64 nanosecond duration.
type Duration struct {
	Days         int32
	Seconds      int32
	Microseconds int32
}

// DecimalKind distinguishes a finite decimal from the four special decimals
// the wire format encodes with tag 0x1F instead of 0x1E.
type DecimalKind uint8

const (
	DecimalFinite DecimalKind = iota
	DecimalInfinity
	DecimalNaN
	DecimalSignalingNaN
)

// Decimal is an arbitrary-precision decimal number: sign, exponent, and a
// most-significant-digit-first sequence of base-10 digits, plus the four
// special values (+/-Infinity, quiet/signaling NaN) that share its type but
// use a different wire tag (spec section 3, "Decimal").
//
// For a finite Decimal, the represented value is
// (-1)^Sign * (digit[0]digit[1]...digit[n-1]) * 10^Exponent.
// Sign is 0 for positive/zero, 1 for negative; for DecimalInfinity it still
// carries the sign of the infinity. It is ignored for NaN and signaling NaN.
type Decimal struct {
	Kind     DecimalKind
	Sign     int8
	Exponent int16
	Digits   []byte
}

// Finite constructs a finite Decimal from its sign, exponent, and digits.
func Finite(sign int8, exponent int16, digits []byte) Decimal {
	return Decimal{Kind: DecimalFinite, Sign: sign, Exponent: exponent, Digits: digits}
}

// Infinity constructs the signed infinite Decimal.
func Infinity(negative bool) Decimal {
	d := Decimal{Kind: DecimalInfinity}
	if negative {
		d.Sign = 1
	}
	return d
}

// NaN constructs the quiet-NaN Decimal.
func NaN() Decimal { return Decimal{Kind: DecimalNaN} }

// SignalingNaN constructs the signaling-NaN Decimal.
func SignalingNaN() Decimal { return Decimal{Kind: DecimalSignalingNaN} }

// IsSpecial reports whether d is one of the four special decimals rather
// than a finite value.
func (d Decimal) IsSpecial() bool { return d.Kind != DecimalFinite }
