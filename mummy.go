// Package mummy provides a compact, self-describing binary serialization
// format for a fixed, language-neutral set of structured values, together
// with a schema layer that validates typed messages and strips redundant
// key/tag information from their encoded form.
//
// # Core Features
//
//   - A single-byte type tag per value, with three on-wire length classes
//     (short/medium/long) for strings and containers, each chosen as the
//     narrowest that fits
//   - Arbitrary-precision ("huge") integers, IEEE-754 doubles, and an
//     arbitrary-precision decimal type with its four special values
//   - Calendar dates, wall-clock times, date-times, and durations
//   - An optional whole-payload LZF compression envelope
//   - A bounded recursion guard (256 frames) shared by encode and decode
//   - A schema layer (Optional/Union/Any/Rule/Dict/Tuple/List) that
//     validates messages and reshapes them into a positional form that
//     omits information the schema already implies
//
// # Basic Usage
//
// Encoding and decoding a bare value:
//
//	import "github.com/mummydata/mummy"
//
//	encoded, err := mummy.Encode(mummy.List{int64(1), "two", 3.0})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	decoded, err := mummy.Decode(encoded)
//
// Values of a type Encode does not otherwise recognize can be substituted
// via a default callback:
//
//	encoded, err := mummy.Encode(v, mummy.WithDefault(func(v any) (any, error) {
//	    if t, ok := v.(time.Time); ok {
//	        return mummy.DateTime{ /* ... */ }, nil
//	    }
//	    return nil, fmt.Errorf("no wire form for %T", v)
//	}))
//
// Validating and shortening a message against a shared schema:
//
//	typ, err := mummy.Bind(mummy.Dict{
//	    {Key: mummy.Key("name"), Value: mummy.Text},
//	    {Key: mummy.OptionalKey("nickname"), Value: mummy.Text},
//	})
//
//	msg := typ.New(mummy.Hash{
//	    {Key: "name", Value: "Ada"},
//	})
//	encoded, err := msg.EncodeTransformed()
//
//	decoded, err := typ.DecodeTransformed(encoded)
//
// # Package Structure
//
// This package is a thin convenience layer over wire (the codec) and schema
// (the validation/transform layer); it re-exports the identifiers most
// callers need so a single import covers the common case. For anything this
// layer doesn't re-export, import wire and/or schema directly.
package mummy

import (
	"github.com/mummydata/mummy/errs"
	"github.com/mummydata/mummy/schema"
	"github.com/mummydata/mummy/wire"
)

// Value types the codec recognizes by exact dynamic type (spec section 3).
type (
	List        = wire.List
	Tuple       = wire.Tuple
	Set         = wire.Set
	Hash        = wire.Hash
	HashEntry   = wire.HashEntry
	Date        = wire.Date
	Time        = wire.Time
	DateTime    = wire.DateTime
	Duration    = wire.Duration
	Decimal     = wire.Decimal
	DecimalKind = wire.DecimalKind
	Tag         = wire.Tag
)

// Decimal and special-number constructors.
var (
	FiniteDecimal = wire.Finite
	Infinity      = wire.Infinity
	NaN           = wire.NaN
	SignalingNaN  = wire.SignalingNaN
)

// DefaultFunc and EncodeOption configure a single Encode call (spec section
// 4.2, "default").
type (
	DefaultFunc  = wire.DefaultFunc
	EncodeOption = wire.EncodeOption
)

// WithDefault installs a fallback invoked at most once per value, for
// values Encode would otherwise reject as unencodable.
func WithDefault(fn DefaultFunc) EncodeOption { return wire.WithDefault(fn) }

// Encode serializes value to its wire representation (spec section 6,
// "Library surface").
func Encode(value any, opts ...EncodeOption) ([]byte, error) {
	return wire.Encode(value, opts...)
}

// Decode parses a single wire-encoded value from data.
func Decode(data []byte) (any, error) {
	return wire.Decode(data)
}

// DecodeLegacy parses data using the original, pre-Date/Time/Decimal tag
// set (spec section 9, "Two format generations"). It is never selected
// automatically by Decode; callers that know they hold an old payload must
// opt in explicitly.
func DecodeLegacy(data []byte) (any, error) {
	return wire.DecodeLegacy(data)
}

// HasCompression reports whether this build can produce and consume the
// LZF compression envelope (spec section 6, "build-time capability flag").
const HasCompression = wire.HasCompression

// MaxDepth is the maximum recursion depth permitted for any encoded value,
// on both encode and decode.
const MaxDepth = wire.MaxDepth

// Schema is the closed set of schema forms (spec section 4.6).
type Schema = schema.Schema

// Atomic schema kinds, matching by exact Go type.
const (
	Bool         = schema.Bool
	Int          = schema.Int
	Float        = schema.Float
	Bytes        = schema.Bytes
	Text         = schema.Text
	DateKind     = schema.DateKind
	TimeKind     = schema.TimeKind
	DateTimeKind = schema.DateTimeKind
	DurationKind = schema.DurationKind
	DecimalAtom  = schema.DecimalKind
)

// Any matches every value.
var Any = schema.Any

// Instance matches a message equal to a concrete value.
func Instance(value any) Schema { return schema.Instance{Value: value} }

// OptionalSchema marks a Tuple element, Dict key, or List element as not
// required to be present.
func OptionalSchema(s Schema) Schema { return schema.Optional{Schema: s} }

// UnionSchema matches if any one of opts matches.
func UnionSchema(opts ...Schema) Schema { return schema.Union(opts) }

// RuleSchema matches a value iff pred returns true for it.
func RuleSchema(pred func(value any) bool) Schema { return schema.Rule{Pred: pred} }

// Dict, DictEntry, and DictKey describe a Dict schema's keys and value
// schemas (spec section 4.6, "Dict schema").
type (
	Dict      = schema.Dict
	DictEntry = schema.DictEntry
	DictKey   = schema.DictKey
)

// Key builds a required exact-match DictKey.
func Key(value any) DictKey { return schema.Key(value) }

// OptionalKey builds an exact-match DictKey whose key may be absent.
func OptionalKey(value any) DictKey { return schema.OptionalKey(value) }

// WildcardKey builds a DictKey matching any otherwise-unclaimed message key
// of the given atomic kind.
func WildcardKey(kind schema.Atomic) DictKey { return schema.WildcardKey(kind) }

// TupleSchema and ListSchema describe Tuple and List schemas.
type (
	TupleSchema = schema.Tuple
	ListSchema  = schema.List
)

// Type binds a Schema, validated once at construction, to the
// Validate/Transform/Encode/Decode/Untransform surface (spec section 6).
type Type = schema.Type

// Message pairs a value with the Type it is meant to satisfy.
type Message = schema.Message

// Bind validates s and returns a *Type for it.
func Bind(s Schema) (*Type, error) { return schema.Bind(s) }

// Sentinel error kinds (spec section 7, "Error Handling Design").
var (
	ErrUnencodable            = errs.ErrUnencodable
	ErrDepthExceeded          = errs.ErrDepthExceeded
	ErrTruncated              = errs.ErrTruncated
	ErrInvalidTag             = errs.ErrInvalidTag
	ErrInvalidBody            = errs.ErrInvalidBody
	ErrCompressionUnavailable = errs.ErrCompressionUnavailable
	ErrInvalidMessage         = errs.ErrInvalidMessage
	ErrInvalidSchema          = errs.ErrInvalidSchema
)
