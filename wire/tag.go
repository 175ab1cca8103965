package wire

// Tag identifies the wire type of an encoded value. It is the single byte
// that prefixes every encoded value; its top bit is reserved as the
// compression flag (see envelope.go) and is never part of a Tag constant
// below.
type Tag uint8

// The type-code table, fixed for interoperability (spec section 4.1). Do not
// renumber; on-wire readers depend on these exact values.
const (
	TagNull     Tag = 0x00
	TagBool     Tag = 0x01
	TagInt8     Tag = 0x02
	TagInt16    Tag = 0x03
	TagInt32    Tag = 0x04
	TagInt64    Tag = 0x05
	TagHuge     Tag = 0x06
	TagFloat64  Tag = 0x07
	TagBytesS   Tag = 0x08 // short: u8 length
	TagBytesL   Tag = 0x09 // long: u32 length
	TagUTF8S    Tag = 0x0A // short: u8 byte-length
	TagUTF8L    Tag = 0x0B // long: u32 byte-length
	TagListL    Tag = 0x0C // long: u32 count
	TagTupleL   Tag = 0x0D
	TagSetL     Tag = 0x0E
	TagHashL    Tag = 0x0F

	TagListS  Tag = 0x10 // short: u8 count
	TagTupleS Tag = 0x11
	TagSetS   Tag = 0x12
	TagHashS  Tag = 0x13

	TagListM  Tag = 0x14 // medium: u16 count
	TagTupleM Tag = 0x15
	TagSetM   Tag = 0x16
	TagHashM  Tag = 0x17
	TagBytesM Tag = 0x18
	TagUTF8M  Tag = 0x19

	TagDate      Tag = 0x1A
	TagTime      Tag = 0x1B
	TagDateTime  Tag = 0x1C
	TagDuration  Tag = 0x1D
	TagDecimal   Tag = 0x1E
	TagSpecialNum Tag = 0x1F
)

// compressionFlag is the top bit of the on-wire tag byte. When set, the
// value is wrapped in the compression envelope (see envelope.go).
const compressionFlag = 0x80

// specialInfinity and specialNaN classify the single-byte body of a
// TagSpecialNum value (spec section 4.5). The low bit means "negative" for
// infinity and "signaling" for NaN.
const (
	specialInfinity byte = 0x10
	specialNaN      byte = 0x20
	specialNegOrSig byte = 0x01
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagBool:
		return "bool"
	case TagInt8:
		return "int8"
	case TagInt16:
		return "int16"
	case TagInt32:
		return "int32"
	case TagInt64:
		return "int64"
	case TagHuge:
		return "huge"
	case TagFloat64:
		return "float64"
	case TagBytesS, TagBytesM, TagBytesL:
		return "bytes"
	case TagUTF8S, TagUTF8M, TagUTF8L:
		return "utf8"
	case TagListS, TagListM, TagListL:
		return "list"
	case TagTupleS, TagTupleM, TagTupleL:
		return "tuple"
	case TagSetS, TagSetM, TagSetL:
		return "set"
	case TagHashS, TagHashM, TagHashL:
		return "hash"
	case TagDate:
		return "date"
	case TagTime:
		return "time"
	case TagDateTime:
		return "datetime"
	case TagDuration:
		return "duration"
	case TagDecimal:
		return "decimal"
	case TagSpecialNum:
		return "special-num"
	default:
		return "unknown"
	}
}

// MaxDepth is the maximum recursion depth permitted for any encoded value,
// on both encode and decode (spec section 3 invariants).
const MaxDepth = 256

// HasCompression reports whether this build can produce and consume the LZF
// compression envelope. The lzf package is pure Go with no build tag, so it
// is always available; the constant exists so a future stripped build has a
// single place to flip (spec section 6, "build-time capability flag").
const HasCompression = true
