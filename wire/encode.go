package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/mummydata/mummy/errs"
	"github.com/mummydata/mummy/internal/huge"
	"github.com/mummydata/mummy/internal/pool"
)

// Encode serializes value to its wire representation. It is the only
// function in this package that may attempt the compression envelope (spec
// section 4.2); nested container elements are always written uncompressed.
func Encode(value any, opts ...EncodeOption) ([]byte, error) {
	var cfg encodeConfig
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	tag, body, err := encodeTagged(value, 0, &cfg)
	if err != nil {
		return nil, err
	}

	return wrap(tag, body), nil
}

// encodeInline renders v as a standalone tag+body byte sequence, the form
// every container element is stored in (spec section 4.1, "a container's
// body is a sequence of complete tagged values").
func encodeInline(v any, depth int, cfg *encodeConfig) ([]byte, error) {
	tag, body, err := encodeTagged(v, depth, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+len(body))
	out = append(out, byte(tag))
	out = append(out, body...)
	return out, nil
}

// encodeTagged picks the narrowest tag that can represent v and renders its
// body, without the leading tag byte.
func encodeTagged(v any, depth int, cfg *encodeConfig) (Tag, []byte, error) {
	switch val := v.(type) {
	case nil:
		return TagNull, nil, nil

	case bool:
		if val {
			return TagBool, []byte{1}, nil
		}
		return TagBool, []byte{0}, nil

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return encodeInt(toBigInt(val))

	case *big.Int:
		if val == nil {
			return 0, nil, fmt.Errorf("%w: nil *big.Int", errs.ErrUnencodable)
		}
		return encodeInt(val)

	case float32:
		return TagFloat64, encodeFloat64(float64(val)), nil

	case float64:
		return TagFloat64, encodeFloat64(val), nil

	case []byte:
		tag, header := lenHeader(len(val), TagBytesS, TagBytesM, TagBytesL)
		return tag, append(header, val...), nil

	case string:
		if !utf8.ValidString(val) {
			return 0, nil, fmt.Errorf("%w: string is not valid UTF-8", errs.ErrUnencodable)
		}
		tag, header := lenHeader(len(val), TagUTF8S, TagUTF8M, TagUTF8L)
		return tag, append(header, val...), nil

	case List:
		return encodeSeq(TagListS, TagListM, TagListL, []any(val), depth, cfg)

	case Tuple:
		return encodeSeq(TagTupleS, TagTupleM, TagTupleL, []any(val), depth, cfg)

	case Set:
		return encodeSeq(TagSetS, TagSetM, TagSetL, []any(val), depth, cfg)

	case Hash:
		return encodeHash(val, depth, cfg)

	case Date:
		return TagDate, encodeDate(val), nil

	case Time:
		return TagTime, encodeTime(val), nil

	case DateTime:
		return TagDateTime, encodeDateTime(val), nil

	case Duration:
		return TagDuration, encodeDuration(val), nil

	case Decimal:
		return encodeDecimal(val)

	default:
		if cfg.defaultFn != nil {
			replacement, err := cfg.defaultFn(v)
			if err != nil {
				return 0, nil, err
			}
			// The callback runs at most once per value: a replacement that
			// is itself unencodable is an error, not another callback call.
			switch replacement.(type) {
			case nil, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
				*big.Int, float32, float64, []byte, string, List, Tuple, Set, Hash,
				Date, Time, DateTime, Duration, Decimal:
				return encodeTagged(replacement, depth, cfg)
			}
			return 0, nil, fmt.Errorf("%w: default returned %T", errs.ErrUnencodable, replacement)
		}
		return 0, nil, fmt.Errorf("%w: %T", errs.ErrUnencodable, v)
	}
}

// lenHeader picks the narrowest of the three width classes for a length n
// and returns the tag plus its big-endian length prefix (spec section 4.1,
// "narrowest-fit encoding").
func lenHeader(n int, shortTag, mediumTag, longTag Tag) (Tag, []byte) {
	switch {
	case n <= 0xFF:
		return shortTag, []byte{byte(n)}
	case n <= 0xFFFF:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(n))
		return mediumTag, b
	default:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(n))
		return longTag, b
	}
}

// encodeSeq renders a List/Tuple/Set body using a pooled scratch buffer to
// amortize the allocations recursive element encoding would otherwise incur
// on every call (adapted from the teacher's internal/pool usage in its
// columnar encoders, here applied to the codec's recursive container body).
func encodeSeq(shortTag, mediumTag, longTag Tag, elems []any, depth int, cfg *encodeConfig) (Tag, []byte, error) {
	if depth+1 > MaxDepth {
		return 0, nil, errs.ErrDepthExceeded
	}

	bb := pool.Get()
	defer pool.Put(bb)

	for _, e := range elems {
		encoded, err := encodeInline(e, depth+1, cfg)
		if err != nil {
			return 0, nil, err
		}
		bb.Write(encoded)
	}

	tag, header := lenHeader(len(elems), shortTag, mediumTag, longTag)
	body := make([]byte, 0, len(header)+bb.Len())
	body = append(body, header...)
	body = append(body, bb.Bytes()...)
	return tag, body, nil
}

func encodeHash(h Hash, depth int, cfg *encodeConfig) (Tag, []byte, error) {
	if depth+1 > MaxDepth {
		return 0, nil, errs.ErrDepthExceeded
	}

	bb := pool.Get()
	defer pool.Put(bb)

	for _, entry := range h {
		k, err := encodeInline(entry.Key, depth+1, cfg)
		if err != nil {
			return 0, nil, err
		}
		v, err := encodeInline(entry.Value, depth+1, cfg)
		if err != nil {
			return 0, nil, err
		}
		bb.Write(k)
		bb.Write(v)
	}

	tag, header := lenHeader(len(h), TagHashS, TagHashM, TagHashL)
	body := make([]byte, 0, len(header)+bb.Len())
	body = append(body, header...)
	body = append(body, bb.Bytes()...)
	return tag, body, nil
}

// toBigInt normalizes any of the built-in Go integer kinds to a *big.Int so
// encodeInt has a single place to pick the narrowest tag.
func toBigInt(v any) *big.Int {
	switch n := v.(type) {
	case int:
		return big.NewInt(int64(n))
	case int8:
		return big.NewInt(int64(n))
	case int16:
		return big.NewInt(int64(n))
	case int32:
		return big.NewInt(int64(n))
	case int64:
		return big.NewInt(n)
	case uint:
		return new(big.Int).SetUint64(uint64(n))
	case uint8:
		return big.NewInt(int64(n))
	case uint16:
		return big.NewInt(int64(n))
	case uint32:
		return big.NewInt(int64(n))
	case uint64:
		return new(big.Int).SetUint64(n)
	default:
		return big.NewInt(0)
	}
}

func encodeInt(bi *big.Int) (Tag, []byte, error) {
	if !bi.IsInt64() {
		mag := huge.Encode(bi)
		body := make([]byte, 4, 4+len(mag))
		binary.BigEndian.PutUint32(body, uint32(len(mag)))
		return TagHuge, append(body, mag...), nil
	}

	n := bi.Int64()
	switch {
	case n >= math.MinInt8 && n <= math.MaxInt8:
		return TagInt8, []byte{byte(int8(n))}, nil
	case n >= math.MinInt16 && n <= math.MaxInt16:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(int16(n)))
		return TagInt16, b, nil
	case n >= math.MinInt32 && n <= math.MaxInt32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(int32(n)))
		return TagInt32, b, nil
	default:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(n))
		return TagInt64, b, nil
	}
}

func encodeFloat64(f float64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(f))
	return b
}

func encodeDate(d Date) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint16(b[0:2], uint16(d.Year))
	b[2] = d.Month
	b[3] = d.Day
	return b
}

func encodeTime(t Time) []byte {
	b := make([]byte, 6)
	b[0] = t.Hour
	b[1] = t.Minute
	b[2] = t.Second
	b[3] = byte(t.Microsecond >> 16)
	b[4] = byte(t.Microsecond >> 8)
	b[5] = byte(t.Microsecond)
	return b
}

func encodeDateTime(dt DateTime) []byte {
	out := make([]byte, 0, 10)
	out = append(out, encodeDate(dt.Date)...)
	out = append(out, encodeTime(dt.Time)...)
	return out
}

func encodeDuration(du Duration) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint32(b[0:4], uint32(du.Days))
	binary.BigEndian.PutUint32(b[4:8], uint32(du.Seconds))
	binary.BigEndian.PutUint32(b[8:12], uint32(du.Microseconds))
	return b
}
