package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/mummydata/mummy/errs"
	"github.com/mummydata/mummy/internal/huge"
)

// Decode parses a single wire-encoded value from data, returning an error if
// there are leftover bytes afterward (spec section 4.3, "Decode consumes the
// entire input or fails").
func Decode(data []byte) (any, error) {
	tag, body, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	value, n, err := decodeBody(tag, body, 0)
	if err != nil {
		return nil, err
	}
	if n != len(body) {
		return nil, fmt.Errorf("%w: %d trailing byte(s)", errs.ErrInvalidBody, len(body)-n)
	}
	return value, nil
}

// decodeInline reads one complete tag+body value starting at data[0] and
// returns the value along with the number of bytes it consumed, including
// the tag byte itself. It is used for every container element, never at the
// top level (compression only wraps the outermost value).
func decodeInline(data []byte, depth int) (any, int, error) {
	if len(data) < 1 {
		return nil, 0, fmt.Errorf("%w: expected a tag byte", errs.ErrTruncated)
	}

	raw := data[0]
	if raw&compressionFlag != 0 {
		return nil, 0, fmt.Errorf("%w: compression envelope may not nest", errs.ErrInvalidTag)
	}

	value, n, err := decodeBody(Tag(raw), data[1:], depth)
	if err != nil {
		return nil, 0, err
	}
	return value, n + 1, nil
}

// decodeBody parses the body following tag, returning the value and the
// number of body bytes consumed (not counting the tag byte).
func decodeBody(tag Tag, body []byte, depth int) (any, int, error) {
	switch tag {
	case TagNull:
		return nil, 0, nil

	case TagBool:
		if err := need(body, 1); err != nil {
			return nil, 0, err
		}
		return body[0] != 0, 1, nil

	case TagInt8:
		if err := need(body, 1); err != nil {
			return nil, 0, err
		}
		return int64(int8(body[0])), 1, nil

	case TagInt16:
		if err := need(body, 2); err != nil {
			return nil, 0, err
		}
		return int64(int16(binary.BigEndian.Uint16(body[:2]))), 2, nil

	case TagInt32:
		if err := need(body, 4); err != nil {
			return nil, 0, err
		}
		return int64(int32(binary.BigEndian.Uint32(body[:4]))), 4, nil

	case TagInt64:
		if err := need(body, 8); err != nil {
			return nil, 0, err
		}
		return int64(binary.BigEndian.Uint64(body[:8])), 8, nil

	case TagHuge:
		return decodeHuge(body)

	case TagFloat64:
		if err := need(body, 8); err != nil {
			return nil, 0, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(body[:8])), 8, nil

	case TagBytesS, TagBytesM, TagBytesL:
		return decodeLenPrefixed(tag, body, widthOf(tag, bytesWidths), func(b []byte) (any, error) {
			out := make([]byte, len(b))
			copy(out, b)
			return out, nil
		})

	case TagUTF8S, TagUTF8M, TagUTF8L:
		return decodeLenPrefixed(tag, body, widthOf(tag, utf8Widths), func(b []byte) (any, error) {
			if !utf8.Valid(b) {
				return nil, fmt.Errorf("%w: invalid UTF-8", errs.ErrInvalidBody)
			}
			return string(b), nil
		})

	case TagListS, TagListM, TagListL:
		return decodeSeq(tag, body, depth, listWidths, func(items []any) any { return List(items) })

	case TagTupleS, TagTupleM, TagTupleL:
		return decodeSeq(tag, body, depth, tupleWidths, func(items []any) any { return Tuple(items) })

	case TagSetS, TagSetM, TagSetL:
		return decodeSet(tag, body, depth)

	case TagHashS, TagHashM, TagHashL:
		return decodeHash(tag, body, depth)

	case TagDate:
		return decodeDate(body)

	case TagTime:
		return decodeTime(body)

	case TagDateTime:
		return decodeDateTime(body)

	case TagDuration:
		return decodeDuration(body)

	case TagDecimal:
		return decodeDecimalBody(body)

	case TagSpecialNum:
		return decodeSpecialNumBody(body)

	default:
		return nil, 0, fmt.Errorf("%w: unrecognized tag 0x%02x", errs.ErrInvalidTag, byte(tag))
	}
}

func need(body []byte, n int) error {
	if len(body) < n {
		return fmt.Errorf("%w: need %d byte(s), have %d", errs.ErrTruncated, n, len(body))
	}
	return nil
}

func decodeHuge(body []byte) (any, int, error) {
	if err := need(body, 4); err != nil {
		return nil, 0, err
	}
	magLen := int(binary.BigEndian.Uint32(body[:4]))
	if err := need(body[4:], magLen); err != nil {
		return nil, 0, err
	}
	bi := huge.Decode(body[4 : 4+magLen])
	return bi, 4 + magLen, nil
}

type widthClass struct {
	short, medium, long Tag
}

var (
	bytesWidths = widthClass{TagBytesS, TagBytesM, TagBytesL}
	utf8Widths  = widthClass{TagUTF8S, TagUTF8M, TagUTF8L}
	listWidths  = widthClass{TagListS, TagListM, TagListL}
	tupleWidths = widthClass{TagTupleS, TagTupleM, TagTupleL}
	setWidths   = widthClass{TagSetS, TagSetM, TagSetL}
	hashWidths  = widthClass{TagHashS, TagHashM, TagHashL}
)

func widthOf(tag Tag, wc widthClass) int {
	switch tag {
	case wc.short:
		return 1
	case wc.medium:
		return 2
	default:
		return 4
	}
}

func readCount(body []byte, width int) (int, int, error) {
	if err := need(body, width); err != nil {
		return 0, 0, err
	}
	switch width {
	case 1:
		return int(body[0]), 1, nil
	case 2:
		return int(binary.BigEndian.Uint16(body[:2])), 2, nil
	default:
		return int(binary.BigEndian.Uint32(body[:4])), 4, nil
	}
}

func decodeLenPrefixed(tag Tag, body []byte, width int, parse func([]byte) (any, error)) (any, int, error) {
	n, headerLen, err := readCount(body, width)
	if err != nil {
		return nil, 0, err
	}
	if err := need(body[headerLen:], n); err != nil {
		return nil, 0, err
	}
	value, err := parse(body[headerLen : headerLen+n])
	if err != nil {
		return nil, 0, err
	}
	return value, headerLen + n, nil
}

func decodeSeq(tag Tag, body []byte, depth int, wc widthClass, wrap func([]any) any) (any, int, error) {
	if depth+1 > MaxDepth {
		return nil, 0, errs.ErrDepthExceeded
	}

	count, width, err := readCount(body, widthOf(tag, wc))
	if err != nil {
		return nil, 0, err
	}

	pos := width
	items := make([]any, 0, count)
	for i := 0; i < count; i++ {
		item, n, err := decodeInline(body[pos:], depth+1)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
		pos += n
	}

	return wrap(items), pos, nil
}

// decodeSet deduplicates elements by their re-encoded wire bytes: Go has no
// way to put an arbitrary (possibly non-comparable) decoded value into a map
// key directly, and two distinct Go values that encode identically (e.g. a
// []byte and an equivalent string literal can never collide, but two equal
// []byte slices would) must still count once (spec section 3, "Set is an
// unordered collection of unique elements").
func decodeSet(tag Tag, body []byte, depth int) (any, int, error) {
	raw, n, err := decodeSeq(tag, body, depth, setWidths, func(items []any) any { return items })
	if err != nil {
		return nil, 0, err
	}

	items := raw.([]any)
	seen := make(map[string]struct{}, len(items))
	out := make(Set, 0, len(items))
	for _, item := range items {
		key, err := encodeInline(item, 0, &encodeConfig{})
		if err != nil {
			return nil, 0, fmt.Errorf("%w: set element has no canonical form", errs.ErrInvalidBody)
		}
		if _, dup := seen[string(key)]; dup {
			continue
		}
		seen[string(key)] = struct{}{}
		out = append(out, item)
	}

	return out, n, nil
}

// decodeHash parses a flat key/value stream into a Hash, applying last-wins
// semantics when the same key (by re-encoded wire bytes) appears more than
// once (spec section 3, "Hash").
func decodeHash(tag Tag, body []byte, depth int) (any, int, error) {
	if depth+1 > MaxDepth {
		return nil, 0, errs.ErrDepthExceeded
	}

	count, width, err := readCount(body, widthOf(tag, hashWidths))
	if err != nil {
		return nil, 0, err
	}

	pos := width
	index := make(map[string]int, count)
	out := make(Hash, 0, count)
	for i := 0; i < count; i++ {
		key, kn, err := decodeInline(body[pos:], depth+1)
		if err != nil {
			return nil, 0, err
		}
		pos += kn

		value, vn, err := decodeInline(body[pos:], depth+1)
		if err != nil {
			return nil, 0, err
		}
		pos += vn

		keyBytes, err := encodeInline(key, 0, &encodeConfig{})
		if err != nil {
			return nil, 0, fmt.Errorf("%w: hash key has no canonical form", errs.ErrInvalidBody)
		}

		if idx, dup := index[string(keyBytes)]; dup {
			out[idx].Value = value
			continue
		}
		index[string(keyBytes)] = len(out)
		out = append(out, HashEntry{Key: key, Value: value})
	}

	return out, pos, nil
}

func decodeDate(body []byte) (any, int, error) {
	if err := need(body, 4); err != nil {
		return nil, 0, err
	}
	return Date{
		Year:  int16(binary.BigEndian.Uint16(body[:2])),
		Month: body[2],
		Day:   body[3],
	}, 4, nil
}

func decodeTime(body []byte) (any, int, error) {
	if err := need(body, 6); err != nil {
		return nil, 0, err
	}
	micros := uint32(body[3])<<16 | uint32(body[4])<<8 | uint32(body[5])
	return Time{
		Hour:        body[0],
		Minute:      body[1],
		Second:      body[2],
		Microsecond: micros,
	}, 6, nil
}

func decodeDateTime(body []byte) (any, int, error) {
	if err := need(body, 10); err != nil {
		return nil, 0, err
	}
	date, _, err := decodeDate(body[:4])
	if err != nil {
		return nil, 0, err
	}
	t, _, err := decodeTime(body[4:10])
	if err != nil {
		return nil, 0, err
	}
	return DateTime{Date: date.(Date), Time: t.(Time)}, 10, nil
}

func decodeDuration(body []byte) (any, int, error) {
	if err := need(body, 12); err != nil {
		return nil, 0, err
	}
	return Duration{
		Days:         int32(binary.BigEndian.Uint32(body[0:4])),
		Seconds:      int32(binary.BigEndian.Uint32(body[4:8])),
		Microseconds: int32(binary.BigEndian.Uint32(body[8:12])),
	}, 12, nil
}
