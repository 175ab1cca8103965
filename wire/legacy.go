package wire

import (
	"fmt"

	"github.com/mummydata/mummy/errs"
)

// DecodeLegacy parses data using only the original format's tag set
// (0x00-0x13: no medium-width containers, no date/time/decimal/special-num).
// It is never selected automatically; callers that know they are reading an
// old payload must opt in explicitly (spec section 9, "two format
// generations").
func DecodeLegacy(data []byte) (any, error) {
	tag, body, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	value, n, err := decodeLegacyBody(tag, body, 0)
	if err != nil {
		return nil, err
	}
	if n != len(body) {
		return nil, fmt.Errorf("%w: %d trailing byte(s)", errs.ErrInvalidBody, len(body)-n)
	}
	return value, nil
}

func decodeLegacyInline(data []byte, depth int) (any, int, error) {
	if len(data) < 1 {
		return nil, 0, fmt.Errorf("%w: expected a tag byte", errs.ErrTruncated)
	}

	raw := data[0]
	if raw&compressionFlag != 0 {
		return nil, 0, fmt.Errorf("%w: compression envelope may not nest", errs.ErrInvalidTag)
	}

	value, n, err := decodeLegacyBody(Tag(raw), data[1:], depth)
	if err != nil {
		return nil, 0, err
	}
	return value, n + 1, nil
}

func decodeLegacyBody(tag Tag, body []byte, depth int) (any, int, error) {
	switch tag {
	case TagNull, TagBool, TagInt8, TagInt16, TagInt32, TagInt64, TagHuge, TagFloat64,
		TagBytesS, TagBytesL, TagUTF8S, TagUTF8L:
		return decodeBody(tag, body, depth)

	case TagListL, TagTupleL, TagSetL, TagHashL, TagListS, TagTupleS, TagSetS, TagHashS:
		return decodeLegacySeqOrHash(tag, body, depth)

	default:
		return nil, 0, fmt.Errorf("%w: tag 0x%02x is not part of the legacy format", errs.ErrInvalidTag, byte(tag))
	}
}

func decodeLegacySeqOrHash(tag Tag, body []byte, depth int) (any, int, error) {
	if depth+1 > MaxDepth {
		return nil, 0, errs.ErrDepthExceeded
	}

	width := 4
	if tag == TagListS || tag == TagTupleS || tag == TagSetS || tag == TagHashS {
		width = 1
	}

	count, headerLen, err := readCount(body, width)
	if err != nil {
		return nil, 0, err
	}
	pos := headerLen

	switch tag {
	case TagHashL, TagHashS:
		index := make(map[string]int, count)
		out := make(Hash, 0, count)
		for i := 0; i < count; i++ {
			key, kn, err := decodeLegacyInline(body[pos:], depth+1)
			if err != nil {
				return nil, 0, err
			}
			pos += kn
			value, vn, err := decodeLegacyInline(body[pos:], depth+1)
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

	default:
		items := make([]any, 0, count)
		for i := 0; i < count; i++ {
			item, n, err := decodeLegacyInline(body[pos:], depth+1)
			if err != nil {
				return nil, 0, err
			}
			items = append(items, item)
			pos += n
		}

		switch tag {
		case TagListL, TagListS:
			return List(items), pos, nil
		case TagTupleL, TagTupleS:
			return Tuple(items), pos, nil
		default: // TagSetL, TagSetS
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
			return out, pos, nil
		}
	}
}
