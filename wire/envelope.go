package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/mummydata/mummy/errs"
	"github.com/mummydata/mummy/lzf"
)

// compressThreshold is the body length LZF compression is attempted above:
// only bodies longer than this many bytes are tried (spec section 4.2).
const compressThreshold = 5

// wrap produces the final on-wire bytes for a (tag, body) pair, attempting
// the compression envelope when it is worthwhile. Compression is never
// attempted by the recursive container encoders (spec section 4.2, "The
// outer encode call is the only site that attempts compression"); only the
// top-level Encode call reaches this function.
//
// The compressed stream represents the untagged body plus a leading byte
// equal to the tag with the compression bit cleared (spec section 4.1); the
// stored length prefix is the body length alone, so the decompressed stream
// is exactly that length plus one byte long.
func wrap(tag Tag, body []byte) []byte {
	if HasCompression && len(body) > compressThreshold {
		toCompress := make([]byte, 0, 1+len(body))
		toCompress = append(toCompress, byte(tag))
		toCompress = append(toCompress, body...)

		if compressed, ok := lzf.CompressBounded(toCompress, len(body)-compressThreshold); ok {
			out := make([]byte, 0, 1+4+len(compressed))
			out = append(out, byte(tag)|compressionFlag)
			var lenBuf [4]byte
			binary.BigEndian.PutUint32(lenBuf[:], uint32(int32(len(body))))
			out = append(out, lenBuf[:]...)
			out = append(out, compressed...)
			return out
		}
	}

	out := make([]byte, 0, 1+len(body))
	out = append(out, byte(tag))
	out = append(out, body...)
	return out
}

// unwrap detects and removes the compression envelope from data, returning
// the cleared tag and the (decompressed, if necessary) body bytes ready for
// dispatch. It never nests: a cleared tag whose own high bit is set is
// rejected (spec section 4.3, "Compression may not nest").
func unwrap(data []byte) (Tag, []byte, error) {
	if len(data) == 0 {
		return 0, nil, fmt.Errorf("%w: empty input", errs.ErrTruncated)
	}

	first := data[0]
	if first&compressionFlag == 0 {
		return Tag(first), data[1:], nil
	}

	if !HasCompression {
		return 0, nil, errs.ErrCompressionUnavailable
	}

	if len(data) < 5 {
		return 0, nil, fmt.Errorf("%w: truncated compression envelope", errs.ErrTruncated)
	}

	tag := Tag(first &^ compressionFlag)
	length := int32(binary.BigEndian.Uint32(data[1:5]))
	if length < 0 {
		return 0, nil, fmt.Errorf("%w: negative uncompressed length", errs.ErrInvalidBody)
	}

	decompressed, err := lzf.Decompress(data[5:], int(length)+1)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errs.ErrInvalidBody, err)
	}

	// decompressed is [clearedTag, body...]; the leading byte must match the
	// tag already recovered from the envelope header (this also rejects a
	// nested compression flag, since tag itself never carries one).
	if len(decompressed) < 1 || Tag(decompressed[0]) != tag {
		return 0, nil, fmt.Errorf("%w: compressed tag mismatch", errs.ErrInvalidBody)
	}

	return tag, decompressed[1:], nil
}
