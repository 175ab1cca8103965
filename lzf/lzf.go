// Package lzf implements the LZF compression algorithm: a fast LZ77 variant
// with an 8KB sliding window, used by the wire format's optional compression
// envelope (spec section 4.1). The stream format (literal runs and
// short/long backreferences) matches the classic liblzf encoding.
package lzf

import (
	"fmt"
)

const (
	hashLog     = 14
	hashSize    = 1 << hashLog
	maxLiteral  = 32
	maxOff      = 1 << 13 // 8192
	maxShortRun = 8       // short backref covers run lengths 3..8
	maxLongRun  = 264     // long backref covers run lengths 9..264
)

// Compress returns the LZF-compressed form of input. It never fails: data
// that doesn't compress well simply yields a larger output (all literals).
func Compress(input []byte) []byte {
	inLen := len(input)
	if inLen == 0 {
		return nil
	}

	maxOut := inLen + inLen/32 + 256
	output := make([]byte, 0, maxOut)

	var htab [hashSize]int32
	for i := range htab {
		htab[i] = -1
	}

	pos := 0
	litStart := 0

	for pos < inLen {
		if pos+3 > inLen {
			break
		}

		h := hash3(input[pos], input[pos+1], input[pos+2])
		ref := int(htab[h])
		htab[h] = int32(pos)

		offset := pos - ref
		if ref >= 0 && offset > 0 && offset <= maxOff &&
			input[ref] == input[pos] &&
			input[ref+1] == input[pos+1] &&
			input[ref+2] == input[pos+2] {
			if litStart < pos {
				output = appendLiteralRun(output, input[litStart:pos])
			}

			maxLen := inLen - pos
			if maxLen > maxLongRun {
				maxLen = maxLongRun
			}
			matchLen := 3
			for matchLen < maxLen && input[ref+matchLen] == input[pos+matchLen] {
				matchLen++
			}

			output = appendBackref(output, offset, matchLen)

			for i := 1; i < matchLen-2; i++ {
				p := pos + i
				if p+2 < inLen {
					htab[hash3(input[p], input[p+1], input[p+2])] = int32(p)
				}
			}

			pos += matchLen
			litStart = pos
		} else {
			pos++
		}
	}

	if litStart < inLen {
		output = appendLiteralRun(output, input[litStart:])
	}

	return output
}

// CompressBounded behaves like Compress but returns (nil, false) if the
// compressed result would not be strictly smaller than maxOutLen bytes. This
// is used by the wire encoder, which only wants the compressed form when it
// actually shrinks the payload (spec section 4.2, "Compression").
func CompressBounded(input []byte, maxOutLen int) ([]byte, bool) {
	out := Compress(input)
	if len(out) == 0 || len(out) >= maxOutLen {
		return nil, false
	}
	return out, true
}

func hash3(a, b, c byte) uint32 {
	v := uint32(a)<<16 | uint32(b)<<8 | uint32(c)
	v ^= v >> 16
	v *= 0x45d9f3b
	v ^= v >> 16
	return v & (hashSize - 1)
}

func appendLiteralRun(output, literal []byte) []byte {
	for len(literal) > 0 {
		n := len(literal)
		if n > maxLiteral {
			n = maxLiteral
		}
		output = append(output, byte(n-1))
		output = append(output, literal[:n]...)
		literal = literal[n:]
	}
	return output
}

func appendBackref(output []byte, offset, length int) []byte {
	offset-- // offset is encoded 1-based

	if length <= maxShortRun {
		ctrl := byte((length-2)<<5) | byte(offset>>8)
		output = append(output, ctrl, byte(offset&0xff))
	} else {
		ctrl := byte(0xE0) | byte(offset>>8)
		output = append(output, ctrl, byte(length-9), byte(offset&0xff))
	}
	return output
}

// Decompress expands LZF-compressed data to exactly outLen bytes, returning
// an error if the stream is truncated, references data before the start of
// the output, or doesn't produce exactly outLen bytes.
func Decompress(input []byte, outLen int) ([]byte, error) {
	output := make([]byte, 0, outLen)

	pos := 0
	inLen := len(input)

	for pos < inLen {
		ctrl := input[pos]
		pos++

		if ctrl&0xE0 == 0 {
			runLen := int(ctrl) + 1
			if pos+runLen > inLen {
				return nil, fmt.Errorf("lzf: truncated literal run")
			}
			output = append(output, input[pos:pos+runLen]...)
			pos += runLen
			continue
		}

		var runLen int
		if ctrl&0xE0 == 0xE0 {
			if pos >= inLen {
				return nil, fmt.Errorf("lzf: truncated long backreference")
			}
			runLen = int(input[pos]) + 9
			pos++
		} else {
			runLen = int((ctrl>>5)&0x07) + 2
		}

		if pos >= inLen {
			return nil, fmt.Errorf("lzf: truncated backreference")
		}
		offsetHigh := int(ctrl & 0x1F)
		offsetLow := int(input[pos])
		pos++
		offset := (offsetHigh<<8 | offsetLow) + 1

		if offset > len(output) {
			return nil, fmt.Errorf("lzf: invalid backreference offset %d (have %d bytes)", offset, len(output))
		}

		src := len(output) - offset
		for i := 0; i < runLen; i++ {
			output = append(output, output[src+i])
		}
	}

	if len(output) != outLen {
		return nil, fmt.Errorf("lzf: decompressed length %d, want %d", len(output), outLen)
	}

	return output, nil
}
