// Package codec makes interpolations survive transit through a tokenizer
// that only understands literal text. Literal text is escaped by doubling
// every occurrence of the escape character, which guarantees the reserved
// placeholder token can never arise from escaped user content.
package codec

import (
	"strings"

	"golang.org/x/text/transform"
)

const (
	// Placeholder is the reserved token fed to the tokenizer in place of one
	// interpolation. It begins with a letter so markup tag-name grammars
	// accept it, and it contains a single escape character, so no output of
	// Encode can ever contain it.
	Placeholder = "x$x"

	// escape is the character doubled by Encode.
	escape = '$'
)

// Encode escapes literal text by doubling every escape character.
func Encode(s string) string {
	return strings.ReplaceAll(s, string(escape), string(escape)+string(escape))
}

// Decode is the inverse of Encode.
func Decode(s string) string {
	return strings.ReplaceAll(s, string(escape)+string(escape), string(escape))
}

// NewEncoder returns the encoding transform as a streaming Transformer,
// suitable for transform.NewWriter around a tokenizer feed.
func NewEncoder() transform.Transformer { return encoder{} }

// NewDecoder returns the decoding transform as a streaming Transformer.
func NewDecoder() transform.Transformer { return decoder{} }

type encoder struct {
	transform.NopResetter
}

func (encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		need := 1
		if c == escape {
			need = 2
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		if c == escape {
			dst[nDst] = escape
			nDst++
		}
		nSrc++
	}
	return nDst, nSrc, nil
}

type decoder struct {
	transform.NopResetter
}

func (decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c == escape && nSrc+1 == len(src) && !atEOF {
			// Cannot tell yet whether this starts a doubled escape.
			return nDst, nSrc, transform.ErrShortSrc
		}
		if nDst == len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		if c == escape && nSrc+1 < len(src) && src[nSrc+1] == escape {
			nSrc += 2
			continue
		}
		nSrc++
	}
	return nDst, nSrc, nil
}
