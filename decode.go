package tagdom

import (
	"fmt"
	"strconv"
	"strings"

	tagerrors "github.com/conneroisu/tagdom/internal/errors"
)

// decodeEscapes applies backslash-escape processing to raw literal text,
// mirroring the decoding a language front end applies to a cooked string.
// Simple escapes (\n, \t, ...) and numeric escapes (\xNN, \uNNNN, \UNNNNNNNN,
// octal) are processed; an unrecognized escape is kept verbatim rather than
// rejected, and a truncated numeric escape is an error.
func decodeEscapes(raw string) (string, error) {
	if !strings.ContainsRune(raw, '\\') {
		return raw, nil
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); {
		if raw[i] != '\\' || i+1 == len(raw) {
			b.WriteByte(raw[i])
			i++
			continue
		}

		switch c := raw[i+1]; c {
		case 'a':
			b.WriteByte('\a')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'v':
			b.WriteByte('\v')
			i += 2
		case '\\', '\'', '"':
			b.WriteByte(c)
			i += 2
		case 'x':
			r, n, err := hexEscape(raw[i:], 2)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += n
		case 'u':
			r, n, err := hexEscape(raw[i:], 4)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += n
		case 'U':
			r, n, err := hexEscape(raw[i:], 8)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += n
		case '0', '1', '2', '3', '4', '5', '6', '7':
			r, n := octalEscape(raw[i:])
			b.WriteRune(r)
			i += n
		default:
			// Unknown escape: keep both bytes.
			b.WriteByte('\\')
			b.WriteByte(c)
			i += 2
		}
	}
	return b.String(), nil
}

// hexEscape parses an escape of the form \<kind><digits hex digits> at the
// start of s and returns the rune and the number of bytes consumed.
func hexEscape(s string, digits int) (rune, int, error) {
	// s begins with `\` followed by the kind byte.
	if len(s) < 2+digits {
		return 0, 0, tagerrors.NewValidation(
			tagerrors.CodeBadEscape,
			fmt.Sprintf("truncated escape %q", s),
		)
	}
	v, err := strconv.ParseUint(s[2:2+digits], 16, 32)
	if err != nil {
		return 0, 0, tagerrors.NewValidation(
			tagerrors.CodeBadEscape,
			fmt.Sprintf("invalid escape %q", s[:2+digits]),
		).WithCause(err)
	}
	return rune(v), 2 + digits, nil
}

// octalEscape parses `\` followed by one to three octal digits.
func octalEscape(s string) (rune, int) {
	v := 0
	n := 1
	for ; n < len(s) && n <= 3; n++ {
		c := s[n]
		if c < '0' || c > '7' {
			break
		}
		v = v*8 + int(c-'0')
	}
	return rune(v), n
}
