package tagdom

import (
	"fmt"
	"strconv"
	"strings"

	tagerrors "github.com/conneroisu/tagdom/internal/errors"
)

// Conversion selects an optional pre-format conversion for an interpolated
// value.
type Conversion int

const (
	// NoConversion leaves the value untouched.
	NoConversion Conversion = iota
	// Repr renders the value in Go literal syntax.
	Repr
	// Str renders the value with its default string form.
	Str
	// ASCII renders the value as a quoted string with all non-ASCII runes
	// escaped.
	ASCII
)

// String returns the conversion's single-letter source form.
func (c Conversion) String() string {
	switch c {
	case NoConversion:
		return ""
	case Repr:
		return "r"
	case Str:
		return "s"
	case ASCII:
		return "a"
	default:
		return "invalid"
	}
}

// Format applies a conversion and a format spec to a value and returns the
// resulting string. The spec is the body of an fmt verb without the leading
// percent sign, for example "05d" or "8.3f"; an empty spec means the default
// %v form. A spec fmt cannot apply to the value is an error.
func Format(value any, conv Conversion, spec string) (string, error) {
	switch conv {
	case NoConversion:
	case Repr:
		value = fmt.Sprintf("%#v", value)
	case Str:
		value = fmt.Sprint(value)
	case ASCII:
		value = strconv.QuoteToASCII(fmt.Sprint(value))
	default:
		return "", tagerrors.NewValidation(
			tagerrors.CodeBadConversion,
			fmt.Sprintf("bad conversion: %d", int(conv)),
		)
	}

	if spec == "" {
		return fmt.Sprint(value), nil
	}

	out := fmt.Sprintf("%"+spec, value)
	// fmt reports verb/operand mismatches inline rather than by error return.
	if strings.Contains(out, "%!") {
		return "", tagerrors.NewValidation(
			tagerrors.CodeBadFormatSpec,
			fmt.Sprintf("format spec %q cannot be applied to %T", spec, value),
		)
	}
	return out, nil
}
