package tagdom

import (
	"strings"

	tagerrors "github.com/conneroisu/tagdom/internal/errors"
)

// Part is one position in a template's ordered sequence. Exactly two
// implementations exist, Literal and Interpolation; the interface is sealed
// so consumers can switch over both variants exhaustively.
type Part interface {
	part()
}

// Literal is an immutable run of source text between interpolations. Raw
// carries the text with no escape processing applied; Decoded applies
// backslash-escape processing on demand. A Literal produced by New is never
// empty.
type Literal struct {
	Raw string
}

func (Literal) part() {}

// Decoded returns the literal text with backslash escapes processed. Unknown
// escape sequences are kept verbatim; truncated numeric escapes are an error.
func (l Literal) Decoded() (string, error) {
	return decodeEscapes(l.Raw)
}

// Interpolation carries one evaluated embedded expression. Value holds the
// eagerly evaluated result; evaluation is never deferred. Expr is the
// verbatim source text of the expression, kept for diagnostics and naming.
// Conv and Spec are the optional conversion and format spec; Spec is always
// a fully resolved flat string (a spec that itself contained interpolations
// must be flattened with Template.Render before construction).
type Interpolation struct {
	Value any
	Expr  string
	Conv  Conversion
	Spec  string
}

func (Interpolation) part() {}

// Resolve applies the interpolation's conversion and format spec, if either
// is present, and returns the resulting string. With neither present the
// value passes through untouched so the consumer can apply its own policy
// (full versus partial substitution).
func (in Interpolation) Resolve() (any, error) {
	if in.Conv == NoConversion && in.Spec == "" {
		return in.Value, nil
	}
	return Format(in.Value, in.Conv, in.Spec)
}

// Template is an immutable ordered sequence of literal segments and
// interpolations plus the original source text. A Template is owned
// exclusively by whichever processing function receives it; nothing here is
// shared or mutated after construction.
type Template struct {
	source string
	parts  []Part
}

// New constructs a Template from its decomposed parts. Zero-length literal
// segments are dropped so that adjacent interpolations are never separated
// by an empty segment.
func New(source string, parts ...Part) *Template {
	kept := make([]Part, 0, len(parts))
	for _, p := range parts {
		if lit, ok := p.(Literal); ok && lit.Raw == "" {
			continue
		}
		kept = append(kept, p)
	}
	return &Template{source: source, parts: kept}
}

// Source returns the original source text of the template literal.
func (t *Template) Source() string { return t.source }

// Parts returns a copy of the template's ordered part sequence.
func (t *Template) Parts() []Part {
	out := make([]Part, len(t.parts))
	copy(out, t.parts)
	return out
}

// FieldRenderer renders one interpolated value given its format spec. It is
// the hook Render uses for every interpolation position.
type FieldRenderer func(value any, spec string) (string, error)

// RenderOption configures Template.Render.
type RenderOption func(*renderConfig)

type renderConfig struct {
	renderField FieldRenderer
}

// WithFieldRenderer overrides how interpolated values are rendered. The
// default applies the interpolation's conversion and format spec.
func WithFieldRenderer(fn FieldRenderer) RenderOption {
	return func(c *renderConfig) { c.renderField = fn }
}

// Render flattens the template to a single string: decoded literal segments
// concatenated with each interpolation rendered through the field renderer.
// Rendering is eager and happens exactly once per call.
//
// Render is also the flattening path for format specs that themselves
// contained interpolations: render the nested template first and store only
// the resulting string.
func (t *Template) Render(opts ...RenderOption) (string, error) {
	cfg := renderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	for _, p := range t.parts {
		switch part := p.(type) {
		case Literal:
			s, err := part.Decoded()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case Interpolation:
			var (
				s   string
				err error
			)
			if cfg.renderField != nil {
				s, err = cfg.renderField(part.Value, part.Spec)
			} else {
				s, err = Format(part.Value, part.Conv, part.Spec)
			}
			if err != nil {
				return "", tagerrors.NewValidation(
					tagerrors.CodeBadFormatSpec,
					"rendering interpolation "+part.Expr,
				).WithCause(err)
			}
			b.WriteString(s)
		}
	}
	return b.String(), nil
}
