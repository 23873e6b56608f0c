package tagdom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("parts and source are preserved", func(t *testing.T) {
		tmpl := New("Hello {name}!",
			Literal{Raw: "Hello "},
			Interpolation{Value: "World", Expr: "name"},
			Literal{Raw: "!"},
		)

		assert.Equal(t, "Hello {name}!", tmpl.Source())
		parts := tmpl.Parts()
		require.Len(t, parts, 3)
		assert.Equal(t, Literal{Raw: "Hello "}, parts[0])
		assert.Equal(t, "World", parts[1].(Interpolation).Value)
	})

	t.Run("empty literals are dropped", func(t *testing.T) {
		tmpl := New("{a}{b}",
			Literal{Raw: ""},
			Interpolation{Value: 1, Expr: "a"},
			Literal{Raw: ""},
			Interpolation{Value: 2, Expr: "b"},
			Literal{Raw: ""},
		)

		parts := tmpl.Parts()
		require.Len(t, parts, 2)
		for _, p := range parts {
			_, ok := p.(Interpolation)
			assert.True(t, ok)
		}
	})

	t.Run("parts are copied on access", func(t *testing.T) {
		tmpl := New("x", Literal{Raw: "x"})
		parts := tmpl.Parts()
		parts[0] = Literal{Raw: "mutated"}
		assert.Equal(t, Literal{Raw: "x"}, tmpl.Parts()[0])
	})
}

func TestResolve(t *testing.T) {
	t.Run("no conversion passes value through", func(t *testing.T) {
		in := Interpolation{Value: []int{1, 2}, Expr: "xs"}
		v, err := in.Resolve()
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, v)
	})

	t.Run("conversion stringifies", func(t *testing.T) {
		in := Interpolation{Value: 42, Expr: "n", Conv: Str}
		v, err := in.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "42", v)
	})

	t.Run("format spec stringifies", func(t *testing.T) {
		in := Interpolation{Value: 7, Expr: "n", Spec: "03d"}
		v, err := in.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "007", v)
	})
}

func TestRender(t *testing.T) {
	t.Run("flattens literals and interpolations", func(t *testing.T) {
		tmpl := New("input={bar}, output={foo(bar)}",
			Literal{Raw: "input="},
			Interpolation{Value: 10, Expr: "bar"},
			Literal{Raw: ", output="},
			Interpolation{Value: 30, Expr: "foo(bar)"},
		)

		out, err := tmpl.Render()
		require.NoError(t, err)
		assert.Equal(t, "input=10, output=30", out)
	})

	t.Run("applies conversions and specs", func(t *testing.T) {
		tmpl := New("{detail!r} {n:04d}",
			Interpolation{Value: "some detail", Expr: "detail", Conv: Repr},
			Literal{Raw: " "},
			Interpolation{Value: 42, Expr: "n", Spec: "04d"},
		)

		out, err := tmpl.Render()
		require.NoError(t, err)
		assert.Equal(t, `"some detail" 0042`, out)
	})

	t.Run("literal escapes are decoded", func(t *testing.T) {
		tmpl := New(`a\tb`, Literal{Raw: `a\tb`})
		out, err := tmpl.Render()
		require.NoError(t, err)
		assert.Equal(t, "a\tb", out)
	})

	t.Run("custom field renderer", func(t *testing.T) {
		tmpl := New("Substitute {names} at runtime",
			Literal{Raw: "Substitute "},
			Interpolation{Value: []string{"Alice", "Bob"}, Expr: "names"},
			Literal{Raw: " at runtime"},
		)

		out, err := tmpl.Render(WithFieldRenderer(func(value any, spec string) (string, error) {
			return strings.ToUpper(stringifyForTest(value)), nil
		}))
		require.NoError(t, err)
		assert.Equal(t, "Substitute [ALICE BOB] at runtime", out)
	})

	t.Run("flattening a nested format spec", func(t *testing.T) {
		// A format spec that itself contained interpolations is rendered
		// eagerly; only the flat string survives.
		specTmpl := New("0{width}d",
			Literal{Raw: "0"},
			Interpolation{Value: 4, Expr: "width"},
			Literal{Raw: "d"},
		)
		spec, err := specTmpl.Render()
		require.NoError(t, err)
		require.Equal(t, "04d", spec)

		in := Interpolation{Value: 7, Expr: "n", Spec: spec}
		v, err := in.Resolve()
		require.NoError(t, err)
		assert.Equal(t, "0007", v)
	})
}

func stringifyForTest(v any) string {
	out, err := Format(v, NoConversion, "")
	if err != nil {
		panic(err)
	}
	return out
}
