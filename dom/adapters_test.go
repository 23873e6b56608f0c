package dom

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGomponents(t *testing.T) {
	t.Run("element with attributes and text", func(t *testing.T) {
		n := &Node{
			Tag:      "a",
			Attrs:    map[string]any{"href": "/home", "hidden": false},
			Children: []any{"Home"},
		}
		gn, err := Gomponents(n)
		require.NoError(t, err)

		var b strings.Builder
		require.NoError(t, gn.Render(&b))
		assert.Equal(t, `<a href="/home">Home</a>`, b.String())
	})

	t.Run("fragment becomes a group", func(t *testing.T) {
		n := &Node{Children: []any{
			&Node{Tag: "i", Children: []any{"1"}},
			&Node{Tag: "b", Children: []any{"2"}},
		}}
		gn, err := Gomponents(n)
		require.NoError(t, err)

		var b strings.Builder
		require.NoError(t, gn.Render(&b))
		assert.Equal(t, "<i>1</i><b>2</b>", b.String())
	})

	t.Run("components expand before lowering", func(t *testing.T) {
		badge := Component(func(attrs map[string]any, children ...any) (*Node, error) {
			return &Node{Tag: "span", Attrs: map[string]any{"class": "badge"}, Children: children}, nil
		})
		n := &Node{Fn: badge, Children: []any{"new"}}
		gn, err := Gomponents(n)
		require.NoError(t, err)

		var b strings.Builder
		require.NoError(t, gn.Render(&b))
		assert.Equal(t, `<span class="badge">new</span>`, b.String())
	})

	t.Run("style map lowers to a declaration list", func(t *testing.T) {
		n := &Node{Tag: "div", Attrs: map[string]any{
			"style": map[string]any{"color": "red"},
		}}
		gn, err := Gomponents(n)
		require.NoError(t, err)

		var b strings.Builder
		require.NoError(t, gn.Render(&b))
		assert.Equal(t, `<div style="color:red"></div>`, b.String())
	})
}

func TestTempl(t *testing.T) {
	n := MustBuild(tmpl(
		lit("<p>Hello "), val("templ"), lit("</p>"),
	))

	var b strings.Builder
	require.NoError(t, Templ(n).Render(context.Background(), &b))
	assert.Equal(t, "<p>Hello templ</p>", b.String())
}
