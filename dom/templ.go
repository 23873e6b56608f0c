package dom

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Templ wraps the tree as a templ.Component so built trees can be composed
// into templ layouts and rendered through the usual templ pipeline.
func Templ(n *Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return n.Render(w)
	})
}
