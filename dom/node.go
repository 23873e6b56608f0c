package dom

import (
	"fmt"

	tagerrors "github.com/conneroisu/tagdom/internal/errors"
)

// Component is a function usable in tag position. It receives the start
// tag's attributes and children and produces a subtree. Components should
// not have visible side effects; the builder may call them during expansion
// in any order.
type Component func(attrs map[string]any, children ...any) (*Node, error)

// Node is one element of a structural tree: a tag name (or a component
// function standing in for one), an attribute map, and an ordered child
// sequence. Children are either strings, nested *Node values, or opaque
// interpolated values. A Node with neither Tag nor Fn is an untagged
// fragment wrapper; fragments never carry attributes.
//
// A Node is created when its start-tag event is observed, gains children
// while it is on top of the builder's stack, and is final once its end tag
// has been matched.
type Node struct {
	Tag      string
	Fn       Component
	Attrs    map[string]any
	Children []any
}

// wildcard is the type of the Wildcard sentinel.
type wildcard struct{}

func (wildcard) String() string { return "..." }

// Wildcard is the end-tag shorthand value: an end tag that resolves to
// Wildcard closes whatever node is on top of the stack without verifying
// its name.
var Wildcard = wildcard{}

// IsFragment reports whether the node is an untagged wrapper.
func (n *Node) IsFragment() bool { return n.Tag == "" && n.Fn == nil }

// Expand resolves component-function tags recursively, producing a tree of
// plain named nodes. Nodes without components are copied with their children
// expanded; interpolated values are passed through untouched.
func (n *Node) Expand() (*Node, error) {
	if n.Fn != nil {
		out, err := n.Fn(n.Attrs, n.Children...)
		if err != nil {
			return nil, tagerrors.NewValidation(
				tagerrors.CodeTagIdentity,
				"component expansion failed",
			).WithCause(err)
		}
		return out.Expand()
	}

	children := make([]any, len(n.Children))
	for i, c := range n.Children {
		child, ok := c.(*Node)
		if !ok {
			children[i] = c
			continue
		}
		expanded, err := child.Expand()
		if err != nil {
			return nil, err
		}
		children[i] = expanded
	}
	return &Node{Tag: n.Tag, Attrs: n.Attrs, Children: children}, nil
}

// stringify renders a reattached value the way partial substitution joins
// it into surrounding text.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
