package dom

import (
	"sort"

	g "maragu.dev/gomponents"
)

// Gomponents lowers an expanded tree into gomponents nodes so templates can
// compose with handwritten gomponents views. The attribute policy matches
// Render: true becomes a bare attribute, false and nil are omitted, a style
// map becomes a CSS declaration list.
func Gomponents(n *Node) (g.Node, error) {
	expanded, err := n.Expand()
	if err != nil {
		return nil, err
	}
	return lowerGomponents(expanded)
}

func lowerGomponents(n *Node) (g.Node, error) {
	children, err := lowerGomponentsChildren(n)
	if err != nil {
		return nil, err
	}

	if n.IsFragment() {
		if len(n.Attrs) != 0 {
			return nil, ErrFragmentAttrs
		}
		return g.Group(children), nil
	}

	args := make([]g.Node, 0, len(n.Attrs)+len(children))
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := n.Attrs[k].(type) {
		case bool:
			if v {
				args = append(args, g.Attr(k))
			}
		case nil:
		default:
			if k == "style" {
				css, err := styleString(v)
				if err != nil {
					return nil, err
				}
				args = append(args, g.Attr(k, css))
				continue
			}
			args = append(args, g.Attr(k, stringify(v)))
		}
	}
	args = append(args, children...)

	return g.El(n.Tag, args...), nil
}

func lowerGomponentsChildren(n *Node) ([]g.Node, error) {
	var out []g.Node
	for _, c := range n.Children {
		switch v := c.(type) {
		case string:
			if v != "" {
				out = append(out, g.Text(v))
			}
		case *Node:
			child, err := lowerGomponents(v)
			if err != nil {
				return nil, err
			}
			out = append(out, child)
		default:
			out = append(out, g.Textf("%v", v))
		}
	}
	return out, nil
}
