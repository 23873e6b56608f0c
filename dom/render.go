package dom

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	tagerrors "github.com/conneroisu/tagdom/internal/errors"
	"golang.org/x/net/html"
)

// Render serializes the tree as HTML, expanding component tags first.
// Attribute policy: a true value renders as a bare attribute, false and nil
// are omitted, a "style" attribute holding a string-keyed map renders as a
// CSS declaration list, and everything else renders escaped as key="value".
// Attributes are written in sorted key order. Text children are
// entity-escaped; nested nodes recurse.
func (n *Node) Render(w io.Writer) error {
	expanded, err := n.Expand()
	if err != nil {
		return err
	}
	return expanded.write(w)
}

// RenderString renders the tree to a string.
func (n *Node) RenderString() (string, error) {
	var b strings.Builder
	if err := n.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (n *Node) write(w io.Writer) error {
	if n.IsFragment() {
		if len(n.Attrs) != 0 {
			return tagerrors.NewStructure(
				tagerrors.CodeFragmentAttrs,
				"untagged node cannot have attributes",
			)
		}
		return n.writeChildren(w)
	}

	if _, err := io.WriteString(w, "<"+n.Tag); err != nil {
		return err
	}
	if err := n.writeAttrs(w); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if err := n.writeChildren(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</"+n.Tag+">")
	return err
}

func (n *Node) writeAttrs(w io.Writer) error {
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := n.Attrs[k].(type) {
		case bool:
			if !v {
				continue
			}
			if _, err := io.WriteString(w, " "+k); err != nil {
				return err
			}
		case nil:
			continue
		default:
			var text string
			if k == "style" {
				css, err := styleString(v)
				if err != nil {
					return err
				}
				text = css
			} else {
				text = stringify(v)
			}
			if _, err := io.WriteString(w, " "+k+`="`+html.EscapeString(text)+`"`); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *Node) writeChildren(w io.Writer) error {
	for _, c := range n.Children {
		switch v := c.(type) {
		case string:
			if v == "" {
				continue
			}
			if _, err := io.WriteString(w, html.EscapeString(v)); err != nil {
				return err
			}
		case *Node:
			if err := v.write(w); err != nil {
				return err
			}
		default:
			if _, err := io.WriteString(w, html.EscapeString(stringify(v))); err != nil {
				return err
			}
		}
	}
	return nil
}

// styleString renders a style attribute value. Strings pass through, maps
// with string keys become semicolon-joined declarations in sorted order, and
// anything else is rejected.
func styleString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return "", tagerrors.NewValidation(
			tagerrors.CodeAttrExpansion,
			"style attribute requires a string-keyed map",
		).WithContext("got", fmt.Sprintf("%T", v))
	}

	decls := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		decls = append(decls, iter.Key().String()+":"+stringify(iter.Value().Interface()))
	}
	sort.Strings(decls)
	return strings.Join(decls, "; "), nil
}
