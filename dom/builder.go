package dom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/conneroisu/tagdom"
	"github.com/conneroisu/tagdom/internal/codec"
	tagerrors "github.com/conneroisu/tagdom/internal/errors"
	"github.com/conneroisu/tagdom/internal/logging"
	"github.com/conneroisu/tagdom/internal/queue"
	"golang.org/x/net/html"
	"golang.org/x/text/transform"
)

// Option configures one construction pass.
type Option func(*builder)

// WithLogger sets the logger used for debug tracing of tokenizer events.
// The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(b *builder) { b.log = l.WithComponent("dom_builder") }
}

// WithPlaceholderGuard enables a runtime check that no literal segment
// decodes to the reserved placeholder token. Off by default: the codec makes
// such a collision impossible for encoded text, and the decoded-substring
// case is a documented precondition rather than an enforced one.
func WithPlaceholderGuard() Option {
	return func(b *builder) { b.guard = true }
}

// builder is the stack machine for one construction pass. It is single-use
// and exclusively owned by the Build call that created it; nothing else may
// read or mutate its queue or stack.
type builder struct {
	root   *Node
	stack  []*Node
	values *queue.Queue
	buf    bytes.Buffer
	log    logging.Logger
	guard  bool
}

// Build drives one full construction pass over the template and returns the
// finished tree: template parts are encoded and fed to the tokenizer, and
// each tokenizer event reattaches the values its placeholders claimed.
//
// If the implicit root ends up with exactly one node child, that node is the
// result; otherwise the root itself is returned as an untagged fragment
// holding the top-level siblings.
func Build(t *tagdom.Template, opts ...Option) (*Node, error) {
	if t == nil {
		return nil, tagerrors.NewValidation(
			tagerrors.CodeInvalidTemplate, "nil template")
	}
	root := &Node{}
	b := &builder{
		root:   root,
		stack:  []*Node{root},
		values: queue.New(),
		log:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.feed(t); err != nil {
		return nil, err
	}
	return b.run()
}

// MustBuild is Build for static templates known to be well formed; it panics
// on error.
func MustBuild(t *tagdom.Template, opts ...Option) *Node {
	n, err := Build(t, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

// feed encodes the template into the tokenizer buffer: literal segments are
// decoded then escape-doubled, and each interpolation becomes exactly one
// placeholder token with its resolved value queued for reattachment.
func (b *builder) feed(t *tagdom.Template) error {
	for _, part := range t.Parts() {
		switch p := part.(type) {
		case tagdom.Literal:
			text, err := p.Decoded()
			if err != nil {
				return err
			}
			if b.guard && strings.Contains(text, codec.Placeholder) {
				return tagerrors.NewSyntax(
					tagerrors.CodePlaceholderLit,
					"literal text contains the reserved placeholder",
				).WithContext("literal", text)
			}
			encoded, _, err := transform.String(codec.NewEncoder(), text)
			if err != nil {
				return err
			}
			b.buf.WriteString(encoded)
		case tagdom.Interpolation:
			v, err := p.Resolve()
			if err != nil {
				return err
			}
			b.values.Enqueue(v)
			b.buf.WriteString(codec.Placeholder)
		}
	}
	return nil
}

// run drains the tokenizer to EOF and finalizes the tree.
func (b *builder) run() (*Node, error) {
	ctx := context.Background()
	z := html.NewTokenizer(&b.buf)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return b.finalize()
		case html.StartTagToken:
			tok := z.Token()
			b.log.Debug(ctx, "start tag", "name", tok.Data, "attrs", len(tok.Attr))
			if err := b.startTag(tok); err != nil {
				return nil, err
			}
		case html.SelfClosingTagToken:
			tok := z.Token()
			b.log.Debug(ctx, "self-closing tag", "name", tok.Data)
			if err := b.startTag(tok); err != nil {
				return nil, err
			}
			// Inherently matched; pop without verification.
			b.stack = b.stack[:len(b.stack)-1]
		case html.TextToken:
			tok := z.Token()
			if err := b.text(tok.Data); err != nil {
				return nil, err
			}
		case html.EndTagToken:
			tok := z.Token()
			b.log.Debug(ctx, "end tag", "name", tok.Data)
			if err := b.endTag(tok); err != nil {
				return nil, err
			}
		case html.CommentToken, html.DoctypeToken:
			// Carry no structure; skipped.
		}
	}
}

// startTag resolves the tag identity and attributes of a start-tag event and
// pushes the new node as a child of the current top.
func (b *builder) startTag(tok html.Token) error {
	count := strings.Count(tok.Data, codec.Placeholder)
	for _, a := range tok.Attr {
		count += strings.Count(a.Key, codec.Placeholder)
		count += strings.Count(a.Val, codec.Placeholder)
	}
	eq, err := b.values.Detach(count)
	if err != nil {
		return err
	}

	node := &Node{Attrs: make(map[string]any, len(tok.Attr))}

	identity, err := join(tok.Data, eq)
	if err != nil {
		return err
	}
	switch v := identity.(type) {
	case string:
		node.Tag = v
	case Component:
		node.Fn = v
	case func(map[string]any, ...any) (*Node, error):
		node.Fn = Component(v)
	default:
		return tagerrors.NewValidation(
			tagerrors.CodeTagIdentity,
			"tag position requires a string or component",
		).WithContext("got", fmt.Sprintf("%T", identity))
	}

	for _, a := range tok.Attr {
		switch {
		case a.Key == codec.Placeholder && a.Val == "":
			// Attribute-map expansion: a lone placeholder with no value
			// merges a whole mapping into the node's attributes.
			v, err := eq.Dequeue()
			if err != nil {
				return err
			}
			merged, err := attrMap(v)
			if err != nil {
				return err
			}
			for k, mv := range merged {
				node.Attrs[k] = mv
			}
		case strings.Contains(a.Key, codec.Placeholder):
			return tagerrors.NewSyntax(
				tagerrors.CodeAttrNameInterp,
				"cannot interpolate attribute names",
			).WithContext("key", a.Key)
		case a.Val == codec.Placeholder:
			// Full substitution: the value keeps its type.
			v, err := eq.Dequeue()
			if err != nil {
				return err
			}
			node.Attrs[codec.Decode(a.Key)] = v
		default:
			v, err := join(a.Val, eq)
			if err != nil {
				return err
			}
			node.Attrs[codec.Decode(a.Key)] = v
		}
	}

	if err := eq.Drained(); err != nil {
		return err
	}

	top := b.stack[len(b.stack)-1]
	top.Children = append(top.Children, node)
	b.stack = append(b.stack, node)
	return nil
}

// text reattaches values into a text event and appends the results to the
// current top node: empty strings are dropped, slices and arrays are spliced
// in as multiple children, and everything else is appended opaque.
func (b *builder) text(data string) error {
	count := strings.Count(data, codec.Placeholder)
	eq, err := b.values.Detach(count)
	if err != nil {
		return err
	}

	items, err := interleave(data, eq)
	if err != nil {
		return err
	}
	if err := eq.Drained(); err != nil {
		return err
	}

	top := b.stack[len(b.stack)-1]
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if v != "" {
				top.Children = append(top.Children, v)
			}
		default:
			rv := reflect.ValueOf(item)
			if item != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
				for i := 0; i < rv.Len(); i++ {
					top.Children = append(top.Children, rv.Index(i).Interface())
				}
				continue
			}
			top.Children = append(top.Children, item)
		}
	}
	return nil
}

// endTag pops the stack and verifies the resolved end-tag identity against
// the popped node, unless the identity is the wildcard shorthand.
func (b *builder) endTag(tok html.Token) error {
	if len(b.stack) <= 1 {
		return tagerrors.NewStructure(
			tagerrors.CodeUnexpectedEnd,
			"end tag with no matching start tag",
		).WithContext("name", tok.Data)
	}
	node := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	count := strings.Count(tok.Data, codec.Placeholder)
	eq, err := b.values.Detach(count)
	if err != nil {
		return err
	}

	var identity any
	if tok.Data == codec.Placeholder {
		identity, err = eq.Dequeue()
	} else {
		identity, err = join(tok.Data, eq)
	}
	if err != nil {
		return err
	}
	if err := eq.Drained(); err != nil {
		return err
	}

	if _, ok := identity.(wildcard); ok {
		return nil
	}

	switch v := identity.(type) {
	case string:
		if node.Fn == nil && v == node.Tag {
			return nil
		}
	case Component:
		if node.Fn != nil && samePointer(v, node.Fn) {
			return nil
		}
	case func(map[string]any, ...any) (*Node, error):
		if node.Fn != nil && samePointer(Component(v), node.Fn) {
			return nil
		}
	}
	return tagerrors.NewStructure(
		tagerrors.CodeMismatchedTag,
		"end tag does not match open node",
	).WithContext("open", node.Tag).WithContext("end", stringify(identity))
}

// finalize closes the pass: an empty root is an error, a sole node child is
// the result, and multiple top-level siblings keep the root as an implicit
// fragment wrapper.
func (b *builder) finalize() (*Node, error) {
	if err := b.values.Drained(); err != nil {
		return nil, err
	}
	if len(b.root.Children) == 0 {
		return nil, tagerrors.NewStructure(
			tagerrors.CodeEmptyResult,
			"template produced no content",
		)
	}
	if len(b.root.Children) == 1 {
		if n, ok := b.root.Children[0].(*Node); ok {
			return n, nil
		}
	}
	return b.root, nil
}

// attrMap coerces an expansion value into a string-keyed attribute map.
func attrMap(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, mv := range m {
			out[k] = mv
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if v != nil && rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	}
	return nil, tagerrors.NewValidation(
		tagerrors.CodeAttrExpansion,
		"attribute expansion requires a string-keyed map",
	).WithContext("got", fmt.Sprintf("%T", v))
}

// samePointer reports whether two components are the same function.
func samePointer(a, b Component) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
