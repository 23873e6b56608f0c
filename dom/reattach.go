package dom

import (
	"strings"

	"github.com/conneroisu/tagdom/internal/codec"
	"github.com/conneroisu/tagdom/internal/queue"
)

// interleave splits raw text on every occurrence of the reserved placeholder
// and zips the spans with queued values: k placeholder occurrences produce
// k+1 decoded spans with the first k spans each followed by one dequeued
// value. The trailing span is never paired with a value. Text that is
// exactly one placeholder yields the bare queued value (full substitution).
func interleave(raw string, q *queue.Queue) ([]any, error) {
	if raw == codec.Placeholder {
		v, err := q.Dequeue()
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}

	spans := strings.Split(raw, codec.Placeholder)
	out := make([]any, 0, 2*len(spans)-1)
	for i, span := range spans {
		out = append(out, codec.Decode(span))
		if i == len(spans)-1 {
			break
		}
		v, err := q.Dequeue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// join resolves raw text to a single value: full substitution when the text
// is exactly one placeholder (value type preserved), otherwise the
// interleaved spans and values concatenated into one string (partial
// substitution, values stringified).
func join(raw string, q *queue.Queue) (any, error) {
	items, err := interleave(raw, q)
	if err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return items[0], nil
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString(stringify(item))
	}
	return b.String(), nil
}
