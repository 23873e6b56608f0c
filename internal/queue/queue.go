// Package queue holds interpolated values awaiting reattachment to tokenizer
// events. Ordering is strict: values are consumed in exactly the order their
// placeholders occur in the markup, and each event must account for every
// value it claimed.
package queue

import (
	tagerrors "github.com/conneroisu/tagdom/internal/errors"
)

// Queue is an ordered buffer of pending interpolated values. The zero value
// is ready to use. A Queue is exclusively owned by the single pass driving
// the tokenizer and is not safe for concurrent use.
type Queue struct {
	values []any
}

// New returns a queue preloaded with the given values in order.
func New(values ...any) *Queue {
	q := &Queue{}
	q.values = append(q.values, values...)
	return q
}

// Enqueue appends a value.
func (q *Queue) Enqueue(v any) {
	q.values = append(q.values, v)
}

// Dequeue removes and returns the front value. Dequeueing from an empty
// queue is a placeholder/value count mismatch and always fails.
func (q *Queue) Dequeue() (any, error) {
	if len(q.values) == 0 {
		return nil, tagerrors.NewAccounting(
			tagerrors.CodeQueueExhausted,
			"no queued value for placeholder",
		)
	}
	v := q.values[0]
	q.values = q.values[1:]
	return v, nil
}

// Detach removes the first n values into a new event-scoped queue. Asking
// for more values than are buffered is a count mismatch.
func (q *Queue) Detach(n int) (*Queue, error) {
	if n > len(q.values) {
		return nil, tagerrors.NewAccounting(
			tagerrors.CodeQueueExhausted,
			"event claims more placeholders than queued values",
		).WithContext("claimed", n).WithContext("queued", len(q.values))
	}
	out := New(q.values[:n]...)
	q.values = q.values[n:]
	return out, nil
}

// Len reports the number of buffered values.
func (q *Queue) Len() int { return len(q.values) }

// Drained returns an accounting error unless the queue is empty. Builders
// call this after every tokenizer event that claimed values.
func (q *Queue) Drained() error {
	if len(q.values) != 0 {
		return tagerrors.NewAccounting(
			tagerrors.CodeQueueResidue,
			"queued values left unconsumed after event",
		).WithContext("remaining", len(q.values))
	}
	return nil
}
