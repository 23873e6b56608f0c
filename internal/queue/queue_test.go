package queue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tagerrors "github.com/conneroisu/tagdom/internal/errors"
)

func TestQueueOrdering(t *testing.T) {
	q := New("a", 2, true)
	q.Enqueue("last")

	require.Equal(t, 4, q.Len())

	for _, want := range []any{"a", 2, true, "last"} {
		got, err := q.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.NoError(t, q.Drained())
}

func TestDequeueEmpty(t *testing.T) {
	q := New()
	_, err := q.Dequeue()
	require.Error(t, err)

	var tagErr *tagerrors.TagError
	require.True(t, errors.As(err, &tagErr))
	assert.Equal(t, tagerrors.TypeAccounting, tagErr.Type)
	assert.Equal(t, tagerrors.CodeQueueExhausted, tagErr.Code)
}

func TestDetach(t *testing.T) {
	t.Run("splits in order", func(t *testing.T) {
		q := New(1, 2, 3, 4)
		event, err := q.Detach(2)
		require.NoError(t, err)

		assert.Equal(t, 2, event.Len())
		assert.Equal(t, 2, q.Len())

		v, err := event.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, 1, v)
		v, err = q.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("zero is valid", func(t *testing.T) {
		q := New("x")
		event, err := q.Detach(0)
		require.NoError(t, err)
		assert.NoError(t, event.Drained())
		assert.Equal(t, 1, q.Len())
	})

	t.Run("overclaim fails", func(t *testing.T) {
		q := New("only")
		_, err := q.Detach(2)
		require.Error(t, err)

		var tagErr *tagerrors.TagError
		require.True(t, errors.As(err, &tagErr))
		assert.Equal(t, tagerrors.CodeQueueExhausted, tagErr.Code)
	})
}

func TestDrained(t *testing.T) {
	q := New("leftover")
	err := q.Drained()
	require.Error(t, err)

	var tagErr *tagerrors.TagError
	require.True(t, errors.As(err, &tagErr))
	assert.Equal(t, tagerrors.CodeQueueResidue, tagErr.Code)
	assert.Equal(t, 1, tagErr.Context["remaining"])
}
