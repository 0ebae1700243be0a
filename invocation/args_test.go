package invocation

import (
	"testing"

	"github.com/indigo-web/fastsend/errors"
	"github.com/stretchr/testify/require"
)

func TestArgs(t *testing.T) {
	t.Run("every valid slot", func(t *testing.T) {
		var args Args
		for i := 0; i < MaxArgs; i++ {
			require.NoError(t, args.Set(i, i*10))
			require.Equal(t, i+1, args.Len())
		}

		for i := 0; i < MaxArgs; i++ {
			value, err := args.Get(i)
			require.NoError(t, err)
			require.Equal(t, i*10, value)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		var args Args
		require.ErrorIs(t, args.Set(MaxArgs, "x"), errors.ErrOutOfRange)
		require.ErrorIs(t, args.Set(-1, "x"), errors.ErrOutOfRange)
		_, err := args.Get(MaxArgs)
		require.ErrorIs(t, err, errors.ErrOutOfRange)
		require.Zero(t, args.Len())
	})

	t.Run("sparse set extends count", func(t *testing.T) {
		var args Args
		require.NoError(t, args.Set(3, "d"))
		require.Equal(t, []any{nil, nil, nil, "d"}, args.Slice())
		require.NoError(t, args.Set(1, "b"))
		require.Equal(t, 4, args.Len())
	})

	t.Run("count", func(t *testing.T) {
		var args Args
		require.NoError(t, args.Set(2, "c"))
		require.NoError(t, args.SetCount(1))
		require.Len(t, args.Slice(), 1)
		require.ErrorIs(t, args.SetCount(MaxArgs+1), errors.ErrOutOfRange)
		require.ErrorIs(t, args.SetCount(-1), errors.ErrOutOfRange)
		require.NoError(t, args.SetCount(MaxArgs))
	})

	t.Run("fill", func(t *testing.T) {
		var args Args
		require.NoError(t, args.Set(5, "stale"))
		require.NoError(t, args.Fill([]any{1, 2}))
		require.Equal(t, []any{1, 2}, args.Slice())
		require.ErrorIs(t, args.Fill(make([]any, MaxArgs+1)), errors.ErrOutOfRange)
		require.Equal(t, 2, args.Len())
	})

	t.Run("clear", func(t *testing.T) {
		var args Args
		require.NoError(t, args.Fill([]any{1, 2, 3}))
		args.Clear()
		require.Zero(t, args.Len())
		value, err := args.Get(0)
		require.NoError(t, err)
		require.Nil(t, value)
	})
}
