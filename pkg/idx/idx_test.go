package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewParses(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(" " + id.String() + "\n")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejects(t *testing.T) {
	for _, s := range []string{"", "nope", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_000)
	prev := idx.NewAt(at)
	for range 100 {
		next := idx.NewAt(at)
		require.Equal(t, 1, idx.Compare(next, prev))
		prev = next
	}
}

func TestTime(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	require.WithinDuration(t, at, idx.NewAt(at).Time(), time.Millisecond)
	require.True(t, idx.Zero.Time().IsZero())
}

func TestFromHeader(t *testing.T) {
	id := idx.New()
	require.Equal(t, id, idx.FromHeader(id.String()))

	generated := idx.FromHeader("client-supplied-junk")
	require.NotEqual(t, idx.ID("client-supplied-junk"), generated)
	_, err := idx.Parse(generated.String())
	require.NoError(t, err)
}
