package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryDeduperSeenOnce(t *testing.T) {
	d := newMemoryDeduper(time.Minute)
	ctx := context.Background()

	seen, err := d.Seen(ctx, "T1")
	require.NoError(t, err)
	require.False(t, seen)

	seen, err = d.Seen(ctx, "T1")
	require.NoError(t, err)
	require.True(t, seen)

	seen, err = d.Seen(ctx, "T2")
	require.NoError(t, err)
	require.False(t, seen)
}

func TestMemoryDeduperExpires(t *testing.T) {
	d := newMemoryDeduper(10 * time.Millisecond)
	ctx := context.Background()

	_, err := d.Seen(ctx, "T1")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	seen, err := d.Seen(ctx, "T1")
	require.NoError(t, err)
	require.False(t, seen)
}

func TestNewDeduperFallsBackWithoutAddr(t *testing.T) {
	d, err := NewDeduper("", "", 0, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, d)
}
