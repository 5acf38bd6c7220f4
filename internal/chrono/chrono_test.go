package chrono

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunDate(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	require.Equal(t, "2025-04-26", RunDate(time.Date(2025, time.April, 26, 23, 59, 0, 0, la)))
	require.Equal(t, "2025-01-02", RunDate(time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)))
}

func TestStandardSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := NewStandardImpl(nil).Sleep(ctx, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), time.Second)
}

func TestStandardSleep(t *testing.T) {
	err := NewStandardImpl(time.UTC).Sleep(context.Background(), time.Millisecond)
	require.NoError(t, err)
}

func TestFakeImpl(t *testing.T) {
	start := time.Date(2025, time.April, 26, 18, 17, 30, 0, time.UTC)
	fake := NewFakeImpl(start)

	require.NoError(t, fake.Sleep(context.Background(), 100*time.Millisecond))
	require.NoError(t, fake.Sleep(context.Background(), 100*time.Millisecond))

	require.Equal(t, start.Add(200*time.Millisecond), fake.Now())
	require.Equal(t, []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}, fake.Sleeps())
}
