package shell

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationChannelShowAndRemove(t *testing.T) {
	sink := &eventSink{}
	channel := NewNotificationChannel(NotificationOptions{
		Timeout:   -1,
		NewID:     sequentialIDs("n"),
		Publisher: sink,
	})
	ctx := context.Background()

	first := channel.Show(ctx, KindSuccess, "Saved", "Settings saved")
	second := channel.Show(ctx, "bogus", "Heads up", "")
	assert.Equal(t, "n-1", first)
	assert.Equal(t, "n-2", second)

	list := channel.List()
	require.Len(t, list, 2)
	assert.Equal(t, KindSuccess, list[0].Kind)
	assert.Equal(t, KindInfo, list[1].Kind, "unknown kinds become info")

	assert.True(t, channel.Remove(ctx, first))
	assert.False(t, channel.Remove(ctx, first), "removing twice is a no-op")
	assert.False(t, channel.Remove(ctx, "missing"))
	assert.Equal(t, 1, channel.Len())
	assert.Equal(t, []string{EventNotificationAdded, EventNotificationAdded, EventNotificationRemoved}, sink.types())
}

func TestNotificationChannelExpires(t *testing.T) {
	channel := NewNotificationChannel(NotificationOptions{Timeout: 20 * time.Millisecond})
	defer channel.Close()

	channel.Show(context.Background(), KindInfo, "Search", "Searching for: orders")
	require.Equal(t, 1, channel.Len())
	require.Eventually(t, func() bool { return channel.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNotificationChannelEvictsOldest(t *testing.T) {
	channel := NewNotificationChannel(NotificationOptions{
		Timeout:  -1,
		Capacity: 3,
		NewID:    sequentialIDs("n"),
	})
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		channel.Show(ctx, KindInfo, "t", "m")
	}

	ids := []string{}
	for _, note := range channel.List() {
		ids = append(ids, note.ID)
	}
	assert.Equal(t, []string{"n-3", "n-4", "n-5"}, ids)
}

func TestNotificationChannelUnbounded(t *testing.T) {
	channel := NewNotificationChannel(NotificationOptions{Timeout: -1, Capacity: -1})
	for i := 0; i < defaultNotificationCapacity+10; i++ {
		channel.Show(context.Background(), KindInfo, "t", "m")
	}
	assert.Equal(t, defaultNotificationCapacity+10, channel.Len())
}

func TestNotificationChannelUniqueIDs(t *testing.T) {
	channel := NewNotificationChannel(NotificationOptions{Timeout: -1, Capacity: -1})
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := channel.Show(context.Background(), KindWarning, "t", "m")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate notification id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNotificationChannelCloseStopsTimers(t *testing.T) {
	sink := &eventSink{}
	channel := NewNotificationChannel(NotificationOptions{Timeout: 10 * time.Millisecond, Publisher: sink})
	channel.Show(context.Background(), KindError, "Boom", "")
	channel.Close()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 0, channel.Len())
	assert.Equal(t, []string{EventNotificationAdded}, sink.types())
}

func TestParseNotificationKind(t *testing.T) {
	cases := map[string]NotificationKind{
		"success":  KindSuccess,
		" ERROR ":  KindError,
		"Warning":  KindWarning,
		"info":     KindInfo,
		"":         KindInfo,
		"critical": KindInfo,
	}
	for input, want := range cases {
		if got := ParseNotificationKind(input); got != want {
			t.Fatalf("ParseNotificationKind(%q) = %s, want %s", input, got, want)
		}
	}
}
