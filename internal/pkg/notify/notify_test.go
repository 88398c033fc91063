//go:build unit

package notify

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"restaurant-pos/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCenter(capacity int) *Center {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCenter(logger, clock.NewMockClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)), capacity)
}

func TestCenter_RecentNewestFirst(t *testing.T) {
	c := newCenter(2)

	c.Success("Order created", "#1001")
	c.Info("Offline", "payments will be queued")
	c.Error("Payment failed", errors.New("card declined"))

	recent := c.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, LevelError, recent[0].Level)
	assert.Equal(t, "card declined", recent[0].Message)
	assert.Equal(t, LevelInfo, recent[1].Level)
	assert.Equal(t, int64(3), recent[0].ID)
}

func TestCenter_Subscribe(t *testing.T) {
	c := newCenter(10)
	ch, cancel := c.Subscribe(4)
	defer cancel()

	c.Success("Saved", "")

	select {
	case n := <-ch:
		assert.Equal(t, "Saved", n.Title)
	case <-time.After(time.Second):
		t.Fatal("notification not delivered")
	}
}
