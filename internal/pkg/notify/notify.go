package notify

import (
	"log/slog"
	"sync"
	"time"

	"restaurant-pos/internal/pkg/clock"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

const DefaultCapacity = 50

type Notification struct {
	ID        int64
	Level     Level
	Title     string
	Message   string
	CreatedAt time.Time
}

// Notifier is the narrow port the stores emit user-visible messages through.
type Notifier interface {
	Success(title, message string)
	Error(title string, err error)
	Info(title, message string)
}

// Center keeps the most recent notifications for the UI and fans them out to subscribers.
type Center struct {
	mu       sync.Mutex
	logger   *slog.Logger
	clock    clock.Clock
	capacity int
	nextID   int64
	recent   []Notification
	subs     map[chan Notification]struct{}
}

func NewCenter(logger *slog.Logger, clk clock.Clock, capacity int) *Center {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Center{
		logger:   logger,
		clock:    clk,
		capacity: capacity,
		subs:     make(map[chan Notification]struct{}),
	}
}

func (c *Center) Success(title, message string) {
	c.push(LevelSuccess, title, message)
}

func (c *Center) Info(title, message string) {
	c.push(LevelInfo, title, message)
}

func (c *Center) Error(title string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	c.push(LevelError, title, msg)
}

// Recent returns notifications newest first.
func (c *Center) Recent() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.recent))
	for i, n := range c.recent {
		out[len(c.recent)-1-i] = n
	}
	return out
}

// Subscribe delivers notifications pushed after the call. A subscriber that falls behind by
// more than the buffer drops messages.
func (c *Center) Subscribe(buffer int) (<-chan Notification, func()) {
	ch := make(chan Notification, buffer)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, ch)
			close(ch)
			c.mu.Unlock()
		})
	}
}

func (c *Center) push(level Level, title, message string) {
	c.mu.Lock()
	c.nextID++
	n := Notification{
		ID:        c.nextID,
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: c.clock.Now(),
	}
	c.recent = append(c.recent, n)
	if len(c.recent) > c.capacity {
		c.recent = c.recent[len(c.recent)-c.capacity:]
	}
	for ch := range c.subs {
		select {
		case ch <- n:
		default:
		}
	}
	c.mu.Unlock()

	attrs := []any{slog.Int64("notification_id", n.ID), slog.String("title", title)}
	if level == LevelError {
		c.logger.Warn("user notification", append(attrs, slog.String("error", message))...)
		return
	}
	c.logger.Info("user notification", append(attrs, slog.String("level", string(level)), slog.String("message", message))...)
}
