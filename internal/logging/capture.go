package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Capture keeps every record logged while it is installed.
type Capture struct {
	mu      sync.Mutex
	records []slog.Record
	restore func()
}

// CaptureForTest makes a Capture the default logger at debug level.
// Call Restore to put the previous logger and level back.
func CaptureForTest() *Capture {
	prev, prevLevel := slog.Default(), level.Level()
	c := &Capture{}
	c.restore = func() {
		slog.SetDefault(prev)
		level.Set(prevLevel)
	}
	slog.SetDefault(slog.New(c))
	level.Set(slog.LevelDebug)
	return c
}

func (c *Capture) Restore() { c.restore() }

// find returns the first record whose message contains msg, at lvl when matchLevel is set.
func (c *Capture) find(msg string, lvl slog.Level, matchLevel bool) (slog.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if matchLevel && r.Level != lvl {
			continue
		}
		if strings.Contains(r.Message, msg) {
			return r, true
		}
	}
	return slog.Record{}, false
}

// Has reports whether a record at lvl mentions msg.
func (c *Capture) Has(lvl slog.Level, msg string) bool {
	_, ok := c.find(msg, lvl, true)
	return ok
}

// Attr returns attribute key from the first record mentioning msg.
func (c *Capture) Attr(msg, key string) (slog.Value, bool) {
	r, ok := c.find(msg, 0, false)
	if !ok {
		return slog.Value{}, false
	}
	var v slog.Value
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			v, found = a.Value, true
		}
		return !found
	})
	return v, found
}

// Capture is its own slog.Handler.

func (c *Capture) Enabled(context.Context, slog.Level) bool { return true }

func (c *Capture) Handle(_ context.Context, r slog.Record) error {
	c.mu.Lock()
	c.records = append(c.records, r.Clone())
	c.mu.Unlock()
	return nil
}

func (c *Capture) WithAttrs([]slog.Attr) slog.Handler { return c }

func (c *Capture) WithGroup(string) slog.Handler { return c }
