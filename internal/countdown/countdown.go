// Package countdown keeps the client's personal 24 hour story cycle.
package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nightfall/internal/model"
)

// Interval is the time between scheduled fetches.
const Interval = 24 * time.Hour

// Fetcher retrieves a new story.
type Fetcher interface {
	Fetch(ctx context.Context) (model.Story, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (model.Story, error)

func (f FetcherFunc) Fetch(ctx context.Context) (model.Story, error) {
	return f(ctx)
}

// Result is the outcome of one fetch.
type Result struct {
	Story    model.Story
	Err      error
	Deadline time.Time
}

// Countdown tracks the next fetch deadline. At most one fetch runs at a time.
type Countdown struct {
	store   Store
	fetcher Fetcher
	now     func() time.Time

	mu       sync.Mutex
	deadline time.Time
	known    bool
	inFlight bool
}

// New creates a countdown. now defaults to time.Now.
func New(store Store, fetcher Fetcher, now func() time.Time) *Countdown {
	if now == nil {
		now = time.Now
	}
	return &Countdown{store: store, fetcher: fetcher, now: now}
}

// Load reads the persisted deadline. An absent deadline makes the countdown due.
func (c *Countdown) Load() error {
	deadline, ok, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load deadline: %w", err)
	}
	c.mu.Lock()
	c.deadline, c.known = deadline, ok
	c.mu.Unlock()
	return nil
}

// Deadline returns the current deadline and whether one is set.
func (c *Countdown) Deadline() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadline, c.known
}

// Remaining returns the time left before the next fetch, never negative.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.known {
		return 0
	}
	if d := c.deadline.Sub(c.now()); d > 0 {
		return d
	}
	return 0
}

// Due reports whether a scheduled fetch should start now: the deadline is
// absent or elapsed and no fetch is running.
func (c *Countdown) Due() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	return !c.known || !c.now().Before(c.deadline)
}

// Fetch runs one fetch regardless of the remaining time and then moves the
// deadline to completion + Interval, on success and on failure alike.
// It returns false without fetching when another fetch is running.
func (c *Countdown) Fetch(ctx context.Context) (Result, bool) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return Result{}, false
	}
	c.inFlight = true
	c.mu.Unlock()

	story, fetchErr := c.fetcher.Fetch(ctx)
	deadline := c.now().Add(Interval)

	c.mu.Lock()
	c.deadline, c.known = deadline, true
	c.inFlight = false
	c.mu.Unlock()

	res := Result{Story: story, Err: fetchErr, Deadline: deadline}
	if err := c.store.Save(deadline); err != nil && res.Err == nil {
		res.Err = fmt.Errorf("save deadline: %w", err)
	}
	return res, true
}

// FormatTime renders ms as zero-padded HH:MM:SS. Hours do not roll over into
// days; negative input renders as 00:00:00.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
