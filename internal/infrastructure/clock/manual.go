// Package clock provides ports.Scheduler implementations that are not tied to
// an interactive terminal loop.
package clock

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// ErrInvalidInterval is returned when Every is called with a non-positive
// interval.
var ErrInvalidInterval = errors.New("clock: interval must be positive")

type timer struct {
	id       uint64
	due      time.Time
	interval time.Duration
	fn       func()
}

// Manual is a virtual-time scheduler. Time only moves when Advance is
// called; due callbacks run on the caller's goroutine in due-time order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	nextID uint64
	timers map[uint64]*timer

	everyCalls int
	afterCalls int
}

var _ ports.Scheduler = (*Manual)(nil)

// NewManual returns a scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, timers: make(map[uint64]*timer)}
}

// Now implements ports.Scheduler.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Every implements ports.Scheduler.
func (m *Manual) Every(interval time.Duration, fn func()) (ports.Cancel, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	m.mu.Lock()
	m.everyCalls++
	m.mu.Unlock()
	return m.add(interval, interval, fn), nil
}

// After implements ports.Scheduler.
func (m *Manual) After(delay time.Duration, fn func()) (ports.Cancel, error) {
	if delay < 0 {
		delay = 0
	}
	m.mu.Lock()
	m.afterCalls++
	m.mu.Unlock()
	return m.add(delay, 0, fn), nil
}

func (m *Manual) add(delay, interval time.Duration, fn func()) ports.Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.timers[id] = &timer{id: id, due: m.now.Add(delay), interval: interval, fn: fn}
	return func() {
		m.mu.Lock()
		delete(m.timers, id)
		m.mu.Unlock()
	}
}

// Advance moves the clock forward by d, firing every timer that falls due.
// Interval timers fire once per elapsed interval.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.earliestLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
		} else {
			delete(m.timers, next.id)
		}
		fn := next.fn
		m.mu.Unlock()

		if fn != nil {
			fn()
		}
	}
}

func (m *Manual) earliestLocked(limit time.Time) *timer {
	var best *timer
	for _, t := range m.timers {
		if t.due.After(limit) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Pending returns the number of registered timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Intervals returns the intervals of every active repeating timer, shortest
// first.
func (m *Manual) Intervals() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []time.Duration
	for _, t := range m.timers {
		if t.interval > 0 {
			out = append(out, t.interval)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EveryCalls returns how many times Every was called.
func (m *Manual) EveryCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.everyCalls
}

// AfterCalls returns how many times After was called.
func (m *Manual) AfterCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.afterCalls
}
