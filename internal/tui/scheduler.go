package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/folio/internal/infrastructure/clock"
	"github.com/alexisbeaulieu97/folio/internal/ports"
)

// TimerMsg is delivered through Update when a scheduled timer expires.
type TimerMsg struct {
	ID uint64
}

type timer struct {
	interval time.Duration
	repeat   bool
	fn       func()
}

// Scheduler implements ports.Scheduler on top of the Bubble Tea loop. Each
// registration queues a tea.Tick command; the model drains the queue after
// every Update and hands expired timers back to Deliver. Callbacks therefore
// run inside Update, never concurrently with each other.
type Scheduler struct {
	now func() time.Time

	mu     sync.Mutex
	nextID uint64
	timers map[uint64]*timer
	queue  []tea.Cmd
	stale  int
}

var _ ports.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a scheduler. A nil now uses time.Now.
func NewScheduler(now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{now: now, timers: make(map[uint64]*timer)}
}

// Now implements ports.Scheduler.
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// Every implements ports.Scheduler.
func (s *Scheduler) Every(interval time.Duration, fn func()) (ports.Cancel, error) {
	if interval <= 0 {
		return nil, clock.ErrInvalidInterval
	}
	return s.add(interval, true, fn), nil
}

// After implements ports.Scheduler.
func (s *Scheduler) After(delay time.Duration, fn func()) (ports.Cancel, error) {
	if delay < 0 {
		delay = 0
	}
	return s.add(delay, false, fn), nil
}

func (s *Scheduler) add(d time.Duration, repeat bool, fn func()) ports.Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.timers[id] = &timer{interval: d, repeat: repeat, fn: fn}
	s.queue = append(s.queue, tick(id, d))
	return func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
	}
}

// Deliver runs the timer named by msg. Messages for cancelled or already
// fired timers are counted as stale and ignored. It reports whether a
// callback ran.
func (s *Scheduler) Deliver(msg TimerMsg) bool {
	s.mu.Lock()
	t, ok := s.timers[msg.ID]
	if !ok {
		s.stale++
		s.mu.Unlock()
		return false
	}
	if t.repeat {
		s.queue = append(s.queue, tick(msg.ID, t.interval))
	} else {
		delete(s.timers, msg.ID)
	}
	s.mu.Unlock()

	t.fn()
	return true
}

// Commands drains the ticks queued since the last call.
func (s *Scheduler) Commands() tea.Cmd {
	s.mu.Lock()
	queued := s.queue
	s.queue = nil
	s.mu.Unlock()

	switch len(queued) {
	case 0:
		return nil
	case 1:
		return queued[0]
	default:
		return tea.Batch(queued...)
	}
}

// Queued returns the number of ticks waiting to be drained.
func (s *Scheduler) Queued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stale returns the number of ignored timer messages.
func (s *Scheduler) Stale() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

func tick(id uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return TimerMsg{ID: id} })
}
