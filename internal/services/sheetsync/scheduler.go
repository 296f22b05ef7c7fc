// Package sheetsync debounces roster changes into rate-limited pushes to
// the external record-keeper. Commits signal it through NotifyChanged; it
// owns all timing decisions.
package sheetsync

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
)

const (
	// DefaultMinInterval is the floor between two pushes
	DefaultMinInterval = 30 * time.Second
	// DefaultMaxInterval caps the backed-off interval
	DefaultMaxInterval = 5 * time.Minute
	// DefaultPushTimeout bounds a single push
	DefaultPushTimeout = 60 * time.Second
)

// SchedulerConfig holds configuration for the scheduler
type SchedulerConfig struct {
	Source      RosterSource
	Keeper      Recordkeeper
	MinInterval time.Duration // defaults to DefaultMinInterval
	MaxInterval time.Duration // defaults to DefaultMaxInterval
	PushTimeout time.Duration // defaults to DefaultPushTimeout
}

// Scheduler coalesces change signals into at most one pending push. While
// a push is already scheduled, further signals are no-ops: the pending
// push will pick up their changes because every push sends the full
// dataset.
type Scheduler struct {
	source      RosterSource
	keeper      Recordkeeper
	minInterval time.Duration
	maxInterval time.Duration
	pushTimeout time.Duration

	mu       sync.Mutex
	timer    *time.Timer // non-nil while a push is pending
	lastPush time.Time
	interval time.Duration
	stopped  bool

	group   singleflight.Group
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewScheduler creates a scheduler. It is idle until the first
// NotifyChanged.
func NewScheduler(cfg *SchedulerConfig) *Scheduler {
	minInterval := cfg.MinInterval
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	maxInterval := cfg.MaxInterval
	if maxInterval <= 0 {
		maxInterval = DefaultMaxInterval
	}
	pushTimeout := cfg.PushTimeout
	if pushTimeout <= 0 {
		pushTimeout = DefaultPushTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		source:      cfg.Source,
		keeper:      cfg.Keeper,
		minInterval: minInterval,
		maxInterval: maxInterval,
		pushTimeout: pushTimeout,
		interval:    minInterval,
		baseCtx:     ctx,
		cancel:      cancel,
	}
}

// NotifyChanged schedules a push. The push fires as soon as the interval
// since the previous push has elapsed, immediately if it already has.
// Safe to call from any goroutine.
func (s *Scheduler) NotifyChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.timer != nil {
		return
	}

	delay := s.interval - time.Since(s.lastPush)
	if delay < 0 {
		delay = 0
	}
	s.timer = time.AfterFunc(delay, s.fire)
}

// Stop cancels any pending push and aborts an in-flight one. The
// scheduler cannot be restarted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.cancel()
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	s.timer = nil
	if s.stopped {
		s.mu.Unlock()
		return
	}
	// Marked at push start so signals arriving during the push wait a
	// full interval
	s.lastPush = time.Now()
	s.mu.Unlock()

	_, err, _ := s.group.Do("roster", func() (interface{}, error) {
		return nil, s.push()
	})
	if err == nil {
		// A backed-off interval stays where it is; only operator action
		// (a restart) returns it to the floor.
		return
	}

	if s.baseCtx.Err() != nil {
		return
	}
	log.Printf("sheetsync: push failed: %v", err)

	if apperr.IsRateLimited(err) || errors.Is(err, context.DeadlineExceeded) {
		s.mu.Lock()
		s.interval *= 2
		if s.interval > s.maxInterval {
			s.interval = s.maxInterval
		}
		s.mu.Unlock()
	}

	// The data never made it out; reschedule so the roster converges
	s.NotifyChanged()
}

func (s *Scheduler) push() error {
	ctx, cancel := context.WithTimeout(s.baseCtx, s.pushTimeout)
	defer cancel()

	entries, err := s.source.Roster(ctx)
	if err != nil {
		return apperr.Wrap(err, "failed to snapshot roster")
	}
	if err := s.keeper.ReplaceAll(ctx, entries); err != nil {
		return err
	}

	log.Printf("sheetsync: pushed %d roster entries", len(entries))
	return nil
}
