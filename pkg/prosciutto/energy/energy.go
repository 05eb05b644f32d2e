// Package energy implements a regenerating resource counter: one point comes
// back every interval until the maximum is reached. Progress is computed from
// wall-clock timestamps, so time spent with the app closed counts.
package energy

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/event"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/internal"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
)

// ErrInsufficient is returned by Use when there is not enough energy.
var ErrInsufficient = errors.New("energy: insufficient energy")

// Config describes the regeneration rules.
type Config struct {
	Max      int           // Regeneration stops at this amount
	Interval time.Duration // Time to regenerate one point
	// Initial is the amount for a player with nothing stored yet. Zero
	// starts the player full; a negative value starts them empty.
	Initial int
}

func (c Config) withDefaults() Config {
	if c.Max <= 0 {
		c.Max = constants.DefaultMaxEnergy
	}
	if c.Interval <= 0 {
		c.Interval = constants.DefaultEnergyInterval
	}
	switch {
	case c.Initial == 0:
		c.Initial = c.Max
	case c.Initial < 0:
		c.Initial = 0
	}
	return c
}

// Manager owns the energy counter and its regeneration task.
type Manager struct {
	cfg    Config
	store  prefs.Prefs
	now    func() time.Time
	logger *slog.Logger

	mu     sync.Mutex
	energy int
	last   time.Time

	changed event.Feed[int]

	taskMu sync.Mutex
	task   *task
	wake   chan struct{}
}

// task is one run of the regeneration goroutine.
type task struct {
	cancel   context.CancelFunc
	done     chan struct{}
	emitting atomic.Bool
}

func (t *task) finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New loads the stored counter and applies regeneration for the time elapsed
// since it was last saved.
func New(cfg Config, store prefs.Prefs, opts ...Option) *Manager {
	m := &Manager{
		cfg:   cfg.withDefaults(),
		store: store,
		now:   time.Now,
		wake:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = internal.LoggerOr(m.logger).With("manager", "energy")

	now := m.now()
	m.energy = store.GetInt(constants.PrefEnergy, m.cfg.Initial)
	m.last = store.GetTime(constants.PrefEnergyTimestamp, now)
	if m.energy < 0 {
		m.energy = 0
	}

	m.Tick(now)
	return m
}

// Changed is emitted with the new amount whenever it changes. When the
// background task is running, emissions come from its goroutine.
func (m *Manager) Changed() *event.Feed[int] {
	return &m.changed
}

// Tick applies regeneration up to now.
func (m *Manager) Tick(now time.Time) {
	m.mu.Lock()
	changed := m.catchUp(now)
	value := m.energy
	m.persist()
	m.mu.Unlock()

	if changed {
		m.logger.Debug("Energy regenerated", "energy", value)
		m.changed.Emit(value)
	}
}

// catchUp must be called with mu held.
func (m *Manager) catchUp(now time.Time) bool {
	if m.energy >= m.cfg.Max || now.Before(m.last) {
		m.last = now
		return false
	}

	gained := int(now.Sub(m.last) / m.cfg.Interval)
	if gained <= 0 {
		return false
	}

	if m.energy+gained >= m.cfg.Max {
		m.energy = m.cfg.Max
		m.last = now
	} else {
		m.energy += gained
		m.last = m.last.Add(time.Duration(gained) * m.cfg.Interval)
	}
	return true
}

// Use spends n points. It returns ErrInsufficient and spends nothing when the
// balance is too low.
func (m *Manager) Use(n int) error {
	if n <= 0 {
		return nil
	}

	m.mu.Lock()
	now := m.now()
	m.catchUp(now)
	if m.energy < n {
		have := m.energy
		m.mu.Unlock()
		m.logger.Debug("Not enough energy", "need", n, "have", have)
		return ErrInsufficient
	}
	wasFull := m.energy >= m.cfg.Max
	m.energy -= n
	if wasFull && m.energy < m.cfg.Max {
		m.last = now
	}
	value := m.energy
	m.persist()
	m.mu.Unlock()

	m.save()
	m.poke()
	m.changed.Emit(value)
	return nil
}

// Add grants n points. Rewards may push the balance above Max; regeneration
// stays paused until it drops below again.
func (m *Manager) Add(n int) {
	if n <= 0 {
		return
	}

	m.mu.Lock()
	now := m.now()
	m.catchUp(now)
	m.energy += n
	if m.energy >= m.cfg.Max {
		m.last = now
	}
	value := m.energy
	m.persist()
	m.mu.Unlock()

	m.save()
	m.poke()
	m.changed.Emit(value)
}

// Current returns the balance as of the last tick.
func (m *Manager) Current() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.energy
}

func (m *Manager) Max() int {
	return m.cfg.Max
}

func (m *Manager) Interval() time.Duration {
	return m.cfg.Interval
}

func (m *Manager) IsFull() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.energy >= m.cfg.Max
}

// Until returns the time left until the next point, or 0 when full.
func (m *Manager) Until(now time.Time) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.energy >= m.cfg.Max {
		return 0
	}
	left := m.last.Add(m.cfg.Interval).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Start launches the regeneration task. It sleeps until the next point is
// due, ticks, and repeats until ctx is done or Stop is called. Calling Start
// while running does nothing; a task whose ctx was cancelled counts as
// stopped and is replaced.
func (m *Manager) Start(ctx context.Context) {
	m.taskMu.Lock()
	defer m.taskMu.Unlock()

	if m.task != nil && !m.task.finished() {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &task{cancel: cancel, done: make(chan struct{})}
	m.task = t
	go m.run(ctx, t)
}

// Stop cancels the regeneration task and waits for it to exit. Called while
// the task is delivering Changed, including from a subscriber, it returns
// without waiting; the task ticks no more either way.
func (m *Manager) Stop() {
	m.taskMu.Lock()
	t := m.task
	m.task = nil
	m.taskMu.Unlock()

	if t == nil {
		return
	}
	t.cancel()
	if t.emitting.Load() {
		return
	}
	<-t.done
}

// Running reports whether the regeneration task is active.
func (m *Manager) Running() bool {
	m.taskMu.Lock()
	defer m.taskMu.Unlock()
	return m.task != nil && !m.task.finished()
}

func (m *Manager) run(ctx context.Context, t *task) {
	defer close(t.done)

	for {
		if ctx.Err() != nil {
			return
		}
		now := m.now()
		t.emitting.Store(true)
		m.Tick(now)
		t.emitting.Store(false)

		wait := m.Until(now)
		if wait <= 0 {
			wait = m.cfg.Interval
		}
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-m.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// poke makes a running task recompute its next wake-up.
func (m *Manager) poke() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// persist must be called with mu held.
func (m *Manager) persist() {
	m.store.SetInt(constants.PrefEnergy, m.energy)
	m.store.SetTime(constants.PrefEnergyTimestamp, m.last)
}

func (m *Manager) save() {
	if err := m.store.Save(); err != nil {
		m.logger.Error("Failed to save energy", "error", err)
	}
}
