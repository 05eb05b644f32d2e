package router

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/event"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/internal"
)

// Kind identifies a screen. Each kind has at most one registered instance.
//
// Example:
//
//	const (
//	    KindTitle router.Kind = "title"
//	    KindLobby router.Kind = "lobby"
//	)
type Kind string

// Screen is a navigable unit of UI: a full-screen view or a popup.
// Navigators drive visibility through Show and Hide; they never create or
// destroy screens. Implementations must be comparable, which in practice means
// pointer types.
type Screen interface {
	Kind() Kind
	Initialize()
	Clean()
	Refresh()
	Show()
	Hide()
	Visible() bool
}

var (
	// ErrInvalidScreen is returned when a nil screen is passed to Show.
	ErrInvalidScreen = errors.New("router: invalid screen")

	// ErrNotRegistered is returned when the target is not the registered
	// instance for its kind.
	ErrNotRegistered = errors.New("router: screen not registered")

	// ErrEmptyHistory is returned when going back with nothing to go back to.
	ErrEmptyHistory = errors.New("router: history is empty")
)

// Navigator tracks the current screen and the back-navigation history for a
// set of registered screens. Views and popups use separate navigators.
//
// A Navigator is not safe for concurrent use; drive it from the UI loop.
type Navigator struct {
	name     string
	registry *Registry
	history  *Stack
	current  Screen
	changed  event.Feed[Screen]
	logger   *slog.Logger
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger used for warnings about ignored navigation.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// New creates a Navigator. The name only appears in log output.
func New(name string, opts ...Option) *Navigator {
	n := &Navigator{
		name:     name,
		registry: NewRegistry(),
		history:  NewStack(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = internal.LoggerOr(n.logger).With("navigator", name)
	return n
}

// Name returns the navigator's name.
func (n *Navigator) Name() string {
	return n.name
}

// Register adds screens to the registry. Each newly registered screen is
// initialized and hidden. Nil screens and duplicate kinds are skipped.
// It returns the number of screens actually registered.
func (n *Navigator) Register(screens ...Screen) int {
	added := 0
	for _, screen := range screens {
		if !n.registry.Register(screen) {
			if isNil(screen) {
				n.logger.Warn("Skipping nil screen registration")
			} else {
				n.logger.Debug("Skipping duplicate screen registration", "kind", screen.Kind())
			}
			continue
		}
		screen.Initialize()
		if screen.Visible() {
			screen.Hide()
		}
		added++
	}
	return added
}

// Show makes screen the current screen. When another screen is current it is
// hidden, and pushed onto the history first if remember is true. Showing the
// current screen again refreshes it without touching the history.
func (n *Navigator) Show(screen Screen, remember bool) error {
	if isNil(screen) {
		n.logger.Warn("Ignoring show of nil screen")
		return ErrInvalidScreen
	}
	if !n.registry.Contains(screen) {
		n.logger.Warn("Ignoring show of unregistered screen", screenAttrs(screen)...)
		return fmt.Errorf("%w: %s", ErrNotRegistered, screen.Kind())
	}

	if n.current == screen {
		screen.Refresh()
		if !screen.Visible() {
			screen.Show()
		}
		n.changed.Emit(screen)
		return nil
	}

	if previous := n.current; previous != nil {
		if remember {
			n.history.Push(previous)
		}
		previous.Hide()
	}

	n.current = screen
	screen.Show()

	n.logger.Debug("Screen changed", append(screenAttrs(screen), "history", n.history.Len())...)
	n.changed.Emit(screen)
	return nil
}

// ShowKind looks up the registered screen for kind and shows it.
func (n *Navigator) ShowKind(kind Kind, remember bool) error {
	screen, ok := n.registry.Get(kind)
	if !ok {
		n.logger.Warn("Ignoring show of unknown kind", "kind", kind)
		return fmt.Errorf("%w: %s", ErrNotRegistered, kind)
	}
	return n.Show(screen, remember)
}

// ShowLast pops the history and shows the popped screen without remembering
// the one it replaces.
func (n *Navigator) ShowLast() error {
	previous := n.history.Pop()
	if previous == nil {
		n.logger.Warn("Ignoring back navigation with empty history")
		return ErrEmptyHistory
	}
	return n.Show(previous, false)
}

// Back goes to the previous screen when there is one, otherwise closes the
// current screen. With neither it returns ErrEmptyHistory.
func (n *Navigator) Back() error {
	if !n.history.IsEmpty() {
		return n.ShowLast()
	}
	if n.current != nil {
		n.Close()
		return nil
	}
	n.logger.Warn("Ignoring back navigation with nothing open")
	return ErrEmptyHistory
}

// Close hides the current screen and leaves nothing current. History is kept.
func (n *Navigator) Close() {
	if n.current == nil {
		return
	}
	n.current.Hide()
	n.current = nil
	n.changed.Emit(nil)
}

// RefreshCurrent asks the current screen, if any, to refresh its content.
func (n *Navigator) RefreshCurrent() {
	if n.current != nil {
		n.current.Refresh()
	}
}

// Reset hides and cleans every registered screen, then clears the history,
// the current screen and the registry.
func (n *Navigator) Reset() {
	hadCurrent := n.current != nil

	n.registry.Each(func(screen Screen) {
		if screen.Visible() {
			screen.Hide()
		}
		screen.Clean()
	})
	n.history.Clear()
	n.current = nil
	n.registry.Clear()

	n.logger.Debug("Navigator reset")
	if hadCurrent {
		n.changed.Emit(nil)
	}
}

// Current returns the current screen, or nil.
func (n *Navigator) Current() Screen {
	return n.current
}

// History returns the history, oldest first.
func (n *Navigator) History() []Screen {
	return n.history.Snapshot()
}

// Registry exposes the screen registry.
func (n *Navigator) Registry() *Registry {
	return n.registry
}

// Changed is emitted with the new current screen (nil when closed) after
// every successful navigation.
func (n *Navigator) Changed() *event.Feed[Screen] {
	return &n.changed
}

// screenAttrs returns log attributes for screen, including its instance id
// when it has one.
func screenAttrs(screen Screen) []any {
	attrs := []any{"kind", screen.Kind()}
	if s, ok := screen.(interface{ ID() uuid.UUID }); ok {
		attrs = append(attrs, "id", s.ID().String())
	}
	return attrs
}

func isNil(screen Screen) bool {
	if screen == nil {
		return true
	}
	v := reflect.ValueOf(screen)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
