package prosciutto

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/auth"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/energy"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/router"
)

// Re-exported sentinel errors so callers only need this package.
var (
	ErrInvalidScreen      = router.ErrInvalidScreen
	ErrNotRegistered      = router.ErrNotRegistered
	ErrEmptyHistory       = router.ErrEmptyHistory
	ErrInsufficientEnergy = energy.ErrInsufficient
	ErrPrivacyNotAccepted = auth.ErrPrivacyNotAccepted
)

// InfrastructureError represents a failure of something prosciutto depends on
// (preference file unreadable, log directory missing, config malformed).
// Navigation and manager operations never return one; they only come out of
// Init, Close and explicit persistence calls.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "open_prefs", "load_config")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prosciutto: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("prosciutto: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsNavigationNoop reports whether err is one of the navigation errors that
// leave state untouched.
func IsNavigationNoop(err error) bool {
	return errors.Is(err, ErrInvalidScreen) ||
		errors.Is(err, ErrNotRegistered) ||
		errors.Is(err, ErrEmptyHistory)
}
