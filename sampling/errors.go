package sampling

import (
	"fmt"

	"github.com/pkg/errors"
)

// InfeasibleConfigError is returned when no feasible pair was found within the attempt cap.
type InfeasibleConfigError struct {
	Attempts int
}

func (e *InfeasibleConfigError) Error() string {
	return fmt.Sprintf("infeasible configuration: no collision-free start/goal pair after %d attempts", e.Attempts)
}

// NewInfeasibleConfigError returns an error for a configuration where every candidate collided.
func NewInfeasibleConfigError(attempts int) error {
	return &InfeasibleConfigError{Attempts: attempts}
}

// IsInfeasibleConfigError reports whether err, or anything it wraps, is an InfeasibleConfigError.
func IsInfeasibleConfigError(err error) bool {
	var target *InfeasibleConfigError
	return errors.As(err, &target)
}

// NewNegativeCountError is returned when asked for fewer than zero samples.
func NewNegativeCountError(n int) error {
	return errors.Errorf("cannot generate %d samples, count must be non-negative", n)
}
