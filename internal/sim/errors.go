package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/plife/internal/particle"
)

var (
	// ErrInvalidState indicates a NaN or Inf position, velocity or acceleration.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates run settings that cannot be executed.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")
)

// SimulationError wraps an error with the tick at which it surfaced.
type SimulationError struct {
	Step       int
	Time       float64
	Population particle.Population
	Wrapped    error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
