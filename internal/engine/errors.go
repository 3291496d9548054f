package engine

import "errors"

var (
	// ErrInvalidTransition is returned when a lifecycle operation is not
	// allowed from the current phase. The controller state is unchanged.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrNoSimulation is returned when no simulation could be constructed.
	ErrNoSimulation = errors.New("no simulation")

	// ErrSimulationPanic wraps a panic recovered from a simulation call.
	ErrSimulationPanic = errors.New("simulation panicked")
)
