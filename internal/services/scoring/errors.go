package scoring

import "errors"

var (
	// ErrInsufficientData means the bar series is shorter than the engine's
	// minimum usable count. No signal is produced.
	ErrInsufficientData = errors.New("insufficient bar history")

	// ErrInvalidConfig means the scoring configuration violates a structural
	// invariant. Raised at construction, never mid-computation.
	ErrInvalidConfig = errors.New("invalid scoring config")
)
