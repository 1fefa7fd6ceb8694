package force

import "errors"

// Construction errors. None of these can occur once a Model exists.
var (
	// ErrMissingEntry indicates a force table that is not NumTypes×NumTypes
	// or holds a non-finite entry.
	ErrMissingEntry = errors.New("force: table missing entry for type pair")

	// ErrDegenerateParams indicates distance constants that would divide by
	// zero or produce non-finite forces.
	ErrDegenerateParams = errors.New("force: degenerate force parameters")
)
