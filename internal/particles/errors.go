package particles

import "errors"

// Domain errors for system mutation and stepping.
var (
	// ErrIndexOutOfRange indicates an interaction or constraint references
	// a particle index not present in the store. Detected when the rule is
	// added, never mid-step.
	ErrIndexOutOfRange = errors.New("particles: particle index out of range")

	// ErrInvalidParameter indicates a construction-time parameter violates
	// its invariant (non-positive mass, negative time step, missing kind).
	ErrInvalidParameter = errors.New("particles: invalid parameter")

	// ErrDegenerateGeometry indicates two interacting particles at zero
	// separation, where the force direction is undefined. The offending
	// Advance call aborts without applying any partial update.
	ErrDegenerateGeometry = errors.New("particles: zero separation between interacting particles")

	// ErrBadState indicates an exported system document that cannot be
	// restored (unknown version, missing or ambiguous kind variant).
	ErrBadState = errors.New("particles: malformed system state document")
)
