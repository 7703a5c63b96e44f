package internalerr

import "errors"

// Sentinel errors for the three failure classes of a run
var (
	ErrInput         = errors.New("input error")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNoCandidates  = errors.New("no candidates to sample")
)
