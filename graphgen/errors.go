package graphgen

import "errors"

var (
	// ErrTooFewVertices indicates a negative vertex count.
	ErrTooFewVertices = errors.New("graphgen: vertex count must not be negative")

	// ErrInvalidProbability indicates an edge probability outside [0, 1].
	ErrInvalidProbability = errors.New("graphgen: probability out of range")

	// ErrNeedRandSource indicates that no random source was given.
	ErrNeedRandSource = errors.New("graphgen: rng is required")

	// ErrInvalidDescription indicates a graph description that refers to
	// vertices it does not declare.
	ErrInvalidDescription = errors.New("graphgen: invalid graph description")
)
