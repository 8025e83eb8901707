package matching

import "errors"

var (
	// ErrInvalidColor is returned when a processor is created with input data
	// that is not a Color.
	ErrInvalidColor = errors.New("input data must be a matching color")

	// ErrNoMatchedPort is returned when a processor stops as matched without
	// knowing the port it is matched to.
	ErrNoMatchedPort = errors.New("matched processor has no matched port")
)

// ErrInvalidPort is returned when a message arrives at a port the processor
// does not have.
var ErrInvalidPort = errors.New("port out of range")

// ErrNotBipartite is returned when an edge joins two processors of the same
// color.
var ErrNotBipartite = errors.New("edge joins processors of the same color")
