package sim

import "errors"

var (
	// ErrUnknownVertex is returned when an edge refers to a vertex that is
	// not part of the network.
	ErrUnknownVertex = errors.New("edge refers to an unknown vertex")

	// ErrSelfLoop is returned when an edge connects a vertex to itself.
	ErrSelfLoop = errors.New("self-loop edges are not supported")

	// ErrDuplicateEdge is returned when two edges connect the same pair of
	// vertices.
	ErrDuplicateEdge = errors.New("multiple edges between the same vertices")

	// ErrNilProcessor is returned when a processor factory returns nil
	// without an error.
	ErrNilProcessor = errors.New("processor factory returned nil")

	// ErrOutputChanged is returned when a processor changes or withdraws its
	// output after halting.
	ErrOutputChanged = errors.New("processor output changed after halting")
)
