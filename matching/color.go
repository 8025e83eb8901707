package matching

import (
	"fmt"

	"github.com/sarchlab/portnum/sim"
)

// Color is the side of the bipartition a processor is on.
type Color int

// Colors of the bipartition.
const (
	White Color = iota + 1
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// State is the state of a matching processor.
type State int

// States of a matching processor. UnmatchedRunning is the initial state.
// UnmatchedStopped and MatchedStopped are final.
const (
	UnmatchedRunning State = iota
	MatchedRunning
	UnmatchedStopped
	MatchedStopped
)

func (s State) String() string {
	switch s {
	case UnmatchedRunning:
		return "UR"
	case MatchedRunning:
		return "MR"
	case UnmatchedStopped:
		return "US"
	case MatchedStopped:
		return "MS"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stopped tells if the state is final.
func (s State) Stopped() bool {
	return s == UnmatchedStopped || s == MatchedStopped
}

// ColorsFor returns the colors of numVertices vertices, where the listed
// vertices are white and all the others are black.
func ColorsFor(numVertices int, white []sim.Vertex) []Color {
	colors := make([]Color, numVertices)
	for i := range colors {
		colors[i] = Black
	}

	for _, v := range white {
		colors[v] = White
	}

	return colors
}

// CheckBipartite makes sure every edge joins a white and a black vertex.
func CheckBipartite(colors []Color, edges []sim.Edge) error {
	for _, e := range edges {
		if !inRange(e.U, len(colors)) || !inRange(e.V, len(colors)) {
			return fmt.Errorf("edge %d-%d: %w", e.U, e.V, sim.ErrUnknownVertex)
		}

		if colors[e.U] == colors[e.V] {
			return fmt.Errorf("edge %d-%d, both %s: %w",
				e.U, e.V, colors[e.U], ErrNotBipartite)
		}
	}

	return nil
}

func inRange(v sim.Vertex, n int) bool {
	return v >= 0 && int(v) < n
}
