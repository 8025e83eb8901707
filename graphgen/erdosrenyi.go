package graphgen

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/portnum/sim"
)

// A Bipartite lists the two sides of a bipartite graph.
type Bipartite struct {
	A, B []sim.Vertex
}

// NumVertices returns the number of vertices on both sides.
func (b Bipartite) NumVertices() int {
	return len(b.A) + len(b.B)
}

// ER samples an Erdos-Renyi random graph with n vertices, where each of the
// n(n-1)/2 possible edges is present with probability p. Pairs (i, j) with
// i < j are tried for i ascending, then j ascending.
func ER(n int, p float64, rng *rand.Rand) ([]sim.Vertex, []sim.Edge, error) {
	err := paramsMustBeValid("ER", p, rng, n)
	if err != nil {
		return nil, nil, err
	}

	vertices := sequence(0, n)

	var edges []sim.Edge
	for i, u := range vertices {
		for _, v := range vertices[i+1:] {
			if rng.Float64() < p {
				edges = append(edges, sim.Edge{U: u, V: v})
			}
		}
	}

	return vertices, edges, nil
}

// ERBipartite samples a bipartite Erdos-Renyi random graph. Side A holds the
// vertices 0..sizeA-1 and side B holds sizeA..sizeA+sizeB-1. Each of the
// sizeA*sizeB possible edges is present with probability p. Edges always go
// from side A to side B.
func ERBipartite(
	sizeA, sizeB int,
	p float64,
	rng *rand.Rand,
) (Bipartite, []sim.Edge, error) {
	err := paramsMustBeValid("ERBipartite", p, rng, sizeA, sizeB)
	if err != nil {
		return Bipartite{}, nil, err
	}

	sides := Bipartite{
		A: sequence(0, sizeA),
		B: sequence(sizeA, sizeB),
	}

	var edges []sim.Edge
	for _, a := range sides.A {
		for _, b := range sides.B {
			if rng.Float64() < p {
				edges = append(edges, sim.Edge{U: a, V: b})
			}
		}
	}

	return sides, edges, nil
}

func paramsMustBeValid(
	method string,
	p float64,
	rng *rand.Rand,
	sizes ...int,
) error {
	for _, n := range sizes {
		if n < 0 {
			return fmt.Errorf("%s: n=%d: %w", method, n, ErrTooFewVertices)
		}
	}

	if p < 0 || p > 1 {
		return fmt.Errorf("%s: p=%.6f not in [0,1]: %w",
			method, p, ErrInvalidProbability)
	}

	if rng == nil {
		return fmt.Errorf("%s: %w", method, ErrNeedRandSource)
	}

	return nil
}

func sequence(start, count int) []sim.Vertex {
	vertices := make([]sim.Vertex, count)
	for i := range vertices {
		vertices[i] = sim.Vertex(start + i)
	}

	return vertices
}
