package sim

import "fmt"

// DefaultRoundLimit is the number of rounds a network runs before giving up
// when no other limit is given.
const DefaultRoundLimit = 50

// Builder can build networks.
type Builder struct {
	factory    ProcessorFactory
	roundLimit int
	hooks      []Hook
}

// MakeBuilder creates a new builder with the default round limit.
func MakeBuilder() Builder {
	return Builder{
		roundLimit: DefaultRoundLimit,
	}
}

// WithProcessorFactory sets the factory that creates the processor of each
// vertex.
func (b Builder) WithProcessorFactory(f ProcessorFactory) Builder {
	b.factory = f
	return b
}

// WithRoundLimit sets the maximum number of rounds Run executes.
func (b Builder) WithRoundLimit(limit int) Builder {
	b.roundLimit = limit
	return b
}

// WithHook registers a hook on the network being built.
func (b Builder) WithHook(h Hook) Builder {
	hooks := make([]Hook, len(b.hooks), len(b.hooks)+1)
	copy(hooks, b.hooks)
	b.hooks = append(hooks, h)

	return b
}

func (b Builder) parametersMustBeValid() {
	if b.factory == nil {
		panic("processor factory is not set")
	}

	if b.roundLimit < 1 {
		panic("round limit must be at least 1")
	}
}

// Build creates one processor per input and one link per edge. The i-th input
// is the input data of vertex i. Ports are assigned at each vertex in the
// order of the edges.
func (b Builder) Build(inputs []any, edges []Edge) (*Network, error) {
	b.parametersMustBeValid()

	degrees, err := countDegrees(len(inputs), edges)
	if err != nil {
		return nil, err
	}

	n := &Network{
		degrees:    degrees,
		roundLimit: b.roundLimit,
		processors: make([]Processor, len(inputs)),
		outputs:    make([]string, len(inputs)),
		haltedAt:   make([]int, len(inputs)),
	}

	for i, input := range inputs {
		p, err := b.factory(degrees[i], input)
		if err != nil {
			return nil, fmt.Errorf("creating processor %d: %w", i, err)
		}

		if p == nil {
			return nil, fmt.Errorf("creating processor %d: %w",
				i, ErrNilProcessor)
		}

		n.processors[i] = p
	}

	n.links = bindPorts(len(inputs), edges)

	for _, h := range b.hooks {
		n.AcceptHook(h)
	}

	return n, nil
}

func countDegrees(numVertices int, edges []Edge) ([]int, error) {
	degrees := make([]int, numVertices)
	seen := make(map[Edge]bool, len(edges))

	for i, e := range edges {
		if err := edgeMustBeValid(numVertices, e); err != nil {
			return nil, fmt.Errorf("edge %d (%d, %d): %w", i, e.U, e.V, err)
		}

		key := normalize(e)
		if seen[key] {
			return nil, fmt.Errorf("edge %d (%d, %d): %w",
				i, e.U, e.V, ErrDuplicateEdge)
		}
		seen[key] = true

		degrees[e.U]++
		degrees[e.V]++
	}

	return degrees, nil
}

func edgeMustBeValid(numVertices int, e Edge) error {
	if e.U < 0 || int(e.U) >= numVertices ||
		e.V < 0 || int(e.V) >= numVertices {
		return ErrUnknownVertex
	}

	if e.U == e.V {
		return ErrSelfLoop
	}

	return nil
}

func normalize(e Edge) Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}

	return e
}

func bindPorts(numVertices int, edges []Edge) []Link {
	portCounts := make([]Port, numVertices)

	newPort := func(v Vertex) PortBinding {
		portCounts[v]++
		return PortBinding{Vertex: v, Port: portCounts[v]}
	}

	links := make([]Link, 0, len(edges))
	for _, e := range edges {
		a := newPort(e.U)
		b := newPort(e.V)
		links = append(links, Link{A: a, B: b})
	}

	return links
}
