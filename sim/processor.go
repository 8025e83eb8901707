package sim

// A Vertex identifies a node of the input graph. Vertices are numbered
// consecutively from 0 and index the input data given to the network builder.
type Vertex int

// An Edge is an unordered pair of vertices.
type Edge struct {
	U, V Vertex
}

// A Port is the local number of a link at a processor. Ports start from 1.
type Port int

// A PortBinding identifies one end of a link, which is a port of a processor.
type PortBinding struct {
	Vertex Vertex
	Port   Port
}

// A Link is a full-duplex channel between two port bindings. A is the binding
// at the U end of the edge that created the link and B is the binding at the V
// end.
type Link struct {
	A, B PortBinding
}

// A Processor is the unit of computation of the port-numbering model.
type Processor interface {
	// Send returns the message to send out from the given port in the
	// current round. An empty string means that nothing is sent.
	Send(port Port) string

	// Receive delivers the message that arrives at the given port in the
	// current round.
	Receive(port Port, msg string) error

	// Compute updates the local state at the end of a round.
	Compute() error

	// Output returns the final output of the processor. The second return
	// value is false until the processor halts.
	Output() (string, bool)
}

// A ProcessorFactory creates the processor of a vertex, given the degree of
// the vertex and the input data attached to it.
type ProcessorFactory func(degree int, input any) (Processor, error)

// Inputs converts a typed input slice to the form the network builder takes.
func Inputs[T any](data []T) []any {
	inputs := make([]any, len(data))
	for i, d := range data {
		inputs[i] = d
	}

	return inputs
}
