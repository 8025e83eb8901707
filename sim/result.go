package sim

// A Result describes the state of a network when Run returns.
type Result struct {
	// Rounds is the number of rounds the network has executed.
	Rounds int

	// Converged is true if all the processors have halted. Reaching the
	// round limit before that is not an error; Converged is false instead.
	Converged bool

	// Outputs holds the output of each processor, indexed by vertex. The
	// output of a processor that has not halted is empty.
	Outputs []string

	// HaltedAt holds the round in which each processor halted, or 0 if the
	// processor has not halted.
	HaltedAt []int
}

// Status returns a short description of how the run ended.
func (r Result) Status() string {
	if r.Converged {
		return "converged"
	}

	return "round limit reached"
}

// Halted tells if the processor of the given vertex has halted.
func (r Result) Halted(v Vertex) bool {
	return r.HaltedAt[v] > 0
}
