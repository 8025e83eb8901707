package matching

import (
	"fmt"
	"maps"
	"slices"

	"github.com/sarchlab/portnum/sim"
)

// Messages exchanged by matching processors.
const (
	MsgProposal = "proposal"
	MsgAccept   = "accept"
	MsgMatched  = "matched"
)

// OutputUnmatched is the output of a processor that stops without a match.
const OutputUnmatched = "unmatched"

// MatchedOutput returns the output of a processor matched over the given
// port.
func MatchedOutput(port sim.Port) string {
	return fmt.Sprintf("matched to port %d", port)
}

// A Processor runs the bipartite maximal matching algorithm at one vertex.
type Processor struct {
	degree int
	color  Color
	state  State
	round  int

	// proposals holds the ports that proposed to a black processor.
	proposals map[sim.Port]bool

	// candidates holds the ports of a black processor whose white neighbors
	// may still propose.
	candidates map[sim.Port]bool

	matchedPort sim.Port
	output      string
	hasOutput   bool
}

// New creates a matching processor with the given degree and color.
func New(degree int, color Color) *Processor {
	if degree < 0 {
		panic("degree must not be negative")
	}

	if color != White && color != Black {
		panic("unknown color " + color.String())
	}

	p := &Processor{
		degree:     degree,
		color:      color,
		state:      UnmatchedRunning,
		round:      1,
		proposals:  make(map[sim.Port]bool),
		candidates: make(map[sim.Port]bool, degree),
	}

	for i := 1; i <= degree; i++ {
		p.candidates[sim.Port(i)] = true
	}

	return p
}

// Factory creates matching processors for a network. The input data of each
// vertex must be its Color.
func Factory(degree int, input any) (sim.Processor, error) {
	color, ok := input.(Color)
	if !ok || (color != White && color != Black) {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidColor, input)
	}

	return New(degree, color), nil
}

func (p *Processor) String() string {
	return fmt.Sprintf("MaxMatcher[%s](d=%d,state=%s)",
		p.color, p.degree, p.state)
}

// Degree returns the number of ports of the processor.
func (p *Processor) Degree() int {
	return p.degree
}

// Color returns the color of the processor.
func (p *Processor) Color() Color {
	return p.color
}

// State returns the current state of the processor.
func (p *Processor) State() State {
	return p.state
}

// Round returns the round the processor is in. Rounds start from 1.
func (p *Processor) Round() int {
	return p.round
}

// MatchedPort returns the port the processor is matched over, if any.
func (p *Processor) MatchedPort() (sim.Port, bool) {
	return p.matchedPort, p.matchedPort > 0
}

// Proposals returns the ports that proposed, in increasing order.
func (p *Processor) Proposals() []sim.Port {
	return slices.Sorted(maps.Keys(p.proposals))
}

// Candidates returns the ports that may still propose, in increasing order.
func (p *Processor) Candidates() []sim.Port {
	return slices.Sorted(maps.Keys(p.candidates))
}

// Output returns the output of the processor.
func (p *Processor) Output() (string, bool) {
	return p.output, p.hasOutput
}

// situation is the part of the processor state that selects its behavior in
// a round.
type situation struct {
	color Color
	odd   bool
	state State
}

var (
	whiteProposing  = situation{White, true, UnmatchedRunning}
	whiteAnnouncing = situation{White, true, MatchedRunning}
	whiteWaiting    = situation{White, false, UnmatchedRunning}
	blackCollecting = situation{Black, true, UnmatchedRunning}
	blackAccepting  = situation{Black, false, UnmatchedRunning}
)

func (p *Processor) situation() situation {
	return situation{
		color: p.color,
		odd:   p.parity() == 1,
		state: p.state,
	}
}

// k is the index of the round pair the processor is in. Rounds 2k-1 and 2k
// share the same k.
func (p *Processor) k() int {
	return (p.round + 1) / 2
}

func (p *Processor) parity() int {
	return p.round % 2
}

// exhausted tells if a white processor has proposed to all its ports.
func (p *Processor) exhausted() bool {
	return p.k() > p.degree
}

// noCandidates tells if no white neighbor of a black processor can propose
// anymore.
func (p *Processor) noCandidates() bool {
	return len(p.candidates) == 0
}

// isLowestProposer tells if the port is the lowest port that proposed.
func (p *Processor) isLowestProposer(port sim.Port) bool {
	if len(p.proposals) == 0 {
		return false
	}

	return port == slices.Min(slices.Collect(maps.Keys(p.proposals)))
}

// Send returns the message for the given port in the current round.
//
// A black processor that accepts a proposal becomes matched while sending the
// acceptance, in the same round. The send phase of the network therefore
// changes the state of black processors.
func (p *Processor) Send(port sim.Port) string {
	switch p.situation() {
	case whiteProposing:
		if !p.exhausted() && port == sim.Port(p.k()) {
			return MsgProposal
		}
	case whiteAnnouncing:
		return MsgMatched
	case blackAccepting:
		if p.isLowestProposer(port) {
			p.enterMatchedRunning(port)
			return MsgAccept
		}
	}

	return ""
}

// Receive handles a message that arrives at the given port.
func (p *Processor) Receive(port sim.Port, msg string) error {
	if port < 1 || int(port) > p.degree {
		return fmt.Errorf("%w: port %d, degree %d",
			ErrInvalidPort, port, p.degree)
	}

	switch p.situation() {
	case blackCollecting:
		switch msg {
		case MsgMatched:
			delete(p.candidates, port)
		case MsgProposal:
			p.proposals[port] = true
		}
	case whiteWaiting:
		if msg == MsgAccept {
			p.enterMatchedRunning(port)
		}
	}

	return nil
}

// Compute finishes the current round and moves to the next one.
func (p *Processor) Compute() error {
	switch p.situation() {
	case whiteProposing:
		if p.exhausted() {
			p.enterUnmatchedStopped()
		}
	case whiteAnnouncing:
		err := p.enterMatchedStopped()
		if err != nil {
			return err
		}
	case blackAccepting:
		if p.noCandidates() {
			p.enterUnmatchedStopped()
		}
	}

	p.round++

	return nil
}

func (p *Processor) enterMatchedRunning(port sim.Port) {
	p.state = MatchedRunning
	p.matchedPort = port
	p.setOutput(MatchedOutput(port))
}

func (p *Processor) enterUnmatchedStopped() {
	p.state = UnmatchedStopped
	p.setOutput(OutputUnmatched)
}

func (p *Processor) enterMatchedStopped() error {
	if p.matchedPort == 0 && !p.hasOutput {
		return fmt.Errorf("%s in round %d: %w", p, p.round, ErrNoMatchedPort)
	}

	p.state = MatchedStopped
	if !p.hasOutput {
		p.setOutput(MatchedOutput(p.matchedPort))
	}

	return nil
}

func (p *Processor) setOutput(output string) {
	if p.hasOutput {
		panic("output of a matching processor is set twice")
	}

	p.output = output
	p.hasOutput = true
}
