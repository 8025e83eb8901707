package vertexcover

import (
	"fmt"
	"strings"

	"github.com/sarchlab/portnum/matching"
	"github.com/sarchlab/portnum/sim"
)

// Outputs of a vertex cover processor.
const (
	OutputInCover    = "part of the cover"
	OutputNotInCover = "not in the cover"
)

// separator joins the messages of the white and the black copies.
const separator = ";"

// A Processor decides whether its vertex is part of the vertex cover.
type Processor struct {
	degree int
	label  any

	white *matching.Processor
	black *matching.Processor

	output    string
	hasOutput bool
}

// New creates a vertex cover processor with the given degree. The label is
// only used to describe the processor.
func New(degree int, label any) *Processor {
	return &Processor{
		degree: degree,
		label:  label,
		white:  matching.New(degree, matching.White),
		black:  matching.New(degree, matching.Black),
	}
}

// Factory creates vertex cover processors for a network. Any input is
// accepted as the label of the processor.
func Factory(degree int, input any) (sim.Processor, error) {
	if degree < 0 {
		return nil, fmt.Errorf("negative degree %d", degree)
	}

	return New(degree, input), nil
}

func (p *Processor) String() string {
	return fmt.Sprintf("VCApprox%v(deg=%d)", p.label, p.degree)
}

// White returns the white copy of the processor.
func (p *Processor) White() *matching.Processor {
	return p.white
}

// Black returns the black copy of the processor.
func (p *Processor) Black() *matching.Processor {
	return p.black
}

// InCover tells if the vertex is part of the cover. The second return value
// is false while the processor has not decided yet.
func (p *Processor) InCover() (bool, bool) {
	if !p.hasOutput {
		return false, false
	}

	return p.output == OutputInCover, true
}

// Output returns the output of the processor.
func (p *Processor) Output() (string, bool) {
	return p.output, p.hasOutput
}

// Send combines the messages both copies send over the port.
func (p *Processor) Send(port sim.Port) string {
	white, black := p.white.Send(port), p.black.Send(port)
	if white == "" && black == "" {
		return ""
	}

	return white + separator + black
}

// Receive splits a combined message. What the white copy of the neighbor sent
// goes to the black copy, and the other way around. An empty message is empty
// for both copies.
func (p *Processor) Receive(port sim.Port, msg string) error {
	if msg == "" {
		msg = separator
	}

	parts := strings.Split(msg, separator)
	if len(parts) != 2 {
		return fmt.Errorf("%w: %q has %d parts",
			ErrMalformedMessage, msg, len(parts))
	}

	err := p.black.Receive(port, parts[0])
	if err != nil {
		return err
	}

	return p.white.Receive(port, parts[1])
}

// Compute runs both copies. The processor decides once both copies have
// stopped or got matched.
func (p *Processor) Compute() error {
	err := p.white.Compute()
	if err != nil {
		return fmt.Errorf("white copy: %w", err)
	}

	err = p.black.Compute()
	if err != nil {
		return fmt.Errorf("black copy: %w", err)
	}

	if p.hasOutput {
		return nil
	}

	whiteOutput, whiteDone := p.white.Output()
	blackOutput, blackDone := p.black.Output()

	if !whiteDone || !blackDone {
		return nil
	}

	p.hasOutput = true
	p.output = OutputInCover
	if whiteOutput == matching.OutputUnmatched &&
		blackOutput == matching.OutputUnmatched {
		p.output = OutputNotInCover
	}

	return nil
}
