package sim

import (
	"fmt"
	"sort"
	"sync"
)

// A Network owns the processors and the links of one simulation and executes
// them in synchronous rounds.
type Network struct {
	HookableBase

	processors []Processor
	degrees    []int
	links      []Link
	roundLimit int

	stateLock sync.RWMutex
	round     int
	outputs   []string
	haltedAt  []int
	halted    int

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	// roundLock is held while a round changes the processors.
	roundLock sync.Mutex

	singleRunLock sync.Mutex
}

// String returns a one-line summary of the network.
func (n *Network) String() string {
	return fmt.Sprintf("Network: %d processors, %d links",
		len(n.processors), len(n.links))
}

// NumProcessors returns the number of processors in the network.
func (n *Network) NumProcessors() int {
	return len(n.processors)
}

// Processors returns all the processors, indexed by vertex.
func (n *Network) Processors() []Processor {
	return n.processors
}

// Processor returns the processor of the given vertex.
func (n *Network) Processor(v Vertex) Processor {
	return n.processors[v]
}

// Degree returns the degree of the given vertex.
func (n *Network) Degree(v Vertex) int {
	return n.degrees[v]
}

// Links returns the links of the network, in the order of the input edges.
func (n *Network) Links() []Link {
	return n.links
}

// RoundLimit returns the maximum number of rounds Run executes.
func (n *Network) RoundLimit() int {
	return n.roundLimit
}

// PortsOf returns the port bindings of a vertex, sorted by port number.
func (n *Network) PortsOf(v Vertex) []PortBinding {
	ports := make([]PortBinding, 0, n.degrees[v])

	for _, l := range n.links {
		if l.A.Vertex == v {
			ports = append(ports, l.A)
		}

		if l.B.Vertex == v {
			ports = append(ports, l.B)
		}
	}

	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Port < ports[j].Port
	})

	return ports
}

// CurrentRound returns the number of rounds that have completed.
func (n *Network) CurrentRound() int {
	n.stateLock.RLock()
	defer n.stateLock.RUnlock()

	return n.round
}

// HaltedCount returns the number of processors that have produced an output.
func (n *Network) HaltedCount() int {
	n.stateLock.RLock()
	defer n.stateLock.RUnlock()

	return n.halted
}

// Done tells if all the processors have produced an output.
func (n *Network) Done() bool {
	return n.HaltedCount() == len(n.processors)
}

// Run executes rounds until all the processors halt or the round limit is
// reached. Rounds executed by earlier calls to Run or Step count towards the
// limit. An error returned by any processor stops the run.
func (n *Network) Run() (Result, error) {
	n.singleRunLock.Lock()
	defer n.singleRunLock.Unlock()

	for !n.Done() && n.CurrentRound() < n.roundLimit {
		err := n.Step()
		if err != nil {
			return n.Result(), err
		}
	}

	res := n.Result()
	n.InvokeHook(HookCtx{
		Domain: n,
		Pos:    HookPosRunEnd,
		Item:   res,
	})

	return res, nil
}

// Step executes exactly one round: all the sends, then all the receives, and
// then all the computes.
func (n *Network) Step() error {
	n.pauseLock.Lock()
	defer n.pauseLock.Unlock()

	n.roundLock.Lock()
	defer n.roundLock.Unlock()

	round := n.CurrentRound() + 1

	n.InvokeHook(HookCtx{
		Domain: n,
		Pos:    HookPosRoundStart,
		Item:   round,
	})

	box := n.send(round)

	err := n.receive(round, box)
	if err != nil {
		return err
	}

	err = n.compute(round)
	if err != nil {
		return err
	}

	err = n.collectOutputs(round)
	if err != nil {
		return err
	}

	n.InvokeHook(HookCtx{
		Domain: n,
		Pos:    HookPosRoundEnd,
		Item: RoundSummary{
			Round:  round,
			Halted: n.HaltedCount(),
			Total:  len(n.processors),
		},
	})

	return nil
}

func (n *Network) send(round int) *mailbox {
	box := newMailbox(2 * len(n.links))

	for _, l := range n.links {
		n.post(box, round, l.A, l.B)
		n.post(box, round, l.B, l.A)
	}

	return box
}

func (n *Network) post(box *mailbox, round int, src, dst PortBinding) {
	content := n.processors[src.Vertex].Send(src.Port)
	box.put(dst, content)

	n.InvokeHook(HookCtx{
		Domain: n,
		Pos:    HookPosMsgSend,
		Item: Message{
			Round:   round,
			From:    src,
			To:      dst,
			Content: content,
		},
	})
}

func (n *Network) receive(round int, box *mailbox) error {
	peers := n.peerIndex()

	return box.each(func(dst PortBinding, msg string) error {
		err := n.processors[dst.Vertex].Receive(dst.Port, msg)
		if err != nil {
			return fmt.Errorf("round %d, processor %d, port %d: %w",
				round, dst.Vertex, dst.Port, err)
		}

		n.InvokeHook(HookCtx{
			Domain: n,
			Pos:    HookPosMsgRecv,
			Item: Message{
				Round:   round,
				From:    peers[dst],
				To:      dst,
				Content: msg,
			},
		})

		return nil
	})
}

func (n *Network) peerIndex() map[PortBinding]PortBinding {
	if n.NumHooks() == 0 {
		return nil
	}

	peers := make(map[PortBinding]PortBinding, 2*len(n.links))
	for _, l := range n.links {
		peers[l.A] = l.B
		peers[l.B] = l.A
	}

	return peers
}

func (n *Network) compute(round int) error {
	for i, p := range n.processors {
		err := p.Compute()
		if err != nil {
			return fmt.Errorf("round %d, processor %d: %w", round, i, err)
		}
	}

	return nil
}

func (n *Network) collectOutputs(round int) error {
	var halts []Halt

	n.stateLock.Lock()
	for i, p := range n.processors {
		output, ok := p.Output()

		if n.haltedAt[i] > 0 {
			if !ok || output != n.outputs[i] {
				n.stateLock.Unlock()
				return fmt.Errorf("round %d, processor %d: %w",
					round, i, ErrOutputChanged)
			}

			continue
		}

		if !ok {
			continue
		}

		n.outputs[i] = output
		n.haltedAt[i] = round
		n.halted++
		halts = append(halts, Halt{
			Round:  round,
			Vertex: Vertex(i),
			Output: output,
		})
	}
	n.round = round
	n.stateLock.Unlock()

	for _, h := range halts {
		n.InvokeHook(HookCtx{
			Domain: n,
			Pos:    HookPosProcessorHalt,
			Item:   h,
		})
	}

	return nil
}

// Result returns the state of the network after the last completed round.
func (n *Network) Result() Result {
	n.stateLock.RLock()
	defer n.stateLock.RUnlock()

	outputs := make([]string, len(n.outputs))
	copy(outputs, n.outputs)

	haltedAt := make([]int, len(n.haltedAt))
	copy(haltedAt, n.haltedAt)

	return Result{
		Rounds:    n.round,
		Converged: n.halted == len(n.processors),
		Outputs:   outputs,
		HaltedAt:  haltedAt,
	}
}

// Inspect runs f between two rounds, so that f can read the processors while
// another goroutine runs the network. It does not wait for a paused network
// to continue. Hooks must not call Inspect.
func (n *Network) Inspect(f func()) {
	n.roundLock.Lock()
	defer n.roundLock.Unlock()

	f()
}

// Pause prevents the network from starting more rounds.
func (n *Network) Pause() {
	n.isPausedLock.Lock()
	defer n.isPausedLock.Unlock()

	if n.isPaused {
		return
	}

	n.pauseLock.Lock()
	n.isPaused = true
}

// Continue allows the network to start more rounds.
func (n *Network) Continue() {
	n.isPausedLock.Lock()
	defer n.isPausedLock.Unlock()

	if !n.isPaused {
		return
	}

	n.pauseLock.Unlock()
	n.isPaused = false
}

// IsPaused tells if the network is paused.
func (n *Network) IsPaused() bool {
	n.isPausedLock.Lock()
	defer n.isPausedLock.Unlock()

	return n.isPaused
}
