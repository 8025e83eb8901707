package sim

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// HookPosRoundStart triggers before the send phase of a round. The item is
// the number of the round, as an int.
var HookPosRoundStart = &HookPos{Name: "Round Start"}

// HookPosMsgSend triggers when a message is put in the mailbox. The item is a
// Message.
var HookPosMsgSend = &HookPos{Name: "Msg Send"}

// HookPosMsgRecv triggers after a processor receives a message. The item is a
// Message.
var HookPosMsgRecv = &HookPos{Name: "Msg Recv"}

// HookPosProcessorHalt triggers when the output of a processor is first seen.
// The item is a Halt.
var HookPosProcessorHalt = &HookPos{Name: "Processor Halt"}

// HookPosRoundEnd triggers after the compute phase of a round. The item is a
// RoundSummary.
var HookPosRoundEnd = &HookPos{Name: "Round End"}

// HookPosRunEnd triggers when Run returns without an error. The item is a
// Result.
var HookPosRunEnd = &HookPos{Name: "Run End"}

// A Message is a piece of information that travels over a link in a round.
type Message struct {
	Round    int
	From, To PortBinding
	Content  string
}

// A Halt reports that a processor produced its output.
type Halt struct {
	Round  int
	Vertex Vertex
	Output string
}

// A RoundSummary describes the network at the end of a round.
type RoundSummary struct {
	Round  int
	Halted int
	Total  int
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
