package sim

import "log"

// LogHookBase provides the logger shared by the hooks that print simulation
// progress.
type LogHookBase struct {
	*log.Logger
}

// RoundLogger is a hook that prints the progress of a network, round by
// round, and the outputs of the processors when the run ends.
type RoundLogger struct {
	LogHookBase

	// LogMessages makes the logger also print every non-empty message.
	LogMessages bool
}

// NewRoundLogger returns a new RoundLogger which will write in to the logger
func NewRoundLogger(logger *log.Logger) *RoundLogger {
	h := new(RoundLogger)
	h.Logger = logger
	return h
}

// Func writes the round information into the logger
func (h *RoundLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosRoundStart:
		h.Printf(">>> Round %d >>>", ctx.Item.(int))
	case HookPosMsgSend:
		h.logMsg(ctx.Item.(Message))
	case HookPosProcessorHalt:
		halt := ctx.Item.(Halt)
		h.Printf("\tProcessor%d halted: %s", halt.Vertex, halt.Output)
	case HookPosRoundEnd:
		s := ctx.Item.(RoundSummary)
		h.Printf("<<< Round %d: %d/%d halted <<<", s.Round, s.Halted, s.Total)
	case HookPosRunEnd:
		h.logResult(ctx.Item.(Result))
	}
}

func (h *RoundLogger) logMsg(msg Message) {
	if !h.LogMessages || msg.Content == "" {
		return
	}

	h.Printf("\t%d:%d -> %d:%d %q",
		msg.From.Vertex, msg.From.Port, msg.To.Vertex, msg.To.Port,
		msg.Content)
}

func (h *RoundLogger) logResult(res Result) {
	if !res.Converged {
		h.Printf(">>> Round limit reached after %d rounds", res.Rounds)
		return
	}

	h.Printf(">>> All done after %d rounds:", res.Rounds)
	for i, output := range res.Outputs {
		h.Printf("\tProcessor%d: %s", i, output)
	}
}
