package tracing

import (
	"github.com/sarchlab/portnum/sim"
)

// CollectTrace lets the tracer collect the traces of a domain
func CollectTrace(domain sim.Hookable, tracer Tracer) {
	domain.AcceptHook(&traceHook{t: tracer})
}

// A traceHook forwards network events to a tracer
type traceHook struct {
	t Tracer
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosMsgSend:
		h.t.SendMessage(ctx.Item.(sim.Message))
	case sim.HookPosProcessorHalt:
		h.t.HaltProcessor(ctx.Item.(sim.Halt))
	case sim.HookPosRoundEnd:
		h.t.EndRound(ctx.Item.(sim.RoundSummary))
	case sim.HookPosRunEnd:
		h.t.EndRun(ctx.Item.(sim.Result))
	}
}
