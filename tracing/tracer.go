// Package tracing collects what happens in a network while it runs.
package tracing

import "github.com/sarchlab/portnum/sim"

// A Tracer can collect the traces of a run
type Tracer interface {
	SendMessage(msg sim.Message)
	HaltProcessor(halt sim.Halt)
	EndRound(summary sim.RoundSummary)
	EndRun(res sim.Result)
}
