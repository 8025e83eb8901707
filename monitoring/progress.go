package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/portnum/sim"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// SetFinished sets the number of finished elements.
func (b *ProgressBar) SetFinished(finished uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished = finished
}

// progressHook moves the progress bars of a network as rounds complete and
// processors halt.
type progressHook struct {
	rounds *ProgressBar
	halts  *ProgressBar
}

func (h *progressHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosRoundEnd:
		h.rounds.SetFinished(uint64(ctx.Item.(sim.RoundSummary).Round))
	case sim.HookPosProcessorHalt:
		h.halts.IncrementFinished(1)
	}
}
