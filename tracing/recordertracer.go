package tracing

import (
	"sync"

	"github.com/sarchlab/portnum/datarecording"
	"github.com/sarchlab/portnum/sim"
)

// Names of the tables a RecorderTracer writes.
const (
	MessageTable = "messages"
	HaltTable    = "halts"
	RoundTable   = "rounds"
)

// MessageEntry is a row of the messages table.
type MessageEntry struct {
	Round      int
	FromVertex int
	FromPort   int
	ToVertex   int
	ToPort     int
	Content    string
}

// HaltEntry is a row of the halts table.
type HaltEntry struct {
	Round  int
	Vertex int
	Output string
}

// RoundEntry is a row of the rounds table.
type RoundEntry struct {
	Round  int
	Halted int
	Total  int
}

// RecorderTracer writes the messages, the halts, and the rounds of a run into
// a data recorder. Empty messages are not recorded.
type RecorderTracer struct {
	lock     sync.Mutex
	recorder datarecording.DataRecorder
}

// NewRecorderTracer creates the tables in the recorder and returns a tracer
// that fills them.
func NewRecorderTracer(
	recorder datarecording.DataRecorder,
) *RecorderTracer {
	recorder.CreateTable(MessageTable, MessageEntry{})
	recorder.CreateTable(HaltTable, HaltEntry{})
	recorder.CreateTable(RoundTable, RoundEntry{})

	return &RecorderTracer{recorder: recorder}
}

// SendMessage records a non-empty message.
func (t *RecorderTracer) SendMessage(msg sim.Message) {
	if msg.Content == "" {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.recorder.InsertData(MessageTable, MessageEntry{
		Round:      msg.Round,
		FromVertex: int(msg.From.Vertex),
		FromPort:   int(msg.From.Port),
		ToVertex:   int(msg.To.Vertex),
		ToPort:     int(msg.To.Port),
		Content:    msg.Content,
	})
}

// HaltProcessor records the output of a processor.
func (t *RecorderTracer) HaltProcessor(halt sim.Halt) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.recorder.InsertData(HaltTable, HaltEntry{
		Round:  halt.Round,
		Vertex: int(halt.Vertex),
		Output: halt.Output,
	})
}

// EndRound records how many processors have halted.
func (t *RecorderTracer) EndRound(summary sim.RoundSummary) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.recorder.InsertData(RoundTable, RoundEntry(summary))
}

// EndRun flushes the recorder.
func (t *RecorderTracer) EndRun(_ sim.Result) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.recorder.Flush()
}
