package tracing

import (
	"sync"

	"github.com/sarchlab/portnum/sim"
)

// MessageCounter counts the non-empty messages of a run, by content and by
// round.
type MessageCounter struct {
	lock      sync.Mutex
	contents  []string
	byContent map[string]uint64
	byRound   map[int]uint64
	total     uint64
}

// NewMessageCounter creates a new MessageCounter
func NewMessageCounter() *MessageCounter {
	return &MessageCounter{
		byContent: make(map[string]uint64),
		byRound:   make(map[int]uint64),
	}
}

// Contents returns the distinct message contents, in the order they were
// first sent.
func (c *MessageCounter) Contents() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	return append([]string(nil), c.contents...)
}

// Count returns how many messages with the content were sent.
func (c *MessageCounter) Count(content string) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.byContent[content]
}

// CountInRound returns how many messages were sent in a round.
func (c *MessageCounter) CountInRound(round int) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.byRound[round]
}

// Total returns the number of messages sent.
func (c *MessageCounter) Total() uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.total
}

// SendMessage counts a message.
func (c *MessageCounter) SendMessage(msg sim.Message) {
	if msg.Content == "" {
		return
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if _, ok := c.byContent[msg.Content]; !ok {
		c.contents = append(c.contents, msg.Content)
	}

	c.byContent[msg.Content]++
	c.byRound[msg.Round]++
	c.total++
}

// HaltProcessor does nothing
func (c *MessageCounter) HaltProcessor(sim.Halt) {}

// EndRound does nothing
func (c *MessageCounter) EndRound(sim.RoundSummary) {}

// EndRun does nothing
func (c *MessageCounter) EndRun(sim.Result) {}
