package sim

// A mailbox holds the messages of one round between the send phase and the
// receive phase.
type mailbox struct {
	order []PortBinding
	msgs  map[PortBinding]string
}

func newMailbox(capacity int) *mailbox {
	return &mailbox{
		order: make([]PortBinding, 0, capacity),
		msgs:  make(map[PortBinding]string, capacity),
	}
}

// put stores the message that will be delivered to dst. Each binding receives
// at most one message per round.
func (m *mailbox) put(dst PortBinding, msg string) {
	if _, found := m.msgs[dst]; found {
		panic("port binding already has a message in this round")
	}

	m.order = append(m.order, dst)
	m.msgs[dst] = msg
}

// each visits the messages in the order they were put.
func (m *mailbox) each(f func(dst PortBinding, msg string) error) error {
	for _, dst := range m.order {
		err := f(dst, m.msgs[dst])
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *mailbox) size() int {
	return len(m.order)
}
