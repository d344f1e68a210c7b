package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Mailbox is an unbounded queue that carries messages from background
// goroutines into the bubbletea loop. Post never blocks; the model drains the
// queue one message at a time through the command returned by Next.
type Mailbox struct {
	mu     sync.Mutex
	items  []any
	signal chan struct{}
	closed chan struct{}
	once   sync.Once
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		signal: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

// Post enqueues msg. Messages posted after Close are dropped.
func (b *Mailbox) Post(msg any) {
	select {
	case <-b.closed:
		return
	default:
	}

	b.mu.Lock()
	b.items = append(b.items, msg)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Next returns a command that waits for the next message.
func (b *Mailbox) Next() tea.Cmd {
	return func() tea.Msg {
		for {
			if msg, ok := b.pop(); ok {
				return mailboxMsg{msg: msg}
			}
			select {
			case <-b.signal:
			case <-b.closed:
				if msg, ok := b.pop(); ok {
					return mailboxMsg{msg: msg}
				}
				return mailboxClosedMsg{}
			}
		}
	}
}

// Close wakes up a pending Next and rejects further posts.
func (b *Mailbox) Close() {
	b.once.Do(func() { close(b.closed) })
}

func (b *Mailbox) pop() (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) == 0 {
		return nil, false
	}
	msg := b.items[0]
	b.items[0] = nil
	b.items = b.items[1:]
	return msg, true
}
