package app

import (
	"go.trai.ch/nudge/internal/adapters/tui"
	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier hands accepted changes to the window. Notify runs on the watcher
// goroutine and only posts to the mailbox, so it never blocks and never
// touches UI state.
type Notifier struct {
	mailbox *tui.Mailbox
}

// NewNotifier creates a notifier that posts into mailbox.
func NewNotifier(mailbox *tui.Mailbox) *Notifier {
	return &Notifier{mailbox: mailbox}
}

// Notify implements ports.Notifier.
func (n *Notifier) Notify(change domain.Change) {
	n.mailbox.Post(tui.MsgFileChanged{Change: change})
}
