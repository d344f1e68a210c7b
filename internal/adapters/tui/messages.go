package tui

import "go.trai.ch/nudge/internal/core/domain"

// MsgFileChanged is posted by the notifier for every change that passed the
// cooldown filter.
type MsgFileChanged struct {
	Change domain.Change
}

// MsgSoundDone reports the end of a notification sound. Err is nil on success.
type MsgSoundDone struct {
	Err error
}

// mailboxMsg wraps a message drained from the Mailbox so the model knows to
// wait for the next one.
type mailboxMsg struct {
	msg any
}

// mailboxClosedMsg is returned once the Mailbox is closed and empty.
type mailboxClosedMsg struct{}
