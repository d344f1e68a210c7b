package tui

import (
	"fmt"

	"go.trai.ch/nudge/internal/core/domain"
)

type dialogKind uint8

const (
	dialogInfo dialogKind = iota
	dialogError
)

// dialog is a modal message box. Dialogs are queued and shown one at a time.
type dialog struct {
	kind  dialogKind
	title string
	body  string
}

func changeDialog(change domain.Change) dialog {
	return dialog{
		kind:  dialogInfo,
		title: "File changed",
		body:  fmt.Sprintf("File %s: %s", change.Kind, change.Path),
	}
}

func errorDialog(err error) dialog {
	return dialog{
		kind:  dialogError,
		title: "Error",
		body:  err.Error(),
	}
}
