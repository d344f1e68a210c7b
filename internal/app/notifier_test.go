package app_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nudge/internal/adapters/tui"
	"go.trai.ch/nudge/internal/app"
	"go.trai.ch/nudge/internal/core/domain"
	"go.trai.ch/nudge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestNotifier_ChangesReachTheWindow(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	monitor := mocks.NewMockMonitor(ctrl)
	monitor.EXPECT().State().Return(domain.StateActive).AnyTimes()
	monitor.EXPECT().Session().Return(uint64(1)).AnyTimes()
	monitor.EXPECT().Root().Return("/w").AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	mailbox := tui.NewMailbox()
	model := tui.NewModel(context.Background(), tui.Deps{Monitor: monitor, Mailbox: mailbox, Logger: log})
	n := app.NewNotifier(mailbox)

	n.Notify(domain.Change{Session: 1, Path: "/w/a.txt", Kind: domain.ChangeModified, At: time.Unix(1, 0)})
	n.Notify(domain.Change{Session: 1, Path: "/w/b.txt", Kind: domain.ChangeCreated, At: time.Unix(2, 0)})

	for range 2 {
		model.Update(mailbox.Next()())
	}

	view := model.View()
	assert.Contains(t, view, "File modified: /w/a.txt")
	assert.Contains(t, view, "1 more")
}

func TestNotifier_DropsAfterClose(t *testing.T) {
	mailbox := tui.NewMailbox()
	n := app.NewNotifier(mailbox)

	mailbox.Close()
	n.Notify(domain.Change{Session: 1, Path: "/w/b.txt"})

	done := make(chan any, 1)
	go func() { done <- mailbox.Next()() }()

	select {
	case msg := <-done:
		// Only the closed marker comes back; the late change was dropped.
		assert.NotContains(t, fmt.Sprintf("%v", msg), "/w/b.txt")
	case <-time.After(time.Second):
		t.Fatal("Next blocked on a closed mailbox")
	}
}
