//nolint:testpackage // Test needs access to the unexported mailbox messages
package tui

import (
	"testing"
	"testing/synctest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_NextWaitsForPost(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := NewMailbox()
		got := make(chan tea.Msg, 1)

		go func() { got <- b.Next()() }()

		synctest.Wait()
		select {
		case msg := <-got:
			t.Fatalf("Next returned %v before anything was posted", msg)
		default:
		}

		b.Post("hello")
		synctest.Wait()

		require.Len(t, got, 1)
		assert.Equal(t, mailboxMsg{msg: "hello"}, <-got)
	})
}

func TestMailbox_FIFO(t *testing.T) {
	b := NewMailbox()
	for i := range 3 {
		b.Post(i)
	}
	assert.Equal(t, 3, b.Len())

	for i := range 3 {
		assert.Equal(t, mailboxMsg{msg: i}, b.Next()())
	}
	assert.Zero(t, b.Len())
}

func TestMailbox_PostNeverBlocks(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := NewMailbox()
		done := make(chan struct{})

		go func() {
			defer close(done)
			for i := range 10_000 {
				b.Post(i)
			}
		}()

		synctest.Wait()
		select {
		case <-done:
		default:
			t.Fatal("Post blocked without a consumer")
		}
		assert.Equal(t, 10_000, b.Len())
	})
}

func TestMailbox_Close(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		b := NewMailbox()
		got := make(chan tea.Msg, 1)

		go func() { got <- b.Next()() }()
		synctest.Wait()

		b.Close()
		synctest.Wait()

		require.Len(t, got, 1)
		assert.Equal(t, mailboxClosedMsg{}, <-got)

		b.Post("late")
		assert.Zero(t, b.Len(), "posts after close are dropped")

		// Close is idempotent.
		b.Close()
	})
}

func TestMailbox_CloseDrainsQueued(t *testing.T) {
	b := NewMailbox()
	b.Post("queued")
	b.Close()

	assert.Equal(t, mailboxMsg{msg: "queued"}, b.Next()())
	assert.Equal(t, mailboxClosedMsg{}, b.Next()())
}
