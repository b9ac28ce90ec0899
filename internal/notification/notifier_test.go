package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestNotifyAutoDismiss(t *testing.T) {
	n := NewNotifier(zaptest.NewLogger(t).Sugar())
	n.SetDuration(5 * time.Millisecond)

	n.Notify("Widget added to cart!")

	current := n.Current()
	assert.NotNil(t, current)
	assert.Equal(t, "Widget added to cart!", current.Message)

	n.WaitIdle()
	assert.Nil(t, n.Current())
}

func TestNotifyReplacesPrevious(t *testing.T) {
	n := NewNotifier(zaptest.NewLogger(t).Sugar())
	n.SetDuration(30 * time.Millisecond)

	n.Notify("first")
	n.Notify("second")

	current := n.Current()
	assert.NotNil(t, current)
	assert.Equal(t, "second", current.Message)
}

func TestStaleTimerDoesNotDismissNewerNotification(t *testing.T) {
	n := NewNotifier(zaptest.NewLogger(t).Sugar())

	n.SetDuration(5 * time.Millisecond)
	n.Notify("first")

	// второе уведомление живет дольше, таймер первого не должен его снять
	n.SetDuration(200 * time.Millisecond)
	n.Notify("second")

	time.Sleep(50 * time.Millisecond)
	current := n.Current()
	assert.NotNil(t, current)
	assert.Equal(t, "second", current.Message)
}

func TestExplicitDismiss(t *testing.T) {
	n := NewNotifier(zaptest.NewLogger(t).Sugar())
	n.SetDuration(time.Minute)

	n.Notify("message")
	n.Dismiss()

	assert.Nil(t, n.Current())
}

func TestButtonFeedbackRestores(t *testing.T) {
	f := NewButtonFeedback(zaptest.NewLogger(t).Sugar())
	f.SetDuration(5 * time.Millisecond)

	button := NewButton("Add to Cart")
	f.Trigger(button, "Added!")

	assert.True(t, button.Disabled)
	assert.Equal(t, "Added!", button.Label)

	f.WaitIdle()

	assert.False(t, button.Disabled)
	assert.Equal(t, "Add to Cart", button.Label)
}

func TestButtonFeedbackOverlappingCycles(t *testing.T) {
	f := NewButtonFeedback(zaptest.NewLogger(t).Sugar())
	f.SetDuration(20 * time.Millisecond)

	button := NewButton("Add to Cart")

	// несколько циклов подряд, до восстановления
	f.Trigger(button, "Added!")
	f.Trigger(button, "Added!")
	f.Trigger(button, "Added!")

	f.WaitIdle()

	// восстановилась именно исходная подпись, не "Added!"
	assert.False(t, button.Disabled)
	assert.Equal(t, "Add to Cart", button.Label)
}
