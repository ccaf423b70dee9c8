// Package ui holds the transient notification shown over the break view.
package ui

import (
	"strings"
	"time"

	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/charmbracelet/lipgloss"
)

// Toast is a single notification line with an auto-hide timer.
// Showing a new message cancels the previous message's pending hide.
type Toast struct {
	hide     *eventloop.Resettable
	delay    time.Duration
	message  string
	onChange func()
}

// NewToast returns a hidden toast. A delay of zero keeps messages up until hidden or replaced.
// onChange, if set, runs whenever visibility or text changes.
func NewToast(sched eventloop.Scheduler, delay time.Duration, onChange func()) *Toast {
	return &Toast{
		hide:     eventloop.NewResettable(sched),
		delay:    delay,
		onChange: onChange,
	}
}

// Show displays message and re-arms the auto-hide timer.
func (t *Toast) Show(message string) {
	t.message = message
	if t.delay > 0 {
		t.hide.Reset(t.delay, t.Hide)
	} else {
		t.hide.Stop()
	}
	t.changed()
}

// Hide removes the toast and cancels its timer.
func (t *Toast) Hide() {
	t.hide.Stop()
	if t.message == "" {
		return
	}
	t.message = ""
	t.changed()
}

// Visible reports whether a message is shown.
func (t *Toast) Visible() bool { return t.message != "" }

// Message returns the shown message.
func (t *Toast) Message() string { return t.message }

func (t *Toast) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}

// View appends the notification to the last line of mainContent.
func (t *Toast) View(mainContent string, style lipgloss.Style) string {
	return Overlay(mainContent, t.message, style)
}

// Overlay appends message to the last line of mainContent. An empty message leaves it untouched.
func Overlay(mainContent, message string, style lipgloss.Style) string {
	if message == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] = lines[len(lines)-1] + "  " + style.Render(message)
	return strings.Join(lines, "\n")
}
