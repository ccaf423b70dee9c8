// Package seek implements the press/drag/release state machine behind a progress bar.
//
// A drag only previews positions; the final position is committed on release. Any user
// initiated seek opens a short manual-seek window during which a natural end of track
// must not auto-advance.
package seek

import (
	"time"

	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/samber/lo"
)

const (
	// DefaultManualWindow is how long the manual-seek flag outlives the seek that raised it.
	DefaultManualWindow = 500 * time.Millisecond

	// TooltipLinger is how long the drag tooltip stays visible after a release.
	TooltipLinger = 200 * time.Millisecond
)

// Controller tracks one progress bar.
type Controller struct {
	window  time.Duration
	manualT *eventloop.Resettable
	tipT    *eventloop.Resettable

	dragging bool
	manual   bool
	tooltip  bool
	preview  float64
}

// New returns an idle controller. A non-positive window falls back to DefaultManualWindow.
func New(sched eventloop.Scheduler, window time.Duration) *Controller {
	if window <= 0 {
		window = DefaultManualWindow
	}

	return &Controller{
		window:  window,
		manualT: eventloop.NewResettable(sched),
		tipT:    eventloop.NewResettable(sched),
	}
}

// Fraction maps a pointer position onto [0, 1] relative to a bar starting at left.
func Fraction(x, left, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return lo.Clamp((x-left)/width, 0, 1)
}

// Position converts a fraction into a time within duration.
func Position(fraction, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return lo.Clamp(fraction, 0, 1) * duration
}

// Press begins a drag and returns the preview position. Nothing is committed.
func (c *Controller) Press(fraction, duration float64) float64 {
	c.dragging = true
	c.manual = true
	c.manualT.Stop()

	c.tooltip = true
	c.tipT.Stop()

	c.preview = Position(fraction, duration)
	return c.preview
}

// Drag moves the preview to the latest pointer position. Outside a drag it returns the
// current preview unchanged.
func (c *Controller) Drag(fraction, duration float64) float64 {
	if !c.dragging {
		return c.preview
	}
	c.preview = Position(fraction, duration)
	return c.preview
}

// Release ends the drag. It returns the position to commit, or false when no drag was in progress.
func (c *Controller) Release() (float64, bool) {
	if !c.dragging {
		return 0, false
	}

	c.dragging = false
	c.armWindow()
	c.tipT.Reset(TooltipLinger, func() {
		if !c.dragging {
			c.tooltip = false
		}
	})

	return c.preview, true
}

// Click is a direct seek. The returned position commits immediately and the manual-seek
// window opens. Clicks landing during a drag are ignored and report false.
func (c *Controller) Click(fraction, duration float64) (float64, bool) {
	if c.dragging {
		return 0, false
	}

	c.manual = true
	c.armWindow()
	c.preview = Position(fraction, duration)
	return c.preview, true
}

func (c *Controller) armWindow() {
	c.manualT.Reset(c.window, func() {
		c.manual = false
	})
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// ManualSeek reports whether a user seek happened within the manual-seek window.
func (c *Controller) ManualSeek() bool { return c.manual }

// TooltipVisible reports whether the drag tooltip should be drawn.
func (c *Controller) TooltipVisible() bool { return c.tooltip }

// Preview returns the last previewed position.
func (c *Controller) Preview() float64 { return c.preview }

// ClearManualSeek drops the manual-seek flag and its pending timer.
func (c *Controller) ClearManualSeek() {
	c.manual = false
	c.manualT.Stop()
}

// Reset cancels pending timers and clears every flag.
func (c *Controller) Reset() {
	c.manualT.Stop()
	c.tipT.Stop()
	c.dragging = false
	c.manual = false
	c.tooltip = false
	c.preview = 0
}
