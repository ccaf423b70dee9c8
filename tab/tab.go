// Package tab tracks the visible tab and the selected exercise category, and re-filters the
// exercise grid when the category changes.
package tab

import (
	"github.com/burhanyldz/zindekal/active"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/samber/lo"
)

// EmptyMessage is shown in place of a grid with no videos.
const EmptyMessage = "no videos in this category"

// GridView is the content of the exercise grid.
type GridView struct {
	CategoryID string
	Videos     []media.VideoRef

	// Empty marks the distinct empty state; Message says why.
	Empty   bool
	Message string
}

// Coordinator is the part of the active media arbiter the controller talks to.
type Coordinator interface {
	LeaveTab(tab media.Tab) bool
	DeactivateIf(pred func(active.Participant) bool) bool
}

// Listener is told about tab and grid changes.
type Listener interface {
	TabChanged(next, prev media.Tab)
	GridChanged(view GridView)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) TabChanged(media.Tab, media.Tab) {}
func (NopListener) GridChanged(GridView) {}

// Options configures a Controller.
type Options struct {
	// Enabled lists the usable tabs in display order. Empty means every tab.
	Enabled []media.Tab
	Initial media.Tab

	Categories []media.Category
	Exercise   []media.VideoRef
	Relaxing   []media.VideoRef

	Coordinator Coordinator
	Listener    Listener

	// EnterMusic runs every time the music tab becomes visible, before listeners hear about it.
	// It is where the audio engine gets built lazily.
	EnterMusic func()
}

type waiter struct {
	tab media.Tab
	fn  func(ok bool)
}

// Controller owns the tab and category selection.
type Controller struct {
	opts     Options
	enabled  []media.Tab
	current  media.Tab
	category string
	grid     GridView
	waiters  []*waiter
}

// New returns a controller showing the initial tab, or the first enabled tab when the
// initial one is unusable. No category is selected yet.
func New(opts Options) *Controller {
	c := &Controller{opts: opts}

	c.enabled = lo.Filter(opts.Enabled, func(t media.Tab, _ int) bool { return t.Valid() })
	if len(c.enabled) == 0 {
		c.enabled = media.Tabs()
	}

	c.current = opts.Initial
	if !c.Enabled(c.current) {
		c.current = c.enabled[0]
	}

	if c.opts.Listener == nil {
		c.opts.Listener = NopListener{}
	}

	c.grid = c.filter("")
	return c
}

// Current returns the visible tab.
func (c *Controller) Current() media.Tab { return c.current }

// Visible reports whether t is the visible tab.
func (c *Controller) Visible(t media.Tab) bool { return c.current == t }

// Enabled reports whether t can be shown.
func (c *Controller) Enabled(t media.Tab) bool { return lo.Contains(c.enabled, t) }

// Tabs returns the enabled tabs in display order.
func (c *Controller) Tabs() []media.Tab { return append([]media.Tab(nil), c.enabled...) }

// Category returns the selected category id, "" when none.
func (c *Controller) Category() string { return c.category }

// Categories returns the configured categories.
func (c *Controller) Categories() []media.Category { return c.opts.Categories }

// Grid returns the current exercise grid.
func (c *Controller) Grid() GridView { return c.grid }

// Videos returns what tab t shows: the filtered grid for exercise, everything for relaxing.
func (c *Controller) Videos(t media.Tab) []media.VideoRef {
	switch t {
	case media.TabExercise:
		return c.grid.Videos
	case media.TabRelaxing:
		return c.opts.Relaxing
	default:
		return nil
	}
}

// AllVideos returns every configured video of t, ignoring the category filter.
func (c *Controller) AllVideos(t media.Tab) []media.VideoRef {
	switch t {
	case media.TabExercise:
		return c.opts.Exercise
	case media.TabRelaxing:
		return c.opts.Relaxing
	default:
		return nil
	}
}

// SwitchTab shows t. It is a no-op for unknown, disabled or already visible tabs.
func (c *Controller) SwitchTab(t media.Tab) bool {
	if !t.Valid() || !c.Enabled(t) {
		log.Warnf("tab: %q is not enabled", t)
		return false
	}
	if t == c.current {
		return false
	}

	prev := c.current
	if c.opts.Coordinator != nil {
		c.opts.Coordinator.LeaveTab(prev)
	}
	c.current = t

	switch t {
	case media.TabExercise:
		c.EnsureCategory()
	case media.TabMusic:
		if c.opts.EnterMusic != nil {
			c.opts.EnterMusic()
		}
	}

	c.opts.Listener.TabChanged(t, prev)
	c.flushWaiters()
	return true
}

// EnsureCategory selects the first category when none is selected.
func (c *Controller) EnsureCategory() {
	if c.category != "" || len(c.opts.Categories) == 0 {
		return
	}
	c.SelectCategory(c.opts.Categories[0].ID)
}

// SelectCategory filters the exercise grid by id and re-renders only the grid. A live exercise
// video that is no longer part of the grid is torn down; any other live media is left alone.
// Selecting the current category again re-filters to the same result.
func (c *Controller) SelectCategory(id string) bool {
	if !lo.ContainsBy(c.opts.Categories, func(cat media.Category) bool { return cat.ID == id }) {
		log.Warnf("tab: unknown category %q", id)
		return false
	}

	c.category = id
	c.grid = c.filter(id)

	if c.opts.Coordinator != nil {
		c.opts.Coordinator.DeactivateIf(func(p active.Participant) bool {
			if !p.SourceID().IsVideo() || p.Tab() != media.TabExercise {
				return false
			}
			src := p.SourceID().Src()
			return !lo.ContainsBy(c.grid.Videos, func(v media.VideoRef) bool { return v.Src == src })
		})
	}

	c.opts.Listener.GridChanged(c.grid)
	return true
}

func (c *Controller) filter(id string) GridView {
	view := GridView{CategoryID: id}
	if id == "" {
		view.Videos = c.opts.Exercise
	} else {
		view.Videos = media.FilterByCategory(c.opts.Exercise, id)
	}

	if len(view.Videos) == 0 {
		view.Empty = true
		view.Message = EmptyMessage
	}
	return view
}

// WhenVisible queues fn until t becomes visible; fn(true) then runs right after listeners heard
// about the switch. A switch to another tab drops the waiter with fn(false). When t is already
// visible fn(true) runs immediately.
func (c *Controller) WhenVisible(t media.Tab, fn func(ok bool)) (cancel func()) {
	if c.current == t {
		fn(true)
		return func() {}
	}

	w := &waiter{tab: t, fn: fn}
	c.waiters = append(c.waiters, w)

	return func() {
		c.waiters = lo.Without(c.waiters, w)
	}
}

func (c *Controller) flushWaiters() {
	waiters := c.waiters
	c.waiters = nil

	for _, w := range waiters {
		w.fn(w.tab == c.current)
	}
}

// DropWaiters cancels every pending waiter with fn(false).
func (c *Controller) DropWaiters() {
	for _, w := range c.waiters {
		w.fn(false)
	}
	c.waiters = nil
}
