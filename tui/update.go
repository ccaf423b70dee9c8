package tui

import (
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/modal"
	"github.com/burhanyldz/zindekal/seek"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

type openMsg struct{}

const (
	seekStep   = 5.0
	volumeStep = 0.1
)

// Init opens the break once the program is running, so every modal call happens inside Update.
func (b *bubble) Init() tea.Cmd {
	return func() tea.Msg { return openMsg{} }
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case openMsg:
		b.modal.Open(b.options.Open)
		b.opened = true
	case postedMsg:
		msg()
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		b.handleMouse(msg)
	case tea.KeyMsg:
		cmd = b.handleKey(msg)
	}

	b.stale = true
	b.refresh()

	if b.opened && !b.modal.IsOpen() {
		return b, tea.Quit
	}
	return b, cmd
}

func (b *bubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := b.keymap

	if bubblesKey.Matches(msg, k.forceQuit) {
		b.modal.Destroy()
		return tea.Quit
	}

	active := b.activeList()
	if active.FilterState() == list.Filtering {
		return b.updateList(msg)
	}

	if bubblesKey.Matches(msg, k.back) {
		if b.snapshot.VolumePopup {
			b.modal.HideVolumePopup()
			return nil
		}
		if active.FilterState() == list.FilterApplied {
			return b.updateList(msg)
		}
	}

	switch {
	case bubblesKey.Matches(msg, k.close):
		if r := b.modal.Close(); r != modal.Closed {
			log.Debugf("tui: close: %s", r)
		}
		return nil
	case bubblesKey.Matches(msg, k.nextTab):
		b.dispatch(modal.IntentTab, b.cycleTab(1))
		return nil
	case bubblesKey.Matches(msg, k.prevTab):
		b.dispatch(modal.IntentTab, b.cycleTab(-1))
		return nil
	case bubblesKey.Matches(msg, k.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return nil
	}

	if b.snapshot.Current == media.TabMusic {
		return b.handleMusicKey(msg)
	}
	return b.handleVideoKey(msg)
}

func (b *bubble) handleVideoKey(msg tea.KeyMsg) tea.Cmd {
	k := b.keymap

	switch {
	case bubblesKey.Matches(msg, k.play), bubblesKey.Matches(msg, k.toggle):
		item, ok := b.videosC.SelectedItem().(videoItem)
		if !ok {
			return nil
		}
		intent := modal.IntentPlayVideo
		if bubblesKey.Matches(msg, k.toggle) {
			intent = modal.IntentToggleVideo
		}
		b.dispatch(intent, modal.VideoTarget{Src: item.Video.Src, ID: item.Video.ID})
		return nil
	case b.snapshot.Current == media.TabExercise && bubblesKey.Matches(msg, k.nextCategory):
		b.dispatch(modal.IntentCategory, b.cycleCategory(1))
		return nil
	case b.snapshot.Current == media.TabExercise && bubblesKey.Matches(msg, k.prevCategory):
		b.dispatch(modal.IntentCategory, b.cycleCategory(-1))
		return nil
	}

	return b.updateList(msg)
}

func (b *bubble) handleMusicKey(msg tea.KeyMsg) tea.Cmd {
	k := b.keymap
	state := b.snapshot.Music.State

	switch {
	case bubblesKey.Matches(msg, k.play):
		if item, ok := b.tracksC.SelectedItem().(trackItem); ok {
			b.dispatch(modal.IntentSelectTrack, item.index)
		}
	case bubblesKey.Matches(msg, k.toggle):
		b.dispatch(modal.IntentTogglePlay, nil)
	case bubblesKey.Matches(msg, k.nextTrack):
		b.dispatch(modal.IntentNextTrack, nil)
	case bubblesKey.Matches(msg, k.prevTrack):
		b.dispatch(modal.IntentPrevTrack, nil)
	case bubblesKey.Matches(msg, k.seekForward):
		b.seekBy(seekStep)
	case bubblesKey.Matches(msg, k.seekBackward):
		b.seekBy(-seekStep)
	case bubblesKey.Matches(msg, k.volumeUp):
		b.dispatch(modal.IntentSetVolume, lo.Clamp(state.Volume+volumeStep, 0, 1))
	case bubblesKey.Matches(msg, k.volumeDown):
		b.dispatch(modal.IntentSetVolume, lo.Clamp(state.Volume-volumeStep, 0, 1))
	case bubblesKey.Matches(msg, k.mute):
		b.dispatch(modal.IntentToggleMute, nil)
	case bubblesKey.Matches(msg, k.volumePopup):
		b.dispatch(modal.IntentToggleVolume, nil)
	default:
		return b.updateList(msg)
	}
	return nil
}

// seekBy jumps relative to the current position as if the bar had been clicked there.
func (b *bubble) seekBy(delta float64) {
	state := b.snapshot.Music.State
	if state.Duration <= 0 {
		return
	}
	b.dispatch(modal.IntentSeekClick, lo.Clamp((state.CurrentTime+delta)/state.Duration, 0, 1))
}

// handleMouse maps press, drag and release on the progress bar onto seek intents.
func (b *bubble) handleMouse(msg tea.MouseMsg) {
	if b.snapshot.Current != media.TabMusic || b.seek.width <= 0 {
		return
	}

	fraction := seek.Fraction(float64(msg.X), float64(b.seek.left), float64(b.seek.width))

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == b.seek.row:
		b.seek.pressed = true
		b.dispatch(modal.IntentSeekPress, fraction)
	case msg.Action == tea.MouseActionMotion && b.seek.pressed:
		b.dispatch(modal.IntentSeekDrag, fraction)
	case msg.Action == tea.MouseActionRelease && b.seek.pressed:
		b.seek.pressed = false
		b.dispatch(modal.IntentSeekDrag, fraction)
		b.dispatch(modal.IntentSeekRelease, nil)
	}
}

func (b *bubble) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if b.snapshot.Current == media.TabMusic {
		b.tracksC, cmd = b.tracksC.Update(msg)
	} else {
		b.videosC, cmd = b.videosC.Update(msg)
	}
	return cmd
}

func (b *bubble) dispatch(t modal.IntentType, payload any) {
	if !b.modal.Dispatch(modal.Intent{Type: t, Payload: payload}) {
		log.Debugf("tui: %s not applied", t)
	}
}

func (b *bubble) cycleTab(step int) media.Tab {
	tabs := b.snapshot.Tabs
	if len(tabs) == 0 {
		return b.snapshot.Current
	}
	_, i, _ := lo.FindIndexOf(tabs, func(t modal.TabView) bool { return t.Active })
	return tabs[cycle(i+step, len(tabs))].Tab
}

func (b *bubble) cycleCategory(step int) string {
	cats := b.snapshot.Categories
	if len(cats) == 0 {
		return ""
	}
	_, i, _ := lo.FindIndexOf(cats, func(c modal.CategoryView) bool { return c.Active })
	return cats[cycle(i+step, len(cats))].ID
}

func cycle(i, n int) int {
	return ((i % n) + n) % n
}
