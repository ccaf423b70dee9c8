package tui

import (
	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// keymap switches its help with the visible tab.
type keymap struct {
	tab media.Tab

	close, forceQuit,
	nextTab, prevTab,
	nextCategory, prevCategory,
	play, toggle,
	nextTrack, prevTrack,
	seekForward, seekBackward,
	volumeUp, volumeDown, mute, volumePopup,
	filter, back,
	up, down, top, bottom,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		close: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "close"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		nextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		prevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		nextCategory: key.NewBinding(
			key.WithKeys("]", "right", "l"),
			key.WithHelp("→", "next category"),
		),
		prevCategory: key.NewBinding(
			key.WithKeys("[", "left", "h"),
			key.WithHelp("←", "prev category"),
		),
		play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		nextTrack: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next track"),
		),
		prevTrack: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev track"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+5s"),
		),
		seekBackward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-5s"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		volumePopup: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "volume"),
		),
		filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *keymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.tab {
	case media.TabExercise:
		return h(k.play, k.toggle, k.nextCategory, k.nextTab, k.close),
			h(k.play, k.toggle, k.nextCategory, k.prevCategory, k.filter, k.nextTab, k.prevTab, k.close, k.forceQuit)
	case media.TabMusic:
		return h(k.play, k.toggle, k.nextTrack, k.prevTrack, k.volumePopup, k.close),
			h(k.play, k.toggle, k.nextTrack, k.prevTrack, k.seekForward, k.seekBackward,
				k.volumeUp, k.volumeDown, k.mute, k.volumePopup, k.filter, k.nextTab, k.prevTab, k.close, k.forceQuit)
	default:
		return h(k.play, k.toggle, k.nextTab, k.close),
			h(k.play, k.toggle, k.filter, k.nextTab, k.prevTab, k.close, k.forceQuit)
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *keymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

// forList leaves quitting and help to the bubble.
func (k *keymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		Filter:               k.filter,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: key.NewBinding(key.WithKeys("enter", "tab", "up", "down")),
	}
}
