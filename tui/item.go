package tui

import (
	"fmt"
	"strings"

	"github.com/burhanyldz/zindekal/icon"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/modal"
	"github.com/burhanyldz/zindekal/slot"
	"github.com/burhanyldz/zindekal/style"
	"github.com/charmbracelet/lipgloss"
)

// videoItem is a video card in a list.
type videoItem struct {
	modal.VideoView
}

// trackItem is a playlist entry; index is its position in the full playlist.
type trackItem struct {
	track   media.Track
	index   int
	current bool
	playing bool
}

func (v videoItem) Title() string {
	title := v.Video.Title
	if mark := stateMark(v.State); mark != "" {
		title = fmt.Sprintf("%s %s", mark, title)
	}
	if v.Pending {
		title += " " + style.Faint("(opening)")
	}
	return title
}

func (v videoItem) Description() string {
	var parts []string
	if v.Video.Duration != "" {
		parts = append(parts, v.Video.Duration)
	}
	if v.State.Live() {
		parts = append(parts, v.State.String())
	}
	if v.Fullscreen {
		parts = append(parts, "fullscreen")
	}
	return lipgloss.NewStyle().Foreground(style.FaintColor).Render(strings.Join(parts, " • "))
}

func (v videoItem) FilterValue() string { return v.Video.Title }

func stateMark(s slot.State) string {
	switch s {
	case slot.Playing:
		return lipgloss.NewStyle().Foreground(style.AccentColor).Render(icon.Get(icon.Play))
	case slot.Paused, slot.Ended:
		return icon.Get(icon.Pause)
	case slot.Loading:
		return icon.Get(icon.Video)
	case slot.Failed:
		return lipgloss.NewStyle().Foreground(style.ErrorColor).Render(icon.Get(icon.Fail))
	default:
		return ""
	}
}

func (t trackItem) Title() string {
	title := t.track.Title
	if t.current {
		mark := icon.Get(icon.Pause)
		if t.playing {
			mark = icon.Get(icon.Play)
		}
		title = lipgloss.NewStyle().Foreground(style.AccentColor).Render(mark + " " + title)
	}
	return title
}

func (t trackItem) Description() string {
	var parts []string
	if artist, ok := t.track.Artist.Get(); ok {
		parts = append(parts, artist)
	}
	if t.track.Duration != "" {
		parts = append(parts, t.track.Duration)
	}
	return lipgloss.NewStyle().Foreground(style.FaintColor).Render(strings.Join(parts, " • "))
}

func (t trackItem) FilterValue() string {
	if artist, ok := t.track.Artist.Get(); ok {
		return t.track.Title + " " + artist
	}
	return t.track.Title
}
