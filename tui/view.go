package tui

import (
	"fmt"
	"strings"

	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/icon"
	"github.com/burhanyldz/zindekal/internal/ui"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/modal"
	"github.com/burhanyldz/zindekal/style"
	"github.com/burhanyldz/zindekal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)
	toastStyle   = lipgloss.NewStyle().Foreground(style.Base).Background(style.WarningColor).Padding(0, 1)
	activeTab    = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	inactiveTab  = lipgloss.NewStyle().Foreground(style.Subtext).Padding(0, 1)
)

func (b *bubble) View() string {
	b.refresh()
	s := b.snapshot

	lines := []string{b.viewHeader(), "", b.viewTabs(), ""}
	b.seek.width = 0

	switch s.Current {
	case media.TabExercise:
		lines = append(lines, b.viewExercise()...)
	case media.TabMusic:
		lines = append(lines, b.viewMusic(len(lines))...)
	default:
		lines = append(lines, b.viewVideos()...)
	}

	return b.renderLines(lines, s.Toast)
}

func (b *bubble) viewHeader() string {
	s := b.snapshot
	header := style.Title(s.Title)

	if !s.Lock.CanClose {
		lockStr := style.Fg(color.Yellow)(fmt.Sprintf("%s %s", icon.Get(icon.Lock), s.Countdown))
		gap := max(b.width-lipgloss.Width(header)-lipgloss.Width(lockStr), 1)
		header += strings.Repeat(" ", gap) + lockStr
	}
	return header
}

func (b *bubble) viewTabs() string {
	return strings.Join(lo.Map(b.snapshot.Tabs, func(t modal.TabView, _ int) string {
		label := tabIcon(t.Tab) + " " + t.Title
		if t.Active {
			return activeTab.Render(label)
		}
		return inactiveTab.Render(label)
	}), " ")
}

func tabIcon(t media.Tab) string {
	switch t {
	case media.TabExercise:
		return icon.Get(icon.Exercise)
	case media.TabMusic:
		return icon.Get(icon.Music)
	default:
		return icon.Get(icon.Relaxing)
	}
}

func (b *bubble) viewExercise() []string {
	s := b.snapshot

	categories := strings.Join(lo.Map(s.Categories, func(c modal.CategoryView, _ int) string {
		label := fmt.Sprintf("%s (%d)", c.Title, c.Count)
		if c.Active {
			return style.Tag(style.Base, style.Peach)(label)
		}
		return style.Faint(label)
	}), " ")

	lines := []string{wordwrap.String(categories, b.width), ""}

	if s.Grid.Empty {
		return append(lines, style.Faint(fmt.Sprintf("%s %s", icon.Get(icon.Empty), s.Grid.Message)))
	}
	return append(lines, b.viewVideos()...)
}

func (b *bubble) viewVideos() []string {
	lines := []string{b.videosC.View()}

	if item, ok := b.videosC.SelectedItem().(videoItem); ok && item.Video.Description != "" {
		lines = append(lines, "", style.Italic(wordwrap.String(item.Video.Description, b.width)))
	}
	return lines
}

// viewMusic renders the player. offset is the number of lines above it, used to place the seek bar.
func (b *bubble) viewMusic(offset int) []string {
	music := b.snapshot.Music

	current, err := lo.Nth(music.Tracks, music.Current)
	if err != nil {
		return []string{style.Faint(fmt.Sprintf("%s no tracks to play", icon.Get(icon.Empty)))}
	}

	nowPlaying := style.Bold(current.Title)
	if artist, ok := current.Artist.Get(); ok {
		nowPlaying += style.Faint(" · " + artist)
	}

	state := music.State
	fraction := 0.0
	if state.Duration > 0 {
		fraction = util.Clamp(state.CurrentTime/state.Duration, 0, 1)
	}

	elapsed := util.FormatClock(state.CurrentTime) + " "
	bar := elapsed + b.progressC.ViewAs(fraction) + " " + util.FormatClock(state.Duration)
	if music.Tooltip {
		bar += " " + style.Fg(color.Yellow)(util.FormatClock(state.CurrentTime))
	}

	lines := []string{
		truncate.StringWithTail(nowPlaying, uint(max(b.width, 0)), "…"),
		"",
	}

	top, _, _, padLeft := paddingStyle.GetPadding()
	b.seek = seekBar{
		row:     top + offset + len(lines),
		left:    padLeft + lipgloss.Width(elapsed),
		width:   b.progressC.Width,
		pressed: b.seek.pressed,
	}
	lines = append(lines, bar, "", b.viewControls())

	if b.snapshot.VolumePopup {
		level := state.Volume
		if state.Muted {
			level = 0
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", icon.Get(icon.Volume), b.volumeC.ViewAs(level), util.Percent(level)))
	}

	return append(lines, "", b.tracksC.View())
}

func (b *bubble) viewControls() string {
	music := b.snapshot.Music
	state := music.State

	playPause := icon.Get(icon.Play)
	if state.Playing {
		playPause = icon.Get(icon.Pause)
	}

	volume := fmt.Sprintf("%s %s", icon.Get(icon.Volume), util.Percent(state.Volume))
	if state.Muted {
		volume = icon.Get(icon.Muted)
	}

	controls := []string{icon.Get(icon.Prev), style.Fg(style.AccentColor)(playPause), icon.Get(icon.Next), "  ", volume}
	if music.Played > 0 {
		controls = append(controls, "  ", style.Faint("listened "+util.FormatClock(float64(music.Played))))
	}
	return strings.Join(controls, " ")
}

func (b *bubble) renderLines(lines []string, toast string) string {
	body := strings.Join(lines, "\n")

	if h := lipgloss.Height(body); b.height > h+1 {
		body += strings.Repeat("\n", b.height-h-1)
	}
	body += "\n" + b.helpC.View(b.keymap)

	return paddingStyle.Render(ui.Overlay(body, toast, toastStyle))
}
