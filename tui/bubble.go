package tui

import (
	"sort"

	"github.com/burhanyldz/zindekal/key"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/modal"
	"github.com/burhanyldz/zindekal/style"
	"github.com/burhanyldz/zindekal/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// seekBar remembers where the progress bar was last drawn so mouse gestures can be mapped onto it.
type seekBar struct {
	row, left, width int
	pressed          bool
}

// bubble is the bubbletea model wrapping a modal.
type bubble struct {
	modal   *modal.Modal
	options *Options
	keymap  *keymap

	snapshot modal.Snapshot
	stale    bool
	opened   bool

	videosC   list.Model
	tracksC   list.Model
	progressC progress.Model
	volumeC   progress.Model
	helpC     help.Model

	seek seekBar

	width, height int
}

func newBubble(options *Options) *bubble {
	b := &bubble{
		options: options,
		keymap:  newKeymap(),
		stale:   true,
	}

	makeList := func(title string, titleBg lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(style.Text)

		l := list.New([]list.Item{}, delegate, 0, 0)
		l.KeyMap = b.keymap.forList()
		l.Title = title
		l.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(titleBg).Padding(0, 1)
		l.Styles.NoItems = paddingStyle
		l.Filter = fuzzyFilter
		l.FilterInput.Prompt = viper.GetString(key.TUISearchPromptString)
		l.SetShowHelp(false)
		l.SetShowPagination(false)
		l.SetShowStatusBar(false)
		return l
	}

	b.videosC = makeList("Videos", style.Peach)
	b.videosC.SetStatusBarItemName("video", "videos")
	b.tracksC = makeList("Playlist", style.Lavender)
	b.tracksC.SetStatusBarItemName("track", "tracks")

	b.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	b.volumeC = progress.New(progress.WithSolidFill(string(style.AccentColor)), progress.WithoutPercentage())
	b.volumeC.Width = 20
	b.helpC = help.New()

	if w, h, err := util.TerminalSize(); err == nil {
		b.resize(w, h)
	}

	return b
}

func (b *bubble) attach(m *modal.Modal) {
	b.modal = m
	b.stale = true
}

// invalidate is the modal's renderer hook.
func (b *bubble) invalidate() {
	b.stale = true
}

// refresh takes a new snapshot and feeds it into the lists.
func (b *bubble) refresh() {
	if !b.stale || b.modal == nil {
		return
	}
	b.stale = false

	prevTab := b.snapshot.Current
	b.snapshot = b.modal.Snapshot()
	b.keymap.tab = b.snapshot.Current

	if b.snapshot.Current != prevTab {
		b.videosC.ResetFilter()
		b.videosC.ResetSelected()
		b.videosC.Title = b.tabTitle(b.snapshot.Current)
	}

	b.videosC.SetItems(lo.Map(b.snapshot.Videos, func(v modal.VideoView, _ int) list.Item {
		return videoItem{v}
	}))

	music := b.snapshot.Music
	b.tracksC.SetItems(lo.Map(music.Tracks, func(t media.Track, i int) list.Item {
		return trackItem{track: t, index: i, current: i == music.Current, playing: music.State.Playing && i == music.Current}
	}))
}

func (b *bubble) tabTitle(t media.Tab) string {
	for _, v := range b.snapshot.Tabs {
		if v.Tab == t {
			return v.Title
		}
	}
	return util.Capitalize(t.String())
}

// resize propagates terminal dimension changes to all child component models.
func (b *bubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	// header, tabs, categories or player, help
	listHeight := max(b.height-10, 3)
	b.videosC.SetSize(b.width, listHeight)
	b.tracksC.SetSize(b.width, max(listHeight-4, 3))
	b.progressC.Width = max(b.width-16, 10)
	b.helpC.Width = b.width
}

// activeList is the list of the visible tab.
func (b *bubble) activeList() *list.Model {
	if b.snapshot.Current == media.TabMusic {
		return &b.tracksC
	}
	return &b.videosC
}

func (b *bubble) filtering() bool {
	return b.activeList().FilterState() == list.Filtering
}

func fuzzyFilter(term string, targets []string) []list.Rank {
	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	sort.Stable(ranks)
	return lo.Map(ranks, func(r fuzzy.Rank, _ int) list.Rank {
		return list.Rank{Index: r.OriginalIndex}
	})
}
