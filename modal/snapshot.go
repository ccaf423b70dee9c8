package modal

import (
	"github.com/burhanyldz/zindekal/audio"
	"github.com/burhanyldz/zindekal/lock"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/slot"
	"github.com/burhanyldz/zindekal/tab"
	"github.com/samber/lo"
)

// Snapshot is everything a renderer needs to draw the modal.
type Snapshot struct {
	Open  bool
	Title string

	Tabs    []TabView
	Current media.Tab

	Categories []CategoryView
	Grid       tab.GridView
	// Videos are the cards of the visible tab.
	Videos []VideoView

	Music MusicView

	Lock      lock.LockState
	Countdown string

	// Toast is the visible notification, "" when hidden.
	Toast       string
	VolumePopup bool

	Active media.SourceID
}

type TabView struct {
	Tab    media.Tab
	Title  string
	Active bool
}

type CategoryView struct {
	media.Category
	Count  int
	Active bool
}

type VideoView struct {
	Video      media.VideoRef
	State      slot.State
	Fullscreen bool
	Pending    bool
}

// MusicView is the player. Ready is false until the player is built; Tracks are listed regardless.
type MusicView struct {
	Ready   bool
	Tracks  []media.Track
	Current int
	State   audio.PlaybackState
	Tooltip bool
	Played  int
}

// Snapshot returns the current view model.
func (m *Modal) Snapshot() Snapshot {
	current := m.tabs.Current()

	s := Snapshot{
		Open:        m.open,
		Title:       m.session.Title,
		Current:     current,
		Grid:        m.tabs.Grid(),
		Lock:        m.lock.State(),
		Countdown:   m.lock.Countdown(),
		Toast:       m.toast.Message(),
		VolumePopup: m.volumePopup,
	}
	if id, ok := m.coord.Active(); ok {
		s.Active = id
	}

	s.Tabs = lo.Map(m.tabs.Tabs(), func(t media.Tab, _ int) TabView {
		return TabView{Tab: t, Title: m.session.Tabs.Get(t).Title, Active: t == current}
	})

	all := m.tabs.AllVideos(media.TabExercise)
	s.Categories = lo.Map(m.tabs.Categories(), func(c media.Category, _ int) CategoryView {
		return CategoryView{
			Category: c,
			Count:    len(media.FilterByCategory(all, c.ID)),
			Active:   c.ID == m.tabs.Category(),
		}
	})

	s.Videos = lo.FilterMap(m.tabs.Videos(current), func(v media.VideoRef, _ int) (VideoView, bool) {
		sl, ok := m.slots.Get(current, v.ID)
		if !ok {
			return VideoView{}, false
		}
		return VideoView{Video: v, State: sl.State(), Fullscreen: sl.Fullscreen(), Pending: sl.Pending()}, true
	})

	s.Music = m.musicView()
	return s
}

func (m *Modal) musicView() MusicView {
	if m.engine == nil {
		return MusicView{
			Tracks:  m.session.Tracks(),
			Current: media.NewTrackList(m.session.Tracks(), m.session.Music.CurrentTrack).Current(),
			State:   audio.PlaybackState{Volume: m.session.Music.Volume},
		}
	}

	return MusicView{
		Ready:   true,
		Tracks:  m.engine.Tracks(),
		Current: m.engine.Current(),
		State:   m.engine.State(),
		Tooltip: m.engine.TooltipVisible(),
		Played:  m.engine.PlayedSeconds(),
	}
}
