package modal

import (
	"github.com/burhanyldz/zindekal/audio"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/slot"
)

// IntentType names a user action reported by the renderer.
type IntentType string

const (
	IntentTab          IntentType = "tab"
	IntentCategory     IntentType = "category"
	IntentPlayVideo    IntentType = "play-video"
	IntentToggleVideo  IntentType = "toggle-video"
	IntentTogglePlay   IntentType = "toggle-play"
	IntentPrevTrack    IntentType = "prev-track"
	IntentNextTrack    IntentType = "next-track"
	IntentSelectTrack  IntentType = "select-track"
	IntentToggleMute   IntentType = "toggle-mute"
	IntentSetVolume    IntentType = "set-volume"
	IntentToggleVolume IntentType = "toggle-volume"
	IntentSeekPress    IntentType = "seek-press"
	IntentSeekDrag     IntentType = "seek-drag"
	IntentSeekRelease  IntentType = "seek-release"
	IntentSeekClick    IntentType = "seek-click"
	IntentClose        IntentType = "close"
)

// Intent is a user action. The payload type depends on Type:
//
//	tab                        media.Tab
//	category                   string (category id)
//	play-video, toggle-video   VideoTarget
//	select-track               int (track index)
//	set-volume                 float64 in [0,1]
//	seek-press/drag/click      float64 fraction of the track
type Intent struct {
	Type    IntentType
	Payload any
}

// VideoTarget identifies a clicked video card.
type VideoTarget struct {
	Src string
	ID  string
}

// Dispatch applies intent. It reports false for unknown intents, malformed payloads and
// every intent while the modal is not open.
func (m *Modal) Dispatch(intent Intent) bool {
	if !m.open {
		log.Debugf("modal: ignoring %s while closed", intent.Type)
		return false
	}

	switch intent.Type {
	case IntentTab:
		t, ok := payload[media.Tab](intent)
		if ok {
			m.tabs.SwitchTab(t)
		}
		return ok
	case IntentCategory:
		id, ok := payload[string](intent)
		if ok {
			m.tabs.SelectCategory(id)
		}
		return ok
	case IntentPlayVideo, IntentToggleVideo:
		target, ok := payload[VideoTarget](intent)
		if !ok {
			return false
		}
		s, found := m.slots.Lookup(target.Src, target.ID, m.tabs.Current())
		if !found {
			log.Warnf("modal: no video card for %q", target.Src)
			return false
		}
		var r slot.Result
		if intent.Type == IntentPlayVideo {
			r = s.Activate()
		} else {
			r = s.TogglePlay()
		}
		log.Debugf("modal: %s %q: %s", intent.Type, target.Src, r)
		return true
	case IntentClose:
		m.Close()
		return true
	case IntentToggleVolume:
		m.ToggleVolumePopup()
		return true
	}

	return m.dispatchAudio(intent)
}

func (m *Modal) dispatchAudio(intent Intent) bool {
	switch intent.Type {
	case IntentTogglePlay, IntentPrevTrack, IntentNextTrack, IntentSelectTrack,
		IntentToggleMute, IntentSetVolume, IntentSeekPress, IntentSeekDrag, IntentSeekRelease, IntentSeekClick:
	default:
		log.Warnf("modal: unknown intent %q", intent.Type)
		return false
	}

	m.ensureEngine(false)
	e := m.engine
	if e == nil {
		log.Debugf("modal: %s without tracks", intent.Type)
		return false
	}

	switch intent.Type {
	case IntentTogglePlay:
		logPlay(e.TogglePlay())
	case IntentPrevTrack:
		e.PreviousTrack()
	case IntentNextTrack:
		e.NextTrack()
	case IntentSelectTrack:
		i, ok := payload[int](intent)
		if !ok {
			return false
		}
		logPlay(e.SelectTrack(i))
	case IntentToggleMute:
		e.ToggleMute()
	case IntentSetVolume:
		v, ok := payload[float64](intent)
		if !ok {
			return false
		}
		e.SetVolume(v)
	case IntentSeekRelease:
		e.ReleaseSeek()
	default:
		f, ok := payload[float64](intent)
		if !ok {
			return false
		}
		switch intent.Type {
		case IntentSeekPress:
			e.PressSeek(f)
		case IntentSeekDrag:
			e.DragSeek(f)
		case IntentSeekClick:
			e.ClickSeek(f)
		}
	}

	m.invalidate()
	return true
}

func logPlay(r audio.PlayResult) {
	if r != audio.Played {
		log.Infof("modal: play %s", r)
	}
}

func payload[T any](intent Intent) (T, bool) {
	v, ok := intent.Payload.(T)
	if !ok {
		log.Warnf("modal: %s: unexpected payload %T", intent.Type, intent.Payload)
	}
	return v, ok
}
