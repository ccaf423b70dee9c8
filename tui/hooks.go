package tui

import (
	"context"

	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/modal"
)

// hooks records the break's lifecycle in the log.
type hooks struct{}

func (hooks) OnOpen(_ context.Context, m *modal.Modal) {
	log.Fields(map[string]any{"tab": m.CurrentTab()}, "break opened")
}

func (hooks) OnClose(_ context.Context, m *modal.Modal) {
	fields := map[string]any{"tab": m.CurrentTab()}
	if e, ok := m.Engine(); ok {
		fields["listened"] = e.PlayedSeconds()
	}
	log.Fields(fields, "break closed")
}

func (hooks) OnTabChange(_ context.Context, _ *modal.Modal, next, prev media.Tab) {
	log.Fields(map[string]any{"from": prev, "to": next}, "tab changed")
}

func (hooks) OnVideoPlay(_ context.Context, _ *modal.Modal, v media.VideoRef) {
	log.Fields(map[string]any{"video": v.ID, "category": v.CategoryID}, "video playing")
}

func (hooks) OnVideoPause(_ context.Context, _ *modal.Modal, v media.VideoRef) {
	log.Fields(map[string]any{"video": v.ID}, "video paused")
}

func (hooks) OnAudioPlay(_ context.Context, _ *modal.Modal, t media.Track) {
	log.Fields(map[string]any{"track": t.ID, "title": t.Title}, "track playing")
}

func (hooks) OnAudioPause(_ context.Context, _ *modal.Modal, t media.Track) {
	log.Fields(map[string]any{"track": t.ID}, "track paused")
}
