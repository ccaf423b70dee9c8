package modal

import (
	"context"

	"github.com/burhanyldz/zindekal/media"
)

// Hooks lets the host react to the break. Every hook runs synchronously on the event loop.
type Hooks interface {
	OnOpen(ctx context.Context, m *Modal)
	OnClose(ctx context.Context, m *Modal)
	OnTabChange(ctx context.Context, m *Modal, next, prev media.Tab)
	OnVideoPlay(ctx context.Context, m *Modal, video media.VideoRef)
	OnVideoPause(ctx context.Context, m *Modal, video media.VideoRef)
	OnAudioPlay(ctx context.Context, m *Modal, track media.Track)
	OnAudioPause(ctx context.Context, m *Modal, track media.Track)
}

// NopHooks ignores everything. Embed it to implement only some hooks.
type NopHooks struct{}

func (NopHooks) OnOpen(context.Context, *Modal) {}
func (NopHooks) OnClose(context.Context, *Modal) {}
func (NopHooks) OnTabChange(context.Context, *Modal, media.Tab, media.Tab) {}
func (NopHooks) OnVideoPlay(context.Context, *Modal, media.VideoRef) {}
func (NopHooks) OnVideoPause(context.Context, *Modal, media.VideoRef) {}
func (NopHooks) OnAudioPlay(context.Context, *Modal, media.Track) {}
func (NopHooks) OnAudioPause(context.Context, *Modal, media.Track) {}
