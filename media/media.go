// Package media defines the immutable session content shared by every playback component: tracks, videos, categories and tabs.
package media

import (
	"errors"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	// ErrPlaybackBlocked is reported when the backend refuses unattended playback.
	// Callers recover locally; it is never shown to the user.
	ErrPlaybackBlocked = errors.New("playback blocked by autoplay policy")

	// ErrNoSource is reported when a track or video has a missing or invalid src.
	ErrNoSource = errors.New("missing media source")
)

// Tab identifies one of the overlay tabs.
type Tab string

const (
	TabExercise Tab = "exercise"
	TabMusic    Tab = "music"
	TabRelaxing Tab = "relaxing"
)

// Tabs returns the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabExercise, TabMusic, TabRelaxing}
}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	return lo.Contains(Tabs(), t)
}

func (t Tab) String() string {
	return string(t)
}

// Track is a single entry of the music playlist.
type Track struct {
	ID       string            `json:"id"`
	Src      string            `json:"src"`
	Title    string            `json:"title"`
	Artist   mo.Option[string] `json:"artist"`
	Duration string            `json:"duration"`
}

// HasSource reports whether the track can be handed to a playback backend.
func (t Track) HasSource() bool {
	return strings.TrimSpace(t.Src) != ""
}

// VideoRef is a video card shown in the exercise or relaxing grid.
type VideoRef struct {
	ID          string `json:"id"`
	Src         string `json:"src"`
	Thumbnail   string `json:"thumbnail"`
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
}

// HasSource reports whether the video can be handed to a playback backend.
func (v VideoRef) HasSource() bool {
	return strings.TrimSpace(v.Src) != ""
}

// Category groups exercise videos.
type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
}

// FilterByCategory returns the videos whose CategoryID equals id, preserving order.
func FilterByCategory(videos []VideoRef, id string) []VideoRef {
	return lo.Filter(videos, func(v VideoRef, _ int) bool {
		return v.CategoryID == id
	})
}
