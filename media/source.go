package media

import "strings"

// SourceID tags which media source owns playback precedence.
type SourceID string

// AudioSource is the identifier of the single music player.
const AudioSource SourceID = "audio"

const videoPrefix = "video:"

// VideoSource returns the identifier of the inline video playing src.
func VideoSource(src string) SourceID {
	return SourceID(videoPrefix + src)
}

// IsVideo reports whether the identifier names an inline video.
func (id SourceID) IsVideo() bool {
	return strings.HasPrefix(string(id), videoPrefix)
}

// Src returns the media src of a video identifier, or "" for audio.
func (id SourceID) Src() string {
	return strings.TrimPrefix(string(id), videoPrefix)
}

func (id SourceID) String() string {
	return string(id)
}
