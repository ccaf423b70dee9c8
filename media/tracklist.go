package media

// TrackList is an ordered playlist with a cursor.
// Whenever the list is non-empty, 0 <= Current() < Len() holds.
type TrackList struct {
	tracks  []Track
	current int
}

// NewTrackList copies tracks and places the cursor on the clamped start index.
func NewTrackList(tracks []Track, start int) *TrackList {
	l := &TrackList{tracks: append([]Track(nil), tracks...)}
	l.current = l.Clamp(start)
	return l
}

// Len returns the number of tracks.
func (l *TrackList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.tracks)
}

// Empty reports whether the list holds no tracks.
func (l *TrackList) Empty() bool {
	return l.Len() == 0
}

// Current returns the cursor position. It is 0 for an empty list.
func (l *TrackList) Current() int {
	if l == nil {
		return 0
	}
	return l.current
}

// CurrentTrack returns the track under the cursor.
func (l *TrackList) CurrentTrack() (Track, bool) {
	return l.At(l.Current())
}

// At returns the track at index i.
func (l *TrackList) At(i int) (Track, bool) {
	if !l.InRange(i) {
		return Track{}, false
	}
	return l.tracks[i], true
}

// Tracks returns a copy of the tracks.
func (l *TrackList) Tracks() []Track {
	if l == nil {
		return nil
	}
	return append([]Track(nil), l.tracks...)
}

// InRange reports whether i addresses a track.
func (l *TrackList) InRange(i int) bool {
	return i >= 0 && i < l.Len()
}

// Clamp maps i into the valid index range; 0 for an empty list.
func (l *TrackList) Clamp(i int) int {
	switch n := l.Len(); {
	case n == 0, i < 0:
		return 0
	case i >= n:
		return n - 1
	default:
		return i
	}
}

// Next returns the index after i, wrapping from the last track to the first.
func (l *TrackList) Next(i int) int {
	n := l.Len()
	if n == 0 {
		return 0
	}
	if i < n-1 {
		return i + 1
	}
	return 0
}

// Prev returns the index before i, wrapping from the first track to the last.
func (l *TrackList) Prev(i int) int {
	n := l.Len()
	if n == 0 {
		return 0
	}
	if i > 0 {
		return i - 1
	}
	return n - 1
}

// MoveTo places the cursor on i. It reports false and leaves the cursor untouched when i is out of range.
func (l *TrackList) MoveTo(i int) bool {
	if !l.InRange(i) {
		return false
	}
	l.current = i
	return true
}
