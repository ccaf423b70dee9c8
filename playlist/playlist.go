// Package playlist imports and exports m3u playlists as music tracks.
package playlist

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/burhanyldz/zindekal/filesystem"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/util"
	"github.com/dhowden/tag"
	"github.com/pkg/errors"
	"github.com/samber/mo"
	"github.com/ushis/m3u"
)

// Extension is the only playlist format understood.
const Extension = ".m3u"

// Playlist is an imported list of tracks.
type Playlist struct {
	Name   string
	Path   string
	Tracks []media.Track
}

// Import reads the m3u file at path. Relative entries resolve against the playlist's directory.
// Local files are enriched with their embedded title and artist when the playlist lacks them.
func Import(path string) (*Playlist, error) {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return nil, fmt.Errorf("%s: unsupported playlist format", path)
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open playlist")
	}
	defer f.Close()

	entries, err := m3u.Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse playlist")
	}

	pl := Playlist{
		Name:   util.FileStem(path),
		Path:   path,
		Tracks: make([]media.Track, 0, len(entries)),
	}

	dir := filepath.Dir(path)
	for i, entry := range entries {
		if strings.TrimSpace(entry.Path) == "" {
			continue
		}

		src := entry.Path
		if !filesystem.IsRemote(src) && !filepath.IsAbs(src) {
			src = filepath.Join(dir, src)
		}

		track := media.Track{
			ID:    strconv.Itoa(i + 1),
			Src:   src,
			Title: entry.Title,
		}
		if entry.Time > 0 {
			track.Duration = util.FormatClock(float64(entry.Time))
		}

		if !filesystem.IsRemote(src) {
			track = enrich(track)
		}
		if track.Title == "" {
			track.Title = util.FileStem(src)
		}

		pl.Tracks = append(pl.Tracks, track)
	}

	return &pl, nil
}

// enrich fills the title and artist from the file's tags. Untagged or unreadable files are left as they are.
func enrich(track media.Track) media.Track {
	f, err := filesystem.API().Open(track.Src)
	if err != nil {
		log.Debugf("playlist: %s: %v", track.Src, err)
		return track
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if !errors.Is(err, tag.ErrNoTagsFound) {
			log.Debugf("playlist: reading tags of %s: %v", track.Src, err)
		}
		return track
	}

	if track.Title == "" {
		track.Title = m.Title()
	}
	if artist := strings.TrimSpace(m.Artist()); artist != "" {
		track.Artist = mo.Some(artist)
	}
	return track
}

// Write encodes tracks as an extended m3u playlist.
func Write(w io.Writer, tracks []media.Track) error {
	pl := make(m3u.Playlist, 0, len(tracks))
	for _, t := range tracks {
		title := t.Title
		if artist, ok := t.Artist.Get(); ok {
			title = artist + " - " + title
		}
		pl = append(pl, m3u.Track{
			Path:  t.Src,
			Title: title,
			Time:  seconds(t.Duration),
		})
	}

	if _, err := pl.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write playlist")
	}
	return nil
}

// Export writes tracks to a new m3u file at path.
func Export(path string, tracks []media.Track) error {
	f, err := filesystem.API().Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create playlist file")
	}

	if err := Write(f, tracks); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close playlist file")
}

// seconds parses an MM:SS or HH:MM:SS duration; anything else counts as unknown (-1).
func seconds(duration string) int64 {
	parts := strings.Split(strings.TrimSpace(duration), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return -1
	}

	var total int64
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return -1
		}
		total = total*60 + n
	}
	return total
}
