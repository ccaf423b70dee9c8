package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/burhanyldz/zindekal/constant"
	"github.com/burhanyldz/zindekal/filesystem"
	"github.com/burhanyldz/zindekal/key"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/playlist"
	"github.com/burhanyldz/zindekal/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var (
	ErrNoTabs           = errors.New("no tab is enabled")
	ErrUnknownTab       = errors.New("unknown tab")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrMissingID        = errors.New("missing id")
	ErrOutOfRange       = errors.New("value out of range")
	ErrNoTracksForMusic = errors.New("music tab is enabled but there are no tracks")
)

// Session is everything one break shows and how it behaves. It is treated as immutable once a modal is built from it.
type Session struct {
	Title      string    `mapstructure:"title" json:"title"`
	InitialTab media.Tab `mapstructure:"initial_tab" json:"initial_tab" jsonschema:"enum=exercise,enum=music,enum=relaxing"`
	Tabs       Tabs      `mapstructure:"tabs" json:"tabs"`
	Exercise   Exercise  `mapstructure:"exercise" json:"exercise"`
	Relaxing   Relaxing  `mapstructure:"relaxing" json:"relaxing"`
	Music      Music     `mapstructure:"music" json:"music"`
	Modal      Modal     `mapstructure:"modal" json:"modal"`
	Toast      Toast     `mapstructure:"toast" json:"toast"`
}

type TabConfig struct {
	Title   string `mapstructure:"title" json:"title"`
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
}

type Tabs struct {
	Exercise TabConfig `mapstructure:"exercise" json:"exercise"`
	Music    TabConfig `mapstructure:"music" json:"music"`
	Relaxing TabConfig `mapstructure:"relaxing" json:"relaxing"`
}

// Get returns the settings of t.
func (t Tabs) Get(tab media.Tab) TabConfig {
	switch tab {
	case media.TabExercise:
		return t.Exercise
	case media.TabMusic:
		return t.Music
	case media.TabRelaxing:
		return t.Relaxing
	default:
		return TabConfig{}
	}
}

func (t *Tabs) set(tab media.Tab, c TabConfig) {
	switch tab {
	case media.TabExercise:
		t.Exercise = c
	case media.TabMusic:
		t.Music = c
	case media.TabRelaxing:
		t.Relaxing = c
	}
}

type Exercise struct {
	Categories []media.Category `mapstructure:"categories" json:"categories"`
	Videos     []Video          `mapstructure:"videos" json:"videos"`
}

type Relaxing struct {
	Videos []Video `mapstructure:"videos" json:"videos"`
}

// Video is a video card as written in a session file.
type Video struct {
	ID          string `mapstructure:"id" json:"id"`
	Src         string `mapstructure:"src" json:"src"`
	Thumbnail   string `mapstructure:"thumbnail" json:"thumbnail,omitempty"`
	Title       string `mapstructure:"title" json:"title"`
	Duration    string `mapstructure:"duration" json:"duration,omitempty"`
	Description string `mapstructure:"description" json:"description,omitempty"`
	CategoryID  string `mapstructure:"category_id" json:"category_id,omitempty"`
}

// Ref converts v into the playback model.
func (v Video) Ref() media.VideoRef {
	return media.VideoRef{
		ID:          v.ID,
		Src:         v.Src,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Duration:    v.Duration,
		Description: v.Description,
		CategoryID:  v.CategoryID,
	}
}

// Track is a music track as written in a session file. An empty artist means unknown.
type Track struct {
	ID       string `mapstructure:"id" json:"id"`
	Src      string `mapstructure:"src" json:"src"`
	Title    string `mapstructure:"title" json:"title"`
	Artist   string `mapstructure:"artist" json:"artist,omitempty"`
	Duration string `mapstructure:"duration" json:"duration,omitempty"`
}

// Media converts t into the playback model.
func (t Track) Media() media.Track {
	return media.Track{
		ID:       t.ID,
		Src:      t.Src,
		Title:    t.Title,
		Artist:   mo.EmptyableToOption(strings.TrimSpace(t.Artist)),
		Duration: t.Duration,
	}
}

// TrackFromMedia is the inverse of Track.Media.
func TrackFromMedia(t media.Track) Track {
	return Track{
		ID:       t.ID,
		Src:      t.Src,
		Title:    t.Title,
		Artist:   t.Artist.OrEmpty(),
		Duration: t.Duration,
	}
}

type Music struct {
	Tracks       []Track `mapstructure:"tracks" json:"tracks"`
	CurrentTrack int     `mapstructure:"current_track" json:"current_track"`
	Autoplay     bool    `mapstructure:"autoplay" json:"autoplay"`
	Volume       float64 `mapstructure:"volume" json:"volume" jsonschema:"minimum=0,maximum=1"`
	Playlist     string  `mapstructure:"playlist" json:"playlist,omitempty"`
}

type Modal struct {
	EnableLock   bool `mapstructure:"enable_lock" json:"enable_lock"`
	LockDuration int  `mapstructure:"lock_duration" json:"lock_duration" jsonschema:"minimum=0"`
}

type Toast struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	Message string `mapstructure:"message" json:"message"`
	// AutoHideDelay is in milliseconds; zero keeps the toast up until the next one.
	AutoHideDelay int `mapstructure:"auto_hide_delay" json:"auto_hide_delay" jsonschema:"minimum=0"`
}

// EnabledTabs returns the enabled tabs in display order.
func (s Session) EnabledTabs() []media.Tab {
	return lo.Filter(media.Tabs(), func(t media.Tab, _ int) bool { return s.Tabs.Get(t).Enabled })
}

// Tracks returns the music tracks in the playback model.
func (s Session) Tracks() []media.Track {
	return lo.Map(s.Music.Tracks, func(t Track, _ int) media.Track { return t.Media() })
}

// ExerciseVideos returns the exercise videos in the playback model.
func (s Session) ExerciseVideos() []media.VideoRef {
	return lo.Map(s.Exercise.Videos, func(v Video, _ int) media.VideoRef { return v.Ref() })
}

// RelaxingVideos returns the relaxing videos in the playback model.
func (s Session) RelaxingVideos() []media.VideoRef {
	return lo.Map(s.Relaxing.Videos, func(v Video, _ int) media.VideoRef { return v.Ref() })
}

// Validate reports every structural problem of s joined into one error.
// A music tab without tracks is not one of them; see CheckMusic.
func (s Session) Validate() error {
	var errs []error

	if len(s.EnabledTabs()) == 0 {
		errs = append(errs, ErrNoTabs)
	}
	if s.InitialTab != "" && !s.InitialTab.Valid() {
		errs = append(errs, fmt.Errorf("initial_tab %q: %w", s.InitialTab, ErrUnknownTab))
	}

	categories := make(map[string]struct{}, len(s.Exercise.Categories))
	for i, c := range s.Exercise.Categories {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("exercise.categories[%d]: %w", i, ErrMissingID))
			continue
		}
		if _, dup := categories[c.ID]; dup {
			errs = append(errs, fmt.Errorf("exercise.categories %q: %w", c.ID, ErrDuplicateID))
		}
		categories[c.ID] = struct{}{}
	}

	errs = append(errs, validateVideos("exercise.videos", s.Exercise.Videos, categories)...)
	errs = append(errs, validateVideos("relaxing.videos", s.Relaxing.Videos, nil)...)

	if s.Music.Volume < 0 || s.Music.Volume > 1 {
		errs = append(errs, fmt.Errorf("music.volume %v: %w", s.Music.Volume, ErrOutOfRange))
	}
	if s.Modal.LockDuration < 0 {
		errs = append(errs, fmt.Errorf("modal.lock_duration %d: %w", s.Modal.LockDuration, ErrOutOfRange))
	}
	if s.Toast.AutoHideDelay < 0 {
		errs = append(errs, fmt.Errorf("toast.auto_hide_delay %d: %w", s.Toast.AutoHideDelay, ErrOutOfRange))
	}

	return errors.Join(errs...)
}

func validateVideos(field string, videos []Video, categories map[string]struct{}) []error {
	var errs []error
	seen := make(map[string]struct{}, len(videos))

	for i, v := range videos {
		if v.ID == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", field, i, ErrMissingID))
			continue
		}
		if _, dup := seen[v.ID]; dup {
			errs = append(errs, fmt.Errorf("%s %q: %w", field, v.ID, ErrDuplicateID))
		}
		seen[v.ID] = struct{}{}

		if categories == nil || v.CategoryID == "" {
			continue
		}
		if _, ok := categories[v.CategoryID]; !ok {
			errs = append(errs, fmt.Errorf("%s %q: category %q: %w", field, v.ID, v.CategoryID, ErrUnknownCategory))
		}
	}

	return errs
}

// CheckMusic returns ErrNoTracksForMusic when the music tab would show an empty player.
func (s Session) CheckMusic() error {
	if s.Tabs.Music.Enabled && len(s.Music.Tracks) == 0 {
		return ErrNoTracksForMusic
	}
	return nil
}

// DefaultSession decodes the built-in session. Relative sources resolve against where.Media().
func DefaultSession() Session {
	v := viper.New()
	v.SetConfigType("toml")
	lo.Must0(v.ReadConfig(strings.NewReader(constant.DefaultSession)))

	var s Session
	lo.Must0(v.Unmarshal(&s))

	dir := where.Media()
	s.Exercise.Videos = resolveVideos(s.Exercise.Videos, dir)
	s.Relaxing.Videos = resolveVideos(s.Relaxing.Videos, dir)
	s.Music.Tracks = resolveTracks(s.Music.Tracks, dir)
	return s
}

// LoadSession builds the session of a break: the built-in session, then the application settings,
// then the session file at path. An empty path falls back to session.path and then to where.Session()
// when that file exists. A configured playlist replaces the tracks.
func LoadSession(path string) (Session, error) {
	s := Merge(DefaultSession(), SettingsPatch())

	if path == "" {
		path = viper.GetString(key.SessionPath)
	}
	if path == "" {
		if exists, _ := filesystem.API().Exists(where.Session()); exists {
			path = where.Session()
		}
	}

	if path != "" {
		patch, err := ReadPatch(path)
		if err != nil {
			return Session{}, err
		}
		s = Merge(s, patch)
	}

	if s.Music.Playlist != "" {
		pl, err := playlist.Import(s.Music.Playlist)
		if err != nil {
			return Session{}, fmt.Errorf("import playlist %s: %w", s.Music.Playlist, err)
		}
		s.Music.Tracks = lo.Map(pl.Tracks, func(t media.Track, _ int) Track { return TrackFromMedia(t) })
		s.Music.CurrentTrack = 0
		log.Infof("config: imported %d tracks from %s", len(pl.Tracks), pl.Path)
	}

	if err := s.Validate(); err != nil {
		return Session{}, fmt.Errorf("invalid session: %w", err)
	}
	return s, nil
}

func resolve(src, dir string) string {
	if src == "" || filesystem.IsRemote(src) || filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(dir, src)
}

func resolveVideos(videos []Video, dir string) []Video {
	out := slices.Clone(videos)
	for i := range out {
		out[i].Src = resolve(out[i].Src, dir)
		out[i].Thumbnail = resolve(out[i].Thumbnail, dir)
	}
	return out
}

func resolveTracks(tracks []Track, dir string) []Track {
	out := slices.Clone(tracks)
	for i := range out {
		out[i].Src = resolve(out[i].Src, dir)
	}
	return out
}
