package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/burhanyldz/zindekal/filesystem"
	"github.com/burhanyldz/zindekal/key"
	"github.com/burhanyldz/zindekal/media"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// TabPatch overrides the settings of one tab.
type TabPatch struct {
	Title   mo.Option[string]
	Enabled mo.Option[bool]
}

// Patch is a partial Session. Absent fields leave the base untouched; present lists replace the base list.
type Patch struct {
	Title      mo.Option[string]
	InitialTab mo.Option[media.Tab]
	Tabs       map[media.Tab]TabPatch

	Categories     mo.Option[[]media.Category]
	ExerciseVideos mo.Option[[]Video]
	RelaxingVideos mo.Option[[]Video]

	Tracks       mo.Option[[]Track]
	CurrentTrack mo.Option[int]
	Autoplay     mo.Option[bool]
	Volume       mo.Option[float64]
	Playlist     mo.Option[string]

	EnableLock   mo.Option[bool]
	LockDuration mo.Option[int]

	ToastEnabled       mo.Option[bool]
	ToastMessage       mo.Option[string]
	ToastAutoHideDelay mo.Option[int]
}

// Merge returns base with every present field of p applied. Neither argument is modified.
func Merge(base Session, p Patch) Session {
	out := base
	out.Exercise.Categories = slices.Clone(base.Exercise.Categories)
	out.Exercise.Videos = slices.Clone(base.Exercise.Videos)
	out.Relaxing.Videos = slices.Clone(base.Relaxing.Videos)
	out.Music.Tracks = slices.Clone(base.Music.Tracks)

	assign(&out.Title, p.Title)
	assign(&out.InitialTab, p.InitialTab)

	for _, t := range media.Tabs() {
		tp, ok := p.Tabs[t]
		if !ok {
			continue
		}
		c := out.Tabs.Get(t)
		assign(&c.Title, tp.Title)
		assign(&c.Enabled, tp.Enabled)
		out.Tabs.set(t, c)
	}

	assignSlice(&out.Exercise.Categories, p.Categories)
	assignSlice(&out.Exercise.Videos, p.ExerciseVideos)
	assignSlice(&out.Relaxing.Videos, p.RelaxingVideos)

	assignSlice(&out.Music.Tracks, p.Tracks)
	assign(&out.Music.CurrentTrack, p.CurrentTrack)
	assign(&out.Music.Autoplay, p.Autoplay)
	assign(&out.Music.Volume, p.Volume)
	assign(&out.Music.Playlist, p.Playlist)

	assign(&out.Modal.EnableLock, p.EnableLock)
	assign(&out.Modal.LockDuration, p.LockDuration)

	assign(&out.Toast.Enabled, p.ToastEnabled)
	assign(&out.Toast.Message, p.ToastMessage)
	assign(&out.Toast.AutoHideDelay, p.ToastAutoHideDelay)

	return out
}

func assign[T any](dst *T, opt mo.Option[T]) {
	if v, ok := opt.Get(); ok {
		*dst = v
	}
}

func assignSlice[T any](dst *[]T, opt mo.Option[[]T]) {
	if v, ok := opt.Get(); ok {
		*dst = slices.Clone(v)
	}
}

// SettingsPatch carries the behavior settings of the global configuration into a session.
func SettingsPatch() Patch {
	return Patch{
		InitialTab:         mo.Some(media.Tab(viper.GetString(key.ModalInitialTab))),
		Autoplay:           mo.Some(viper.GetBool(key.MusicAutoplay)),
		Volume:             mo.Some(viper.GetFloat64(key.MusicVolume)),
		Playlist:           mo.Some(viper.GetString(key.MusicPlaylist)),
		EnableLock:         mo.Some(viper.GetBool(key.ModalEnableLock)),
		LockDuration:       mo.Some(viper.GetInt(key.ModalLockDuration)),
		ToastEnabled:       mo.Some(viper.GetBool(key.ToastEnabled)),
		ToastAutoHideDelay: mo.Some(viper.GetInt(key.ToastAutoHideDelay)),
	}
}

// ReadPatch reads a session file. The format follows the extension; files without one are read as toml.
// Relative sources resolve against the file's directory.
func ReadPatch(path string) (Patch, error) {
	v := viper.New()
	v.SetFs(filesystem.API())
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}

	if err := v.ReadInConfig(); err != nil {
		return Patch{}, fmt.Errorf("read session %s: %w", path, err)
	}

	p, err := PatchFrom(v)
	if err != nil {
		return Patch{}, fmt.Errorf("decode session %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if videos, ok := p.ExerciseVideos.Get(); ok {
		p.ExerciseVideos = mo.Some(resolveVideos(videos, dir))
	}
	if videos, ok := p.RelaxingVideos.Get(); ok {
		p.RelaxingVideos = mo.Some(resolveVideos(videos, dir))
	}
	if tracks, ok := p.Tracks.Get(); ok {
		p.Tracks = mo.Some(resolveTracks(tracks, dir))
	}
	if pl, ok := p.Playlist.Get(); ok && pl != "" && !filepath.IsAbs(pl) {
		p.Playlist = mo.Some(filepath.Join(dir, pl))
	}

	return p, nil
}

// PatchFrom collects every key set in v.
func PatchFrom(v *viper.Viper) (Patch, error) {
	p := Patch{
		Title:              optional(v, "title", v.GetString),
		InitialTab:         optional(v, "initial_tab", func(k string) media.Tab { return media.Tab(v.GetString(k)) }),
		CurrentTrack:       optional(v, "music.current_track", v.GetInt),
		Autoplay:           optional(v, "music.autoplay", v.GetBool),
		Volume:             optional(v, "music.volume", v.GetFloat64),
		Playlist:           optional(v, "music.playlist", v.GetString),
		EnableLock:         optional(v, "modal.enable_lock", v.GetBool),
		LockDuration:       optional(v, "modal.lock_duration", v.GetInt),
		ToastEnabled:       optional(v, "toast.enabled", v.GetBool),
		ToastMessage:       optional(v, "toast.message", v.GetString),
		ToastAutoHideDelay: optional(v, "toast.auto_hide_delay", v.GetInt),
	}

	for _, t := range media.Tabs() {
		prefix := "tabs." + t.String() + "."
		tp := TabPatch{
			Title:   optional(v, prefix+"title", v.GetString),
			Enabled: optional(v, prefix+"enabled", v.GetBool),
		}
		if tp.Title.IsPresent() || tp.Enabled.IsPresent() {
			if p.Tabs == nil {
				p.Tabs = make(map[media.Tab]TabPatch)
			}
			p.Tabs[t] = tp
		}
	}

	var err error
	if p.Categories, err = optionalList[media.Category](v, "exercise.categories"); err != nil {
		return Patch{}, err
	}
	if p.ExerciseVideos, err = optionalList[Video](v, "exercise.videos"); err != nil {
		return Patch{}, err
	}
	if p.RelaxingVideos, err = optionalList[Video](v, "relaxing.videos"); err != nil {
		return Patch{}, err
	}
	if p.Tracks, err = optionalList[Track](v, "music.tracks"); err != nil {
		return Patch{}, err
	}

	return p, nil
}

func optional[T any](v *viper.Viper, k string, get func(string) T) mo.Option[T] {
	if !v.IsSet(k) {
		return mo.None[T]()
	}
	return mo.Some(get(k))
}

func optionalList[T any](v *viper.Viper, k string) (mo.Option[[]T], error) {
	if !v.IsSet(k) {
		return mo.None[[]T](), nil
	}

	var out []T
	if err := v.UnmarshalKey(k, &out); err != nil {
		return mo.None[[]T](), fmt.Errorf("%s: %w", k, err)
	}
	return mo.Some(out), nil
}
