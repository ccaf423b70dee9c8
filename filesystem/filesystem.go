// Package filesystem routes every file access through afero so tests can swap in an in-memory backend.
package filesystem

import (
	"strings"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the operating system backend.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// IsRemote reports whether src is a URL the player streams rather than a local path.
func IsRemote(src string) bool {
	scheme, _, ok := strings.Cut(src, "://")
	return ok && scheme != "" && scheme != "file"
}

// Playable reports whether src can be opened: remote sources are assumed reachable, local ones must be regular files.
func Playable(src string) bool {
	src = strings.TrimSpace(src)
	if src == "" {
		return false
	}
	if IsRemote(src) {
		return true
	}

	info, err := backend.Stat(strings.TrimPrefix(src, "file://"))
	return err == nil && info.Mode().IsRegular()
}
