// Package player drives external mpv processes over JSON-IPC.
// It provides the audio source behind the music engine and the video surfaces behind inline video cards.
package player

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/burhanyldz/zindekal/key"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ErrExited is reported when mpv goes away without being asked to, e.g. the user closed its window.
var ErrExited = errors.New("mpv exited")

// Options configure the spawned mpv processes.
type Options struct {
	// Binary is the mpv executable, looked up in PATH when not absolute.
	Binary string
	// Fullscreen starts video windows fullscreen.
	Fullscreen bool
}

// OptionsFromConfig reads the player.* settings.
func OptionsFromConfig() Options {
	return Options{
		Binary:     viper.GetString(key.PlayerBinary),
		Fullscreen: viper.GetBool(key.PlayerVideoFullscreen),
	}
}

func (o Options) binary() string {
	if o.Binary == "" {
		return "mpv"
	}
	return o.Binary
}

// Available resolves the configured binary.
func (o Options) Available() (string, error) {
	path, err := exec.LookPath(o.binary())
	if err != nil {
		return "", errors.Wrapf(err, "find %s", o.binary())
	}
	return path, nil
}

// audioArgs keeps mpv windowless and paused until told otherwise.
func audioArgs() []string {
	return []string{
		"--no-video",
		"--idle=yes",
		"--pause",
		"--keep-open=yes",
		"--volume-max=100",
	}
}

func videoArgs(title string, fullscreen bool) []string {
	title = sanitizeTitle(title)
	args := []string{
		"--force-window=yes",
		"--keep-open=yes",
		"--pause",
		"--idle=yes",
		fmt.Sprintf("--force-media-title=%s", title),
		fmt.Sprintf("--title=%s", title),
	}
	if fullscreen {
		args = append(args, "--fullscreen")
	}
	return args
}

// sanitizeMediaTarget rejects anything mpv could mistake for an option.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty media target")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("control characters in media target")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.Errorf("media target %q looks like a flag", l)
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", errors.Wrap(err, "invalid URL")
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		case "file":
			return filepath.Clean(u.Path), nil
		default:
			return "", errors.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
