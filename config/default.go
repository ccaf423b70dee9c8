package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/constant"
	"github.com/burhanyldz/zindekal/key"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is one application setting with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the variable that overrides the field, e.g. ZINDEKAL_MODAL_LOCK_DURATION.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Zindekal + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type names the kind of value the field accepts.
func (f *Field) Type() string {
	switch f.Value.(type) {
	case float64:
		return "number"
	case []string:
		return "list"
	default:
		return fmt.Sprintf("%T", f.Value)
	}
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"description": f.Description,
		"type":        f.Type(),
		"env":         f.Env(),
	})
}

// Default is the settings registry keyed by viper key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to ZINDEKAL_ variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, ok := Default[k]; ok {
			panic(fmt.Sprintf("config: %s registered twice", k))
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.SessionPath, "", "Session file with tabs, categories, videos and tracks (toml, yaml or json).\nEmpty means session.toml in the config directory, or the built-in session")
	register(key.ModalEnableLock, true, "Keep the break open until the lock countdown ends")
	register(key.ModalLockDuration, 300, "Lock countdown in seconds")
	register(key.ModalInitialTab, string(media.TabExercise), "Tab shown when the break opens.\nAvailable options are: exercise, music, relaxing")
	register(key.MusicAutoplay, false, "Start the first track when the music tab is opened")
	register(key.MusicVolume, 1.0, "Initial music volume. From 0 to 1")
	register(key.MusicPlaylist, "", "m3u playlist to import as the music tracks.\nOverrides the tracks of the session")
	register(key.ToastEnabled, true, "Show a notification when closing is refused")
	register(key.ToastAutoHideDelay, 5000, "Milliseconds before the notification hides itself")
	register(key.SeekManualWindow, 500, "Milliseconds after a seek during which a track end does not auto-advance")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUISearchPromptString, "> ", "Search prompt string to use")
	register(key.PlayerBinary, "mpv", "mpv executable used for music and videos")
	register(key.PlayerVideoFullscreen, false, "Open video windows in fullscreen")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint": style.Faint,
	"key":   style.Fg(color.Purple),
	"label": style.Fg(color.Cyan),
	"value": func(k string) any { return viper.Get(k) },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ key .Key }} {{ faint (printf "(%s)" .Type) }}
{{ faint .Description }}
  {{ label "current" }}  {{ hl (value .Key) }}
  {{ label "default" }}  {{ hl .Value }}
  {{ label "env" }}      {{ .Env }}`))
