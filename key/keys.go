// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount is the number of registered configuration fields.
const DefinedFieldsCount = 19

// Session content - where tabs, categories, videos and tracks of a break come from.
const (
	SessionPath = "session.path"
)

// Break overlay - lifecycle and close lock.
const (
	ModalEnableLock   = "modal.enable_lock"
	ModalLockDuration = "modal.lock_duration"
	ModalInitialTab   = "modal.initial_tab"
)

// Music player.
const (
	MusicAutoplay = "music.autoplay"
	MusicVolume   = "music.volume"
	MusicPlaylist = "music.playlist"
)

// Notifications shown over the overlay.
const (
	ToastEnabled       = "toast.enabled"
	ToastAutoHideDelay = "toast.auto_hide_delay"
)

// Progress bar behavior.
const (
	SeekManualWindow = "seek.manual_window"
)

// Iconography.
const (
	IconsVariant = "icons.variant"
)

// Terminal user interface.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
)

// External mpv backend.
const (
	PlayerBinary          = "player.binary"
	PlayerVideoFullscreen = "player.video_fullscreen"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Non-interactive CLI output.
const (
	CliColored = "cli.colored"
)
