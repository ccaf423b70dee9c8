package icon

// Icon names a UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Play
	Pause
	Prev
	Next
	Volume
	Muted
	Lock
	Close
	Video
	Music
	Exercise
	Relaxing
	Empty
)

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "+", kaomoji: "(｡•̀ᴗ-)✧", squares: "■"},
	Fail:     {emoji: "❌", nerd: "", plain: "x", kaomoji: "(×_×)", squares: "□"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(・_・;)", squares: "▣"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(ﾉ◕ヮ◕)ﾉ", squares: "▶"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(￣o￣)", squares: "⏸"},
	Prev:     {emoji: "⏮️", nerd: "", plain: "|<", kaomoji: "<(￣︶￣)", squares: "◀"},
	Next:     {emoji: "⏭️", nerd: "", plain: ">|", kaomoji: "(￣︶￣)>", squares: "▶"},
	Volume:   {emoji: "🔊", nerd: "", plain: "vol", kaomoji: "ヽ(°〇°)ﾉ", squares: "▤"},
	Muted:    {emoji: "🔇", nerd: "", plain: "mute", kaomoji: "(－‸ლ)", squares: "▥"},
	Lock:     {emoji: "🔒", nerd: "", plain: "#", kaomoji: "(¬_¬)", squares: "▦"},
	Close:    {emoji: "✖️", nerd: "", plain: "x", kaomoji: "(｀へ´)", squares: "▧"},
	Video:    {emoji: "🎬", nerd: "", plain: "*", kaomoji: "(⌐■_■)", squares: "▨"},
	Music:    {emoji: "🎵", nerd: "", plain: "~", kaomoji: "♪(´▽｀)", squares: "▩"},
	Exercise: {emoji: "🤸", nerd: "", plain: "ex", kaomoji: "ᕙ(⇀‸↼‶)ᕗ", squares: "▣"},
	Relaxing: {emoji: "🌿", nerd: "", plain: "rx", kaomoji: "(￣ー￣)", squares: "▢"},
	Empty:    {emoji: "📽️", nerd: "", plain: "-", kaomoji: "(・・?)", squares: "□"},
}
