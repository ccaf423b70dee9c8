// Package tui renders a break in the terminal and turns key presses and mouse gestures into modal intents.
package tui

import (
	"time"

	"github.com/burhanyldz/zindekal/config"
	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/burhanyldz/zindekal/key"
	"github.com/burhanyldz/zindekal/modal"
	"github.com/burhanyldz/zindekal/player"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Session config.Session
	Open    modal.OpenOptions
	Player  player.Options
}

// postedMsg carries a closure posted to the event loop; Update runs it.
type postedMsg func()

// Run opens the break and blocks until it is closed.
func Run(options *Options) error {
	b := newBubble(options)
	program := tea.NewProgram(b, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Posting happens from timer and mpv goroutines only, never from inside Update.
	loop := eventloop.NewWithPoster(clockwork.NewRealClock(), func(fn func()) {
		program.Send(postedMsg(fn))
	})

	m, err := modal.New(options.Session, modal.Deps{
		Scheduler:        loop,
		Audio:            player.NewAudioFactory(loop, options.Player),
		Surfaces:         player.NewSurfaces(loop, options.Player),
		Renderer:         modal.RendererFunc(b.invalidate),
		Hooks:            hooks{},
		ManualSeekWindow: time.Duration(viper.GetInt(key.SeekManualWindow)) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	b.attach(m)

	_, err = program.Run()
	m.Destroy()
	return err
}
