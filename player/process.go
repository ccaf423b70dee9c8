package player

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/DexterLB/mpvipc"
	"github.com/burhanyldz/zindekal/constant"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/where"
	"github.com/pkg/errors"
)

const (
	socketTimeout   = 5 * time.Second
	socketWaitDelay = 50 * time.Millisecond
	quitTimeout     = 3 * time.Second
)

// process is one mpv instance and its IPC connection.
type process struct {
	cmd        *exec.Cmd
	conn       *mpvipc.Connection
	socketPath string
	exited     chan struct{}
	stopping   atomic.Bool
}

func socketPath() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "generate socket name")
	}
	return filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Zindekal, b)), nil
}

// spawn starts mpv with args and blocks until its IPC socket accepts connections.
func spawn(opts Options, args []string) (*process, error) {
	sock, err := socketPath()
	if err != nil {
		return nil, err
	}

	args = append([]string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + sock,
	}, args...)

	cmd := exec.Command(opts.binary(), args...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "start %s", opts.binary())
	}

	p := &process{
		cmd:        cmd,
		conn:       mpvipc.NewConnection(sock),
		socketPath: sock,
		exited:     make(chan struct{}),
	}

	go func() {
		_ = cmd.Wait()
		close(p.exited)
	}()

	if err := p.open(); err != nil {
		log.Warnf("player: killing mpv: %s", err)
		_ = killProcess(cmd)
		_ = os.Remove(sock)
		return nil, err
	}

	log.Debugf("player: mpv %d listening on %s", cmd.Process.Pid, sock)
	return p, nil
}

func (p *process) open() error {
	ctx, cancel := context.WithTimeout(context.Background(), socketTimeout)
	defer cancel()

	for {
		err := p.conn.Open()
		if err == nil {
			return nil
		}

		select {
		case <-p.exited:
			return errors.New("mpv exited before its socket was ready")
		case <-ctx.Done():
			return errors.Wrapf(err, "socket %s not ready", p.socketPath)
		case <-time.After(socketWaitDelay):
		}
	}
}

// observe subscribes to property changes; events carry the given ids.
func (p *process) observe(properties map[int]string) error {
	for id, name := range properties {
		if _, err := p.conn.Call("observe_property", id, name); err != nil {
			return errors.Wrapf(err, "observe property %q", name)
		}
	}
	return nil
}

// listen delivers IPC events to fn on the connection's goroutine, and calls
// onExit if the process dies without close having been called.
func (p *process) listen(fn func(*mpvipc.Event), onExit func()) {
	p.conn.ListenForEvents(fn)

	go func() {
		<-p.exited
		if !p.stopping.Load() {
			onExit()
		}
	}()
}

// close asks mpv to quit, kills it after a grace period and removes the socket.
// Only the first call does anything.
func (p *process) close() error {
	if !p.stopping.CompareAndSwap(false, true) {
		return nil
	}

	if _, err := p.conn.Call("quit"); err != nil {
		log.Debugf("player: quit: %s", err)
	}

	var err error
	select {
	case <-p.exited:
	case <-time.After(quitTimeout):
		err = killProcess(p.cmd)
	}

	_ = p.conn.Close()
	_ = os.Remove(p.socketPath)
	return err
}
