// Package where resolves the filesystem locations used by the application.
package where

import (
	"os"
	"path/filepath"

	"github.com/burhanyldz/zindekal/constant"
	"github.com/burhanyldz/zindekal/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory when set.
const EnvConfigPath = "ZINDEKAL_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, creating it when missing.
// It follows os.UserConfigDir unless ZINDEKAL_CONFIG_PATH is set.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Zindekal))
}

// Logs returns the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Session returns the path of the default session file. The file itself may not exist.
func Session() string {
	return filepath.Join(Config(), "session.toml")
}

// Media returns the directory that relative track and video sources of the default session resolve against.
func Media() string {
	return ensureDir(filepath.Join(Config(), "media"))
}

// Temp returns a scratch directory for player IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Zindekal))
}
