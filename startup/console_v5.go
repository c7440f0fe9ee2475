//go:build v5

package startup

import (
	"embedded/rtos"
	"os"
	"syscall"

	"github.com/embeddedgo/fs/termfs"
)

// MountConsole mounts a terminal filesystem backed by the bridge's stdio
// channel and reopens the process wide standard files on it. Stdout and
// stderr end up as aliases of the same console, mirroring the shared stream
// below them.
func MountConsole(b *Bridge) error {
	rtos.SetSystemWriter(b.SystemWriter())

	fs := termfs.New("termfs", b.Stdio, b.Stdio)
	rtos.Mount(fs, "/dev/console")

	f, err := os.OpenFile("/dev/console", syscall.O_RDWR, 0)
	if err != nil {
		return err
	}
	os.Stdin = f
	os.Stdout = f
	os.Stderr = os.Stdout
	return nil
}
