//go:build linux || darwin

package sdcard

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"path"
	"syscall"

	"github.com/diskfs/go-diskfs/filesystem"
	"rsc.io/rsc/fuse"
)

func mount(image, dir string) error {
	c, err := fuse.Mount(dir)
	if err != nil {
		return err
	}
	d, cardfs, err := Open(image)
	if err != nil {
		return err
	}
	defer d.Close()

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)

	go c.Serve(&fusefs{cardfs})
	<-sigintr

	cmd := exec.Command("/bin/umount", dir)
	_, err = cmd.CombinedOutput()
	return err
}

// fusefs implements the file system and the root dir Node.
type fusefs struct {
	card filesystem.FileSystem
}

func (p *fusefs) Root() (fuse.Node, fuse.Error) {
	return p, nil
}

func (p *fusefs) Attr() fuse.Attr {
	return fuse.Attr{Mode: os.ModeDir | 0o755}
}

func (p *fusefs) Lookup(name string, intr fuse.Intr) (fuse.Node, fuse.Error) {
	entries, err := p.card.ReadDir("/")
	if err != nil {
		return nil, fuse.EIO
	}
	for _, e := range entries {
		if e.Name() == name {
			return &fusefile{card: p.card, name: name, info: e}, nil
		}
	}
	return nil, errno(fs.ErrNotExist)
}

func (p *fusefs) ReadDir(intr fuse.Intr) ([]fuse.Dirent, fuse.Error) {
	entries, err := p.card.ReadDir("/")
	if err != nil {
		return nil, fuse.EIO
	}
	fuseEntries := make([]fuse.Dirent, len(entries))
	for i, v := range entries {
		fuseEntries[i] = fuse.Dirent{
			Name: v.Name(),
		}
	}
	return fuseEntries, nil
}

func (p *fusefs) Create(req *fuse.CreateRequest, res *fuse.CreateResponse, intr fuse.Intr) (fuse.Node, fuse.Handle, fuse.Error) {
	f, err := p.card.OpenFile(path.Join("/", req.Name), os.O_CREATE|os.O_RDWR)
	if err != nil {
		return nil, nil, errno(err)
	}
	if closer, ok := f.(io.Closer); ok {
		closer.Close()
	}
	entries, err := p.card.ReadDir("/")
	if err != nil {
		return nil, nil, fuse.EIO
	}
	for _, e := range entries {
		if e.Name() == req.Name {
			file := &fusefile{card: p.card, name: req.Name, info: e}
			return file, file, nil
		}
	}
	return nil, nil, fuse.EIO
}

// fusefile implements both Node and Handle.
type fusefile struct {
	card filesystem.FileSystem
	name string
	info os.FileInfo
}

func (p *fusefile) Attr() fuse.Attr {
	return fuse.Attr{
		Mode:  p.info.Mode(),
		Mtime: p.info.ModTime(),
		Size:  uint64(p.info.Size()),
	}
}

func (p *fusefile) ReadAll(intr fuse.Intr) ([]byte, fuse.Error) {
	b, err := ReadFile(p.card, path.Join("/", p.name))
	if err != nil {
		return nil, errno(err)
	}
	return b, nil
}

// Only WriteAll is supported, partial writes against FAT allocation
// boundaries behave unexpectedly.
func (p *fusefile) WriteAll(data []byte, intr fuse.Intr) fuse.Error {
	if err := WriteFile(p.card, path.Join("/", p.name), data); err != nil {
		return errno(err)
	}
	return nil
}

func (p *fusefile) Fsync(req *fuse.FsyncRequest, intr fuse.Intr) fuse.Error {
	return nil
}

func errno(err error) fuse.Error {
	if errors.Is(err, fs.ErrInvalid) {
		return fuse.Errno(syscall.EINVAL)
	} else if errors.Is(err, fs.ErrExist) {
		return fuse.Errno(syscall.EEXIST)
	} else if errors.Is(err, fs.ErrNotExist) {
		return fuse.Errno(syscall.ENOENT)
	} else {
		return fuse.EIO
	}
}
