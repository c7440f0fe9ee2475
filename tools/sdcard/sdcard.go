// Package sdcard creates and manipulates FAT32 images for the brain's
// microSD slot.
package sdcard

import (
	"fmt"
	"io"
	"os"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
)

// DefaultSize is the image size used by mk when none is given. FAT32 needs
// a minimum cluster count, very small images fail to format.
const DefaultSize int64 = 64 << 20

// Create makes a new raw image at path with a single FAT32 filesystem.
func Create(path string, size int64) (*disk.Disk, filesystem.FileSystem, error) {
	d, err := diskfs.Create(path, size, diskfs.Raw, diskfs.SectorSizeDefault)
	if err != nil {
		return nil, nil, err
	}
	fs, err := d.CreateFilesystem(disk.FilesystemSpec{
		Partition:   0,
		FSType:      filesystem.TypeFat32,
		VolumeLabel: "V5",
	})
	if err != nil {
		return nil, nil, err
	}
	return d, fs, nil
}

// Open opens an existing image.
func Open(path string) (*disk.Disk, filesystem.FileSystem, error) {
	d, err := diskfs.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fs, err := d.GetFilesystem(0)
	if err != nil {
		return nil, nil, err
	}
	return d, fs, nil
}

// WriteFile places data at path inside the image, replacing an existing
// file.
func WriteFile(fs filesystem.FileSystem, path string, data []byte) error {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_RDWR)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

// ReadFile returns the contents of path inside the image.
func ReadFile(fs filesystem.FileSystem, path string) ([]byte, error) {
	f, err := fs.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}

func list(fs filesystem.FileSystem, dir string, w io.Writer) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%10d %s %s\n", e.Size(), e.ModTime().Format("2006-01-02 15:04"), e.Name())
	}
	return nil
}
