//go:build !linux && !darwin

package sdcard

import "errors"

func mount(image, dir string) error {
	return errors.New("sdcard: fuse mount not supported on this platform")
}
