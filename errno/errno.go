// Package errno provides the per task error cell consulted by the system
// call wrappers to report the most recent failure.
//
// Each task observes and mutates only its own cell. The numbering follows
// newlib, which is what the brain's C runtime links against.
package errno

import "strconv"

// Errno is an error code as stored in a task's error cell.
type Errno int32

const (
	EPERM      Errno = 1
	ENOENT     Errno = 2
	EIO        Errno = 5
	EBADF      Errno = 9
	EAGAIN     Errno = 11
	ENOMEM     Errno = 12
	EACCES     Errno = 13
	EBUSY      Errno = 16
	EEXIST     Errno = 17
	EINVAL     Errno = 22
	ENOSPC     Errno = 28
	EROFS      Errno = 30
	ENOSYS     Errno = 88
	EADDRINUSE Errno = 112
	ENOTCONN   Errno = 128
)

func (e Errno) Error() string {
	switch e {
	case 0:
		return "no error"
	case EPERM:
		return "operation not permitted"
	case ENOENT:
		return "no such file or directory"
	case EIO:
		return "i/o error"
	case EBADF:
		return "bad file descriptor"
	case EAGAIN:
		return "resource temporarily unavailable"
	case ENOMEM:
		return "out of memory"
	case EACCES:
		return "permission denied"
	case EBUSY:
		return "device or resource busy"
	case EEXIST:
		return "file exists"
	case EINVAL:
		return "invalid argument"
	case ENOSPC:
		return "no space left on device"
	case EROFS:
		return "read-only file system"
	case ENOSYS:
		return "function not implemented"
	case EADDRINUSE:
		return "address in use"
	case ENOTCONN:
		return "not connected"
	}
	return "errno " + strconv.Itoa(int(e))
}
