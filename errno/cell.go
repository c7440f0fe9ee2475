package errno

import (
	"sync"

	"github.com/petermattis/goid"
)

// One cell per task, keyed by goroutine id. Cells are created on first use
// and live until the task calls Done.
var cells sync.Map // int64 -> *Errno

func cell() *Errno {
	id := goid.Get()
	if v, ok := cells.Load(id); ok {
		return v.(*Errno)
	}
	v, _ := cells.LoadOrStore(id, new(Errno))
	return v.(*Errno)
}

// Set overwrites the calling task's error cell with e. The previous value is
// discarded, codes never accumulate.
func Set(e Errno) { *cell() = e }

// Get returns the calling task's error cell without clearing it.
func Get() Errno { return *cell() }

// Take returns the calling task's error cell and clears it if set.
func Take() Errno {
	c := cell()
	e := *c
	if e != 0 {
		*c = 0
	}
	return e
}

// Clear resets the calling task's error cell.
func Clear() { *cell() = 0 }

// SetOutOfMemory records the out of memory condition in the calling task's
// error cell, overwriting any previous code. It is the reporting hook for
// allocation failures in the C runtime.
func SetOutOfMemory() { Set(ENOMEM) }

// Done releases the calling task's cell. Long running programs that spawn
// short lived tasks should call it on task exit.
func Done() { cells.Delete(goid.Get()) }
