package trie

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"unsafe"

	"fortio.org/safecast"
)

// ErrResourceExhausted is returned when growing the trie (or a word being
// reconstructed from it) would exceed the node cap or the runtime memory limit.
var ErrResourceExhausted = errors.New("resource exhausted")

// Size of one node in bytes.
const NodeSize = int(unsafe.Sizeof(Trie{}))

// Returns the amount of free memory in bytes, relative to the GOMEMLIMIT soft limit.
func FreeMemory() int64 {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	currentAlloc, err := safecast.Convert[int64](memStats.HeapAlloc)
	if err != nil {
		return -1
	}
	// retrieve the current limit.
	gomemlimit := debug.SetMemoryLimit(-1)
	return gomemlimit - currentAlloc
}

// SizeOk tells whether n more bytes fit under the memory limit, and how many are free.
func SizeOk(n int) (bool, int64) {
	free := FreeMemory()
	return (free >= 0) && (int64(n) < free), free
}

// reserve checks n more bytes can be allocated, collecting garbage once before giving up.
func reserve(n int) error {
	if ok, _ := SizeOk(n); ok {
		return nil
	}
	runtime.GC()
	if ok, free := SizeOk(n); !ok {
		return fmt.Errorf("%w: would exceed memory requesting %d bytes, %d free", ErrResourceExhausted, n, free)
	}
	return nil
}
