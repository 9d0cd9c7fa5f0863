// Package stamp supplies wall-clock timestamps and goroutine identity
// for log lines. Both channels of the logging facility share this so
// their line prefixes stay consistent.
package stamp

import (
	"bytes"
	"runtime"
	"strconv"
	"time"
)

// Layout is the timestamp layout used in every log line (second resolution).
const Layout = "2006-01-02 15:04:05"

// Now returns the current local wall-clock time formatted with Layout.
func Now() string {
	return time.Now().Format(Layout)
}

var goroutinePrefix = []byte("goroutine ")

// GID returns the runtime ID of the calling goroutine, parsed from the
// goroutine stack header. Distinct goroutines get distinct values.
// Returns 0 if the header cannot be parsed.
func GID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Header looks like "goroutine 123 [running]:".
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(b[:i]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
