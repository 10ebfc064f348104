//go:build debug

// Package debug includes debugging helpers.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/timandy/routine"
)

// Enabled is true if the library is being built with the debug tag, which
// enables internal assertions and debug logging.
const Enabled = true

// Log prints debugging information to stderr.
//
// operation identifies the trie operation being traced (e.g. "build" or
// "traverse"); format/args describe the event.
func Log(operation string, format string, args ...any) {
	_, file, line, _ := runtime.Caller(1)
	file = filepath.Base(file)

	var buf []byte
	buf = fmt.Appendf(buf, "%s:%d [g%04d] %s: ", file, line, routine.Goid(), operation)
	buf = fmt.Appendf(buf, format, args...)
	buf = append(buf, '\n')

	_, _ = os.Stderr.Write(buf)
	_ = os.Stderr.Sync()
}

// Assert panics if cond is false, but only in debug mode.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("lexime-trie: internal assertion failed: "+format, args...))
	}
}
