// Package debug is a pluggable trace sink. Nothing is logged until a logger
// is installed with SetLogger or SetLoggerf.
package debug

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
)

var (
	mu      sync.RWMutex
	logfunc func(...interface{})
)

func prefix(step int) string {
	_, file, line, ok := runtime.Caller(2 + step)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d: ", filepath.Base(file), line)
}

// SetLogger installs fn as the sink. fn follows fmt.Sprint formatting rules.
// A nil fn disables logging.
func SetLogger(fn func(...interface{})) {
	mu.Lock()
	logfunc = fn
	mu.Unlock()
}

func SetLoggerf(fn func(string, ...interface{})) {
	if fn == nil {
		SetLogger(nil)
		return
	}
	SetLogger(func(args ...interface{}) {
		fn("%s", fmt.Sprint(args...))
	})
}

// Enabled reports whether a sink is installed. Callers with expensive
// arguments check it first.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return logfunc != nil
}

func sink() func(...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	return logfunc
}

func Logf(format string, args ...interface{}) {
	fn := sink()
	if fn == nil {
		return
	}
	fn(prefix(1), fmt.Sprintf(format, args...))
}
