package go_func_utils

import (
	"bytes"
	"log"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"
)

// SafeGo runs fn on a new goroutine.
// The terminal UI swallows anything written to stdout, so a panic is captured in
// the logger together with its stack before crashing out again.
func SafeGo(logger *log.Logger, fn func()) {
	go runLogged(logger, fn)
}

// SafeGoWithWaitGroup is SafeGo that registers fn with wg and marks it done when fn returns.
func SafeGoWithWaitGroup(logger *log.Logger, wg *sync.WaitGroup, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		runLogged(logger, fn)
	}()
}

func runLogged(logger *log.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("PANIC: %v\n%s", r, debug.Stack())
			panic(r)
		}
	}()
	fn()
}

// GoroutineID returns the runtime's id for the calling goroutine, or 0 if it
// cannot be read. Only use it to recognise reentrant calls, never for scheduling.
func GoroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]

	// "goroutine 123 [running]:\n..."
	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return 0
	}
	buf = buf[len(prefix):]
	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
