package terminal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// RestoreOnSignal restores the terminal and calls exit if one of sigs arrives
// before the returned stop function is called. The exit code is 128 plus the
// signal number.
func RestoreOnSignal(restore RestoreFunc, exit func(code int), sigs ...os.Signal) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-ch:
			_ = restore()
			code := 1
			if s, ok := sig.(syscall.Signal); ok {
				code = 128 + int(s)
			}
			exit(code)
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
