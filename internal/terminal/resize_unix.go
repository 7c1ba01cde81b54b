//go:build !windows

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

func watchResize(_ *Terminal, ch chan struct{}) func() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-sig:
				notify(ch)
			}
		}
	}()
	return func() {
		signal.Stop(sig)
		close(done)
	}
}
