//go:build windows

package terminal

import "time"

// Windows consoles have no resize signal, so the size is polled.
const resizePoll = 250 * time.Millisecond

func watchResize(t *Terminal, ch chan struct{}) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(resizePoll)
		defer ticker.Stop()
		w, h := t.Size()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if nw, nh := t.Size(); nw != w || nh != h {
					w, h = nw, nh
					notify(ch)
				}
			}
		}
	}()
	return func() { close(done) }
}
