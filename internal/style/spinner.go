package style

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var frames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

// Spinner animates a progress message on a terminal. On any other writer it
// prints each message once on its own line.
type Spinner struct {
	w     io.Writer
	isTTY bool

	mu  sync.Mutex
	msg string

	done chan struct{}
	wg   sync.WaitGroup
}

// StartSpinner shows msg until Stop is called.
func StartSpinner(w io.Writer, msg string) *Spinner {
	s := &Spinner{w: w, msg: msg, done: make(chan struct{})}
	if f, ok := w.(*os.File); ok {
		s.isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if !s.isTTY {
		fmt.Fprintln(w, msg)
		return s
	}

	s.wg.Add(1)
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer s.wg.Done()
	tick := time.NewTicker(80 * time.Millisecond)
	defer tick.Stop()
	for i := 0; ; i++ {
		s.mu.Lock()
		fmt.Fprintf(s.w, "\r\033[K%s %s", Dim.Render(frames[i%len(frames)]), s.msg)
		s.mu.Unlock()
		select {
		case <-s.done:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-tick.C:
		}
	}
}

// SetMessage replaces the message shown next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	if !s.isTTY {
		fmt.Fprintln(s.w, msg)
		return
	}
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop clears the spinner line. It is safe to call more than once.
func (s *Spinner) Stop() {
	if !s.isTTY {
		return
	}
	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}
	s.wg.Wait()
}
