package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Console is the terminal side of the app: it prints output, shows alerts
// and asks yes/no questions. Output is serialized because gate watchers print
// from their own goroutines.
type Console struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in *bufio.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, a...)
}

// Alert shows a message the user has to notice.
func (c *Console) Alert(msg string) {
	c.Println("[!]", msg)
}

func (c *Console) Notice(msg string) {
	c.Println(msg)
}

// Confirm asks prompt and accepts only an explicit yes.
func (c *Console) Confirm(_ context.Context, prompt string) bool {
	answer, err := getSimpleText(c.in, prompt+" [y/N]", c.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Router tracks the current view.
type Router struct {
	mu      sync.Mutex
	current string
	console *Console
}

func NewRouter(console *Console) *Router {
	return &Router{console: console}
}

// Navigate switches to path and announces it. Navigating to the current
// path is silent.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	changed := r.current != path
	r.current = path
	r.mu.Unlock()

	if changed {
		r.console.Println("->", path)
	}
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
