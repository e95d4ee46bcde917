// Package notify delivers short user-facing toasts.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notifier receives fire-and-forget messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

var (
	colorGreen = lipgloss.Color("#50FA7B")
	colorRed   = lipgloss.Color("#FF5555")

	successToast = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGreen).
			Foreground(colorGreen).
			Padding(0, 2)

	errorToast = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorRed).
			Foreground(colorRed).
			Bold(true).
			Padding(0, 2)
)

// Console prints toasts as bordered boxes.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Success(msg string) {
	c.print(successToast.Render(msg))
}

func (c *Console) Error(msg string) {
	c.print(errorToast.Render(msg))
}

func (c *Console) print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

// Nop discards every toast.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}

// Func adapts a callback, used by the TUI to turn toasts into messages.
type Func func(ok bool, msg string)

func (f Func) Success(msg string) { f(true, msg) }
func (f Func) Error(msg string)   { f(false, msg) }

// Gate forwards toasts to another notifier. While held it queues them, and the
// target can be swapped, e.g. while a full-screen TUI owns the terminal.
type Gate struct {
	mu     sync.Mutex
	next   Notifier
	held   bool
	queued []func(Notifier)
}

func NewGate(next Notifier) *Gate {
	return &Gate{next: next}
}

func (g *Gate) Success(msg string) {
	g.send(func(n Notifier) { n.Success(msg) })
}

func (g *Gate) Error(msg string) {
	g.send(func(n Notifier) { n.Error(msg) })
}

func (g *Gate) send(fn func(Notifier)) {
	g.mu.Lock()
	if g.held {
		g.queued = append(g.queued, fn)
		g.mu.Unlock()
		return
	}
	next := g.next
	g.mu.Unlock()
	fn(next)
}

// Hold queues toasts until Release.
func (g *Gate) Hold() {
	g.mu.Lock()
	g.held = true
	g.mu.Unlock()
}

// Release delivers queued toasts in order and stops queueing.
func (g *Gate) Release() {
	g.mu.Lock()
	queued, next := g.queued, g.next
	g.queued, g.held = nil, false
	g.mu.Unlock()
	for _, fn := range queued {
		fn(next)
	}
}

// Swap replaces the target and returns the previous one.
func (g *Gate) Swap(next Notifier) Notifier {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.next
	g.next = next
	return prev
}
