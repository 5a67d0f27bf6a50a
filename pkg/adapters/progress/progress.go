// Package progress provides progress reporting implementations.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/tejasp2022/handfoundationmodel/pkg/ports"
)

// Console renders a progress bar on stderr.
type Console struct {
	bar *progressbar.ProgressBar
}

// NewConsole creates a new console progress reporter.
func NewConsole() *Console {
	return &Console{}
}

// Start begins a new bar. A non-positive total renders a spinner.
func (c *Console) Start(total int, label string) {
	if total <= 0 {
		total = -1
	}
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)
}

// Increment advances the bar by one step.
func (c *Console) Increment() {
	if c.bar != nil {
		c.bar.Add(1)
	}
}

// Finish completes and releases the bar.
func (c *Console) Finish() {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
}

// Ensure Console implements ports.Progress
var _ ports.Progress = (*Console)(nil)

// Noop discards all progress updates. Used in quiet mode.
type Noop struct{}

// NewNoop creates a new no-op progress reporter.
func NewNoop() *Noop {
	return &Noop{}
}

// Start does nothing.
func (n *Noop) Start(total int, label string) {}

// Increment does nothing.
func (n *Noop) Increment() {}

// Finish does nothing.
func (n *Noop) Finish() {}

// Ensure Noop implements ports.Progress
var _ ports.Progress = (*Noop)(nil)
