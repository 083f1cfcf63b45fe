// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs every returned command inline,
// feeding the resulting messages back until the model settles. Commands
// that do not return within a few milliseconds (cursor blink timers) are
// dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	maxDepth   = 100
	cmdTimeout = 10 * time.Millisecond
)

// Driver owns a model under test.
type Driver struct {
	t     *testing.T
	model tea.Model

	// Quitting reports whether the model returned tea.Quit.
	Quitting bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.model, _ = d.model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call Start to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start runs the model's Init command to completion.
func (d *Driver) Start() *Driver {
	d.t.Helper()
	d.run(d.model.Init(), 0)
	return d
}

// Model returns the current model.
func (d *Driver) Model() tea.Model { return d.model }

func (d *Driver) View() string { return d.model.View() }

// Send delivers msg and runs the commands it produces.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	d.run(cmd, 0)
}

func (d *Driver) Key(k tea.KeyType) { d.Send(tea.KeyMsg{Type: k}) }

// Rune sends a single printable key.
func (d *Driver) Rune(r rune) { d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	for _, r := range s {
		d.Rune(r)
	}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}

	msg := runWithTimeout(cmd)
	if msg == nil || isBlink(msg) {
		return
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		return
	}

	var next tea.Cmd
	d.model, next = d.model.Update(msg)
	d.run(next, depth+1)
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages from bubbles.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
