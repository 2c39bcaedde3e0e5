// Package calc holds the calculator state machine. Hosts translate key
// presses into Events, feed them to a Calculator, and show whatever text the
// Calculator hands to its Renderer.
package calc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jask/jaskcalc/internal/arith"
)

// Renderer receives the display text after every state change.
type Renderer interface {
	Render(text string)
}

// RenderFunc adapts a plain function to Renderer.
type RenderFunc func(text string)

func (f RenderFunc) Render(text string) { f(text) }

// Calculator owns one Session and serializes every event applied to it. It
// is safe for concurrent use; the renderer is called with the lock held so
// renders arrive in event order.
type Calculator struct {
	mu       sync.Mutex
	s        Session
	renderer Renderer
	lastErr  error
}

// New returns a calculator in the initial state and renders it once. r may
// be nil when the host polls Display instead.
func New(r Renderer) *Calculator {
	c := &Calculator{s: initialSession(), renderer: r}
	c.render()
	return c
}

// Handle applies one event. Malformed events return ErrInvalidInput and
// leave the session untouched; arithmetic failures never surface here and
// show up as ErrorText on the display instead.
func (c *Calculator) Handle(ev Event) error {
	_, err := c.Apply(ev)
	return err
}

// Apply is Handle that also returns the display produced by this event,
// read before any other event can run.
func (c *Calculator) Apply(ev Event) (string, error) {
	if err := ev.Validate(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.s.clone()
	capped := false
	switch ev.Kind {
	case EventDigit:
		capped = c.inputDigit(ev.Key)
	case EventOperator:
		c.inputOperator(arith.Operator(ev.Key))
	case EventEquals:
		c.inputEquals()
	case EventClear:
		c.s = initialSession()
		c.lastErr = nil
		c.render()
		return c.s.Display(), nil
	}
	if capped || !c.s.equal(before) {
		c.render()
	}
	return c.s.Display(), nil
}

// HandleAll applies events in order and stops at the first invalid one.
func (c *Calculator) HandleAll(events []Event) error {
	for i, ev := range events {
		if err := c.Handle(ev); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Display returns the current display text.
func (c *Calculator) Display() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Display()
}

// Snapshot returns a copy of the session state.
func (c *Calculator) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.clone()
}

// LastError is the arithmetic or formatting failure behind the most recent
// ErrorText display, or nil once a later evaluation or clear succeeds.
func (c *Calculator) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Calculator) render() {
	if c.renderer != nil {
		c.renderer.Render(c.s.Display())
	}
}

// inputDigit reports whether d was dropped by the length cap. A dropped
// digit still re-renders; a repeated decimal point does not.
func (c *Calculator) inputDigit(d rune) bool {
	key := string(d)
	switch {
	case c.s.ResultShown:
		c.s.Entry = key
		c.s.ResultShown = false
		c.s.FreshEntry = false
	case c.s.FreshEntry:
		c.s.Entry = key
		c.s.FreshEntry = false
	case d == '.' && strings.Contains(c.s.Entry, "."):
	case len(c.s.Entry) >= maxDisplayLen:
		return true
	case c.s.Entry == initialEntry && d != '.':
		c.s.Entry = key
	default:
		c.s.Entry += key
	}
	return false
}

func (c *Calculator) inputOperator(op arith.Operator) {
	defer func() {
		c.s.FreshEntry = true
		c.s.ResultShown = false
	}()

	if c.s.Pending == nil {
		c.s.Pending = &Pending{Operand: parseEntry(c.s.Entry), Operator: op}
		return
	}

	text, err := c.evaluate()
	if err != nil {
		c.fail(err)
		return
	}
	c.s.Entry = text
	c.s.Pending = &Pending{Operand: parseEntry(text), Operator: op}
}

func (c *Calculator) inputEquals() {
	if c.s.Pending == nil || c.s.FreshEntry {
		return
	}

	text, err := c.evaluate()
	if err != nil {
		c.fail(err)
		c.s.FreshEntry = true
		c.s.ResultShown = false
		return
	}
	c.s.Entry = text
	c.s.Pending = nil
	c.s.FreshEntry = true
	c.s.ResultShown = true
}

// evaluate applies the pending operation to the entry and formats the result.
func (c *Calculator) evaluate() (string, error) {
	p := c.s.Pending
	v, err := arith.Dispatch(p.Operator, p.Operand, parseEntry(c.s.Entry))
	if err != nil {
		return "", fmt.Errorf("evaluate %s %s %s: %w", numberString(p.Operand), p.Operator, c.s.Entry, err)
	}
	text := FormatResult(v)
	if text == ErrorText {
		return "", fmt.Errorf("evaluate %s %s %s: %w", numberString(p.Operand), p.Operator, c.s.Entry, ErrUnrepresentable)
	}
	c.lastErr = nil
	return text, nil
}

func (c *Calculator) fail(err error) {
	c.lastErr = err
	c.s.Entry = ErrorText
	c.s.Pending = nil
}
