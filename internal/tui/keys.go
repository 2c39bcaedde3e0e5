package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskcalc/internal/arith"
	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/config"
)

type keyMap struct {
	Digit    key.Binding
	Add      key.Binding
	Subtract key.Binding
	Multiply key.Binding
	Divide   key.Binding
	Equals   key.Binding
	Clear    key.Binding
	Theme    key.Binding
	Quit     key.Binding
}

func newKeyMap(cfg config.KeysConfig) keyMap {
	return keyMap{
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."),
			key.WithHelp("0-9 .", "digit"),
		),
		Add:      key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add")),
		Subtract: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "subtract")),
		Multiply: binding(cfg.Multiply, []string{"*", "x", "×"}, "multiply"),
		Divide:   binding(cfg.Divide, []string{"/", "÷"}, "divide"),
		Equals:   binding(cfg.Equals, []string{"enter", "="}, "equals"),
		Clear:    binding(cfg.Clear, []string{"esc", "c", "backspace"}, "clear"),
		Theme:    binding(cfg.Theme, []string{"t"}, "theme"),
		Quit:     binding(cfg.Quit, []string{"q", "ctrl+c"}, "quit"),
	}
}

// binding uses the configured keys when present, the defaults otherwise.
func binding(override, defaults []string, desc string) key.Binding {
	keys := defaults
	if len(override) > 0 {
		keys = override
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], desc))
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Digit, k.Multiply, k.Divide, k.Equals, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digit, k.Add, k.Subtract, k.Multiply, k.Divide},
		{k.Equals, k.Clear, k.Theme, k.Quit},
	}
}

// eventFor maps a key press to a calculator event. Quit and theme are
// handled by the model and never become events.
func (k keyMap) eventFor(msg tea.KeyMsg) (calc.Event, bool) {
	switch {
	case key.Matches(msg, k.Clear):
		return calc.Clear(), true
	case key.Matches(msg, k.Equals):
		return calc.Equals(), true
	case key.Matches(msg, k.Digit):
		return calc.Digit([]rune(msg.String())[0]), true
	case key.Matches(msg, k.Add):
		return calc.Operator(arith.OpAdd), true
	case key.Matches(msg, k.Subtract):
		return calc.Operator(arith.OpSubtract), true
	case key.Matches(msg, k.Multiply):
		return calc.Operator(arith.OpMultiply), true
	case key.Matches(msg, k.Divide):
		return calc.Operator(arith.OpDivide), true
	}
	return calc.Event{}, false
}
