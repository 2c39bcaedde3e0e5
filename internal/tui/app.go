package tui

import (
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/config"
)

// App is the terminal front end of one calculator session.
type App struct {
	calc    *calc.Calculator
	display string
	keys    keyMap
	help    help.Model
	styles  styles
	cfg     config.Config
	logger  *log.Logger
	status  string
	width   int
	height  int
}

type statusMsg string
type errMsg struct{ error }

// New builds the app and its calculator. A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	a := &App{
		keys:   newKeyMap(cfg.Keys),
		help:   help.New(),
		cfg:    cfg,
		logger: logger,
	}
	a.applyTheme()
	a.calc = calc.New(calc.RenderFunc(func(text string) { a.display = text }))
	return a
}

func (a *App) applyTheme() {
	p := paletteFor(a.cfg.UI.Theme)
	a.help.Styles.ShortKey = a.help.Styles.ShortKey.Foreground(p.Accent)
	a.help.Styles.ShortDesc = a.help.Styles.ShortDesc.Foreground(p.Subtext)
	a.styles = newStyles(p, a.cfg.UI.Width)
}

// toggleTheme flips between mocha and latte and persists the choice.
func (a *App) toggleTheme() tea.Cmd {
	if a.cfg.UI.Theme == "latte" {
		a.cfg.UI.Theme = "mocha"
	} else {
		a.cfg.UI.Theme = "latte"
	}
	a.applyTheme()
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("theme " + cfg.UI.Theme + " saved")
	}
}

func (a *App) Init() tea.Cmd {
	return nil
}

// Display is the text most recently rendered by the calculator.
func (a *App) Display() string {
	return a.display
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.help.Width = m.Width
		return a, nil
	case statusMsg:
		a.status = string(m)
		return a, nil
	case errMsg:
		a.status = "save failed"
		a.logger.Printf("warn: %v", m.error)
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		if key.Matches(m, a.keys.Theme) {
			return a, a.toggleTheme()
		}
		a.status = ""
		ev, ok := a.keys.eventFor(m)
		if !ok {
			return a, nil
		}
		if err := a.calc.Handle(ev); err != nil {
			a.logger.Printf("warn: %v", err)
			return a, nil
		}
		if a.cfg.Log.Debug {
			a.logger.Printf("%s -> %q", ev, a.display)
		}
		if err := a.calc.LastError(); err != nil && a.display == calc.ErrorText {
			a.logger.Printf("error display: %v", err)
		}
	}
	return a, nil
}

func (a *App) View() string {
	s := a.calc.Snapshot()

	pending := ""
	if s.Pending != nil && s.FreshEntry {
		pending = s.Pending.String()
	}

	displayStyle := a.styles.display
	switch {
	case a.display == calc.ErrorText:
		displayStyle = a.styles.errText
	case s.ResultShown:
		displayStyle = a.styles.result
	}

	lines := []string{
		a.styles.title.Render("jaskcalc"),
		a.styles.pending.Render(pending),
		displayStyle.Render(a.display),
	}
	if strings.TrimSpace(a.status) != "" {
		lines = append(lines, a.styles.status.Render(a.status))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	panel := a.styles.panel.Render(body)
	if a.cfg.UI.ShowHelp {
		panel = lipgloss.JoinVertical(lipgloss.Center, panel, a.help.View(a.keys))
	}

	if a.width == 0 || a.height == 0 {
		return panel
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, panel)
}
