package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/config"
	"github.com/jask/jaskcalc/internal/mcphost"
	"github.com/jask/jaskcalc/internal/tui"
)

const version = "0.1.0"

func main() {
	var (
		mcpFlag     = flag.Bool("mcp", false, "Serve the calculator over MCP instead of the terminal UI")
		evalFlag    = flag.String("eval", "", `Run a key script such as "7+2*3=" and print the display`)
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println("jaskcalc v" + version)
		os.Exit(0)
	}

	if *evalFlag != "" {
		out, err := eval(*evalFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		fmt.Println(out)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	session := uuid.NewString()
	prefix := "jaskcalc " + session[:8] + " "

	if *mcpFlag {
		os.Exit(runMCP(cfg, prefix))
	}
	os.Exit(runTUI(cfg, prefix))
}

// runTUI and runMCP return the process exit code so deferred closes run
// before main exits.
func runTUI(cfg config.Config, prefix string) int {
	logger := log.New(io.Discard, prefix, log.LstdFlags)
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, prefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = log.Default()
	}

	p := tea.NewProgram(tui.New(cfg, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Printf("tui: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func runMCP(cfg config.Config, prefix string) int {
	// stdout carries the protocol on stdio, so logs never go there.
	out := io.Writer(os.Stderr)
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, prefix, log.LstdFlags)

	host := mcphost.New(calc.New(nil), logger, cfg.Log.Debug)
	if cfg.MCP.Addr != "" {
		logger.Printf("serving MCP on %s", cfg.MCP.Addr)
	}
	if err := mcphost.Serve(host.Server(cfg.MCP.Name, version), cfg.MCP.Addr); err != nil {
		logger.Printf("mcp: %v", err)
		return 1
	}
	return 0
}

func eval(script string) (string, error) {
	events, err := calc.ParseKeys(script)
	if err != nil {
		return "", err
	}
	c := calc.New(nil)
	if err := c.HandleAll(events); err != nil {
		return "", err
	}
	return c.Display(), nil
}
