// Package mcphost exposes a calculator session as MCP tools so agents can
// press keys on it. Tool calls may arrive concurrently; the calculator
// serializes them.
package mcphost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jask/jaskcalc/internal/arith"
	"github.com/jask/jaskcalc/internal/calc"
)

const stateURI = "calc://state"

// operatorKeys lists every value press_operator accepts, in schema order.
// The glyph spellings map onto the four ASCII operators.
var operatorKeys = []struct {
	key string
	op  arith.Operator
}{
	{"+", arith.OpAdd},
	{"-", arith.OpSubtract},
	{"*", arith.OpMultiply},
	{"/", arith.OpDivide},
	{"×", arith.OpMultiply},
	{"x", arith.OpMultiply},
	{"÷", arith.OpDivide},
}

// Host adapts MCP requests to calculator events.
type Host struct {
	calc   *calc.Calculator
	logger *log.Logger
	debug  bool
}

// New wraps c. A nil logger discards output.
func New(c *calc.Calculator, logger *log.Logger, debug bool) *Host {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Host{calc: c, logger: logger, debug: debug}
}

// Server builds an MCP server with the calculator tools and state resource.
func (h *Host) Server(name, version string) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("press_digit",
		mcp.WithDescription("Press a digit key (0-9) or the decimal point and return the display"),
		mcp.WithString("digit",
			mcp.Required(),
			mcp.Description("One of 0123456789 or ."),
		),
	), h.pressDigit)

	s.AddTool(operatorTool(), h.pressOperator)

	s.AddTool(mcp.NewTool("press_equals",
		mcp.WithDescription("Press equals and return the display"),
	), h.pressEquals)

	s.AddTool(mcp.NewTool("press_clear",
		mcp.WithDescription("Press clear and return the display"),
	), h.pressClear)

	s.AddTool(mcp.NewTool("display",
		mcp.WithDescription("Return the current display without pressing anything"),
	), h.display)

	s.AddResource(mcp.NewResource(stateURI,
		"Calculator State",
		mcp.WithResourceDescription("Entry buffer, pending operation and input flags"),
		mcp.WithMIMEType("application/json"),
	), h.readState)

	return s
}

func operatorTool() mcp.Tool {
	keys := make([]string, 0, len(operatorKeys))
	for _, k := range operatorKeys {
		keys = append(keys, k.key)
	}
	return mcp.NewTool("press_operator",
		mcp.WithDescription("Press an operator key and return the display"),
		mcp.WithString("operator",
			mcp.Required(),
			mcp.Description("One of + - * /, or the glyphs × x ÷"),
			mcp.Enum(keys...),
		),
	)
}

// Serve runs s over stdio when addr is empty, otherwise over streamable HTTP.
func Serve(s *server.MCPServer, addr string) error {
	if addr == "" {
		if err := server.ServeStdio(s); err != nil {
			return fmt.Errorf("serve stdio: %w", err)
		}
		return nil
	}
	if err := server.NewStreamableHTTPServer(s).Start(addr); err != nil {
		return fmt.Errorf("serve http %s: %w", addr, err)
	}
	return nil
}

func (h *Host) pressDigit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := singleKey(request, "digit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return h.apply(calc.Digit(r)), nil
}

func (h *Host) pressOperator(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := singleKey(request, "operator")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	op := arith.Operator(r)
	for _, k := range operatorKeys {
		if k.key == string(r) {
			op = k.op
			break
		}
	}
	return h.apply(calc.Operator(op)), nil
}

func (h *Host) pressEquals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.apply(calc.Equals()), nil
}

func (h *Host) pressClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.apply(calc.Clear()), nil
}

func (h *Host) display(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(h.calc.Display()), nil
}

func (h *Host) apply(ev calc.Event) *mcp.CallToolResult {
	text, err := h.calc.Apply(ev)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	if h.debug {
		h.logger.Printf("%s -> %q", ev, text)
	}
	if text == calc.ErrorText {
		if err := h.calc.LastError(); err != nil {
			h.logger.Printf("error display: %v", err)
		}
	}
	return mcp.NewToolResultText(text)
}

func singleKey(request mcp.CallToolRequest, name string) (rune, error) {
	args := request.GetArguments()
	s, ok := args[name].(string)
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single key, got %q", name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

type stateView struct {
	Entry           string  `json:"entry"`
	PendingOperand  *string `json:"pending_operand"`
	PendingOperator *string `json:"pending_operator"`
	FreshEntry      bool    `json:"fresh_entry"`
	ResultShown     bool    `json:"result_shown"`
	Display         string  `json:"display"`
}

func newStateView(s calc.Session) stateView {
	v := stateView{
		Entry:       s.Entry,
		FreshEntry:  s.FreshEntry,
		ResultShown: s.ResultShown,
		Display:     s.Display(),
	}
	if s.Pending != nil {
		operand, operator, _ := strings.Cut(s.Pending.String(), " ")
		v.PendingOperand = &operand
		v.PendingOperator = &operator
	}
	return v
}

func (h *Host) readState(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(newStateView(h.calc.Snapshot()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      stateURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
