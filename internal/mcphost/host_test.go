package mcphost

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/jask/jaskcalc/internal/calc"
)

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, fn toolHandler, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text, res.IsError
}

func newHost() *Host {
	return New(calc.New(nil), nil, false)
}

func TestToolsDriveCalculator(t *testing.T) {
	h := newHost()

	out, isErr := call(t, h.pressDigit, map[string]any{"digit": "7"})
	require.False(t, isErr)
	require.Equal(t, "7", out)

	out, _ = call(t, h.pressOperator, map[string]any{"operator": "+"})
	require.Equal(t, "7", out)
	out, _ = call(t, h.pressDigit, map[string]any{"digit": "2"})
	require.Equal(t, "7 + 2", out)
	out, _ = call(t, h.pressOperator, map[string]any{"operator": "×"})
	require.Equal(t, "9", out)
	out, _ = call(t, h.pressDigit, map[string]any{"digit": "3"})
	require.Equal(t, "9 * 3", out)
	out, _ = call(t, h.pressEquals, nil)
	require.Equal(t, "27", out)

	out, _ = call(t, h.display, nil)
	require.Equal(t, "27", out)

	out, _ = call(t, h.pressClear, nil)
	require.Equal(t, "0", out)
}

func TestToolArgumentErrors(t *testing.T) {
	h := newHost()

	_, isErr := call(t, h.pressDigit, nil)
	require.True(t, isErr)

	out, isErr := call(t, h.pressDigit, map[string]any{"digit": "12"})
	require.True(t, isErr)
	require.Contains(t, out, "single key")

	out, isErr = call(t, h.pressDigit, map[string]any{"digit": "a"})
	require.True(t, isErr)
	require.Contains(t, out, "invalid input")

	_, isErr = call(t, h.pressOperator, map[string]any{"operator": "%"})
	require.True(t, isErr)

	require.Equal(t, "0", h.calc.Display())
}

func TestDivideByZeroIsAResultNotAToolError(t *testing.T) {
	h := newHost()
	call(t, h.pressDigit, map[string]any{"digit": "1"})
	call(t, h.pressOperator, map[string]any{"operator": "/"})
	call(t, h.pressDigit, map[string]any{"digit": "0"})
	out, isErr := call(t, h.pressEquals, nil)
	require.False(t, isErr)
	require.Equal(t, calc.ErrorText, out)
}

func TestReadState(t *testing.T) {
	h := newHost()
	call(t, h.pressDigit, map[string]any{"digit": "4"})
	call(t, h.pressOperator, map[string]any{"operator": "-"})

	contents, err := h.readState(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	require.Equal(t, stateURI, text.URI)

	var got stateView
	require.NoError(t, json.Unmarshal([]byte(text.Text), &got))
	require.Equal(t, "4", got.Entry)
	require.NotNil(t, got.PendingOperand)
	require.Equal(t, "4", *got.PendingOperand)
	require.NotNil(t, got.PendingOperator)
	require.Equal(t, "-", *got.PendingOperator)
	require.True(t, got.FreshEntry)
	require.False(t, got.ResultShown)
	require.Equal(t, "4", got.Display)
}

func TestReadStateWithoutPending(t *testing.T) {
	h := newHost()
	contents, err := h.readState(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	text := contents[0].(mcp.TextResourceContents).Text
	require.JSONEq(t, `{
		"entry": "0",
		"pending_operand": null,
		"pending_operator": null,
		"fresh_entry": true,
		"result_shown": false,
		"display": "0"
	}`, text)
}

func TestConcurrentToolCalls(t *testing.T) {
	h := newHost()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				req := mcp.CallToolRequest{}
				req.Params.Arguments = map[string]any{"digit": "1"}
				res, err := h.pressDigit(context.Background(), req)
				if err != nil || res.IsError {
					t.Errorf("pressDigit failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()
	require.Equal(t, "111111111111", h.calc.Display())
}

func TestServerBuilds(t *testing.T) {
	require.NotNil(t, newHost().Server("jaskcalc", "test"))
}

func TestOperatorSchemaMatchesHandler(t *testing.T) {
	prop, ok := operatorTool().InputSchema.Properties["operator"].(map[string]any)
	require.True(t, ok)
	enum, ok := prop["enum"].([]string)
	require.True(t, ok, "enum is %T", prop["enum"])
	require.ElementsMatch(t, []string{"+", "-", "*", "/", "×", "x", "÷"}, enum)

	for _, key := range enum {
		h := newHost()
		call(t, h.pressDigit, map[string]any{"digit": "8"})
		call(t, h.pressOperator, map[string]any{"operator": key})
		call(t, h.pressDigit, map[string]any{"digit": "2"})
		out, isErr := call(t, h.pressEquals, nil)
		require.False(t, isErr, key)
		require.NotEqual(t, calc.ErrorText, out, key)
		require.Contains(t, []string{"10", "6", "16", "4"}, out, key)
	}
}
