package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"github.com/voyagetools/voyage-mcp/internal/domain"
	"github.com/voyagetools/voyage-mcp/internal/usecase"
)

// MockMCPServer is a mock implementation of the MCPServerAdapter interface.
type MockMCPServer struct {
	mock.Mock
}

func (m *MockMCPServer) AddTool(tool mcp.Tool, handlerFunc mcpGoServer.ToolHandlerFunc) {
	m.Called(tool, handlerFunc)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func echoSpec() domain.ToolSpec {
	return domain.ToolSpec{
		Name:        "echo_text",
		Description: "Echoes the given text.",
		Fields: []domain.FieldSpec{
			{Name: "text", Type: domain.FieldTypeString, Description: "Text to echo", Required: true},
			{Name: "repeat", Type: domain.FieldTypeNumber, Description: "Repeat count", Integer: true, Min: domain.Bound(1), Max: domain.Bound(3), Default: 1},
		},
	}
}

func TestDispatcher_Register(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	d := usecase.NewDispatcher(testLogger())
	handler := func(ctx context.Context, args domain.Args) (string, error) { return "", nil }

	require.NoError(d.Register(usecase.Registration{Spec: echoSpec(), Handler: handler}))

	err := d.Register(usecase.Registration{Spec: echoSpec(), Handler: handler})
	assert.ErrorIs(err, usecase.ErrDuplicateTool)

	err = d.Register(usecase.Registration{Spec: domain.ToolSpec{}, Handler: handler})
	assert.Error(err)

	err = d.Register(usecase.Registration{Spec: domain.ToolSpec{Name: "no_handler"}})
	assert.Error(err)

	specs := d.Specs()
	require.Len(specs, 1)
	assert.Equal("echo_text", specs[0].Name)
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()
	handlerErr := errors.New("upstream exploded")

	tests := []struct {
		name     string
		handler  usecase.ToolHandler
		inTool   string
		inRaw    map[string]any
		wantText string
		wantErr  bool
	}{
		{
			name: "Success - handler output returned verbatim",
			handler: func(ctx context.Context, args domain.Args) (string, error) {
				return "hello: " + args.String("text"), nil
			},
			inTool:   "echo_text",
			inRaw:    map[string]any{"text": "world"},
			wantText: "hello: world",
			wantErr:  false,
		},
		{
			name: "Failure - unknown tool",
			handler: func(ctx context.Context, args domain.Args) (string, error) {
				return "", nil
			},
			inTool:   "no_such_tool",
			inRaw:    map[string]any{},
			wantText: `Error: unknown tool "no_such_tool"`,
			wantErr:  true,
		},
		{
			name: "Failure - validation error lists every violation",
			handler: func(ctx context.Context, args domain.Args) (string, error) {
				return "", nil
			},
			inTool:   "echo_text",
			inRaw:    map[string]any{"repeat": 99},
			wantText: "Error: invalid arguments for echo_text: text: required field is missing; repeat: must be at most 3",
			wantErr:  true,
		},
		{
			name: "Failure - handler error wrapped in error envelope",
			handler: func(ctx context.Context, args domain.Args) (string, error) {
				return "", handlerErr
			},
			inTool:   "echo_text",
			inRaw:    map[string]any{"text": "x"},
			wantText: "Error: upstream exploded",
			wantErr:  true,
		},
		{
			name: "Success - default applied for absent optional field",
			handler: func(ctx context.Context, args domain.Args) (string, error) {
				if args.Int("repeat") != 1 {
					return "", errors.New("default not applied")
				}
				return "ok", nil
			},
			inTool:   "echo_text",
			inRaw:    map[string]any{"text": "x"},
			wantText: "ok",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			d := usecase.NewDispatcher(testLogger())
			require.NoError(d.Register(usecase.Registration{Spec: echoSpec(), Handler: tt.handler}))

			text, isErr := d.Dispatch(ctx, tt.inTool, tt.inRaw)

			assert.Equal(tt.wantText, text)
			assert.Equal(tt.wantErr, isErr)
		})
	}
}

func TestDispatcher_Attach(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	d := usecase.NewDispatcher(testLogger())
	require.NoError(d.Register(usecase.Registration{
		Spec: echoSpec(),
		Handler: func(ctx context.Context, args domain.Args) (string, error) {
			return "echoed " + args.String("text"), nil
		},
	}))

	mockSrv := new(MockMCPServer)
	mockSrv.On("AddTool", mock.AnythingOfType("mcp.Tool"), mock.Anything).Once()

	d.Attach(mockSrv)
	mockSrv.AssertExpectations(t)

	// Inspect the published tool definition.
	tool := mockSrv.Calls[0].Arguments.Get(0).(mcp.Tool)
	assert.Equal("echo_text", tool.Name)
	assert.Equal("object", tool.InputSchema.Type)
	assert.Equal([]string{"text"}, tool.InputSchema.Required)
	require.Contains(tool.InputSchema.Properties, "repeat")
	repeat := tool.InputSchema.Properties["repeat"].(map[string]any)
	assert.Equal("integer", repeat["type"])
	assert.Equal(float64(1), repeat["minimum"])

	// Drive the installed handler the way the MCP server would.
	handler := mockSrv.Calls[0].Arguments.Get(1).(mcpGoServer.ToolHandlerFunc)

	req := mcp.CallToolRequest{}
	req.Params.Name = "echo_text"
	req.Params.Arguments = map[string]any{"text": "hi"}

	res, err := handler(ctx, req)
	require.NoError(err)
	require.Len(res.Content, 1)
	assert.False(res.IsError)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(ok)
	assert.Equal("echoed hi", tc.Text)

	// A handler failure must surface as an error result, not a Go error.
	req.Params.Arguments = map[string]any{}
	res, err = handler(ctx, req)
	require.NoError(err)
	assert.True(res.IsError)
	tc, ok = res.Content[0].(mcp.TextContent)
	require.True(ok)
	assert.Contains(tc.Text, "Error: invalid arguments for echo_text")
}
