package usecase

import (
	"context"
	"errors"

	"github.com/voyagetools/voyage-mcp/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"
)

// ErrDuplicateTool is returned when a tool name is registered twice.
var ErrDuplicateTool = errors.New("tool already registered")

// ToolHandler executes one tool call against a validated argument bag and
// returns the text to present to the client. A returned error becomes an
// "Error: ..." tool result, never a protocol failure.
type ToolHandler func(ctx context.Context, args domain.Args) (string, error)

// Registration couples a tool's declared schema with its handler.
type Registration struct {
	Spec    domain.ToolSpec
	Handler ToolHandler
}

// MCPServerAdapter is the slice of the MCP server the dispatcher needs to
// publish tools. It keeps the use case free of a hard dependency on one
// server implementation; mcp-go's MCPServer satisfies it directly.
type MCPServerAdapter interface {
	AddTool(tool mcp.Tool, handlerFunc mcpGoServer.ToolHandlerFunc)
}
