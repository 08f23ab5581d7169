package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/voyagetools/voyage-mcp/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

// Dispatcher owns the tool registry and runs every invocation: argument
// validation, handler execution and the error envelope. Any failure is
// rendered as an "Error: ..." text result so the protocol call itself always
// succeeds.
type Dispatcher struct {
	order  []string
	byName map[string]Registration
	logger *slog.Logger
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		byName: make(map[string]Registration),
		logger: logger.With("component", "dispatcher"),
	}
}

// Register adds a tool to the registry. Tool names must be unique.
func (d *Dispatcher) Register(reg Registration) error {
	name := reg.Spec.Name
	if name == "" {
		return fmt.Errorf("register: tool name must not be empty")
	}
	if reg.Handler == nil {
		return fmt.Errorf("register %q: handler must not be nil", name)
	}
	if _, exists := d.byName[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateTool)
	}
	d.byName[name] = reg
	d.order = append(d.order, name)
	d.logger.Debug("Registered tool.", slog.String("tool", name))
	return nil
}

// Specs returns the registered tool specs in registration order.
func (d *Dispatcher) Specs() []domain.ToolSpec {
	specs := make([]domain.ToolSpec, 0, len(d.order))
	for _, name := range d.order {
		specs = append(specs, d.byName[name].Spec)
	}
	return specs
}

// Tools returns the MCP tool definitions in registration order, as published
// to clients.
func (d *Dispatcher) Tools() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(d.order))
	for _, name := range d.order {
		tools = append(tools, buildMCPTool(d.byName[name].Spec))
	}
	return tools
}

// Dispatch validates raw arguments against the named tool's schema and runs
// its handler. The returned text is either the handler's output or an
// "Error: ..." message; isErr reports which.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, raw map[string]any) (text string, isErr bool) {
	log := d.logger.With(slog.String("tool", name))

	reg, ok := d.byName[name]
	if !ok {
		log.Warn("Unknown tool requested.")
		return fmt.Sprintf("Error: unknown tool %q", name), true
	}

	args, err := reg.Spec.Validate(raw)
	if err != nil {
		log.Warn("Argument validation failed.", slog.Any("error", err))
		return "Error: " + err.Error(), true
	}

	out, err := reg.Handler(ctx, args)
	if err != nil {
		log.Error("Tool handler failed.", slog.Any("error", err))
		return "Error: " + err.Error(), true
	}

	log.Debug("Tool call succeeded.", slog.Int("response_bytes", len(out)))
	return out, false
}

// Attach publishes every registered tool on the MCP server. The installed
// handlers map Dispatch output onto tool results and never return a Go
// error, which keeps failures inside the result envelope.
func (d *Dispatcher) Attach(srv MCPServerAdapter) {
	for _, name := range d.order {
		reg := d.byName[name]
		srv.AddTool(buildMCPTool(reg.Spec), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			text, isErr := d.Dispatch(ctx, req.Params.Name, req.GetArguments())
			if isErr {
				return mcp.NewToolResultError(text), nil
			}
			return mcp.NewToolResultText(text), nil
		})
		d.logger.Info("Tool attached to MCP server.", slog.String("tool", name))
	}
}

// buildMCPTool converts a ToolSpec into the mcp-go tool definition, mapping
// each field onto its JSON schema form.
func buildMCPTool(spec domain.ToolSpec) mcp.Tool {
	props := make(map[string]any, len(spec.Fields))
	var required []string

	for _, f := range spec.Fields {
		typ := string(f.Type)
		if f.Integer {
			typ = "integer"
		}
		prop := map[string]any{
			"type":        typ,
			"description": f.Description,
		}
		if len(f.Enum) > 0 {
			prop["enum"] = f.Enum
		}
		if f.Min != nil {
			prop["minimum"] = *f.Min
		}
		if f.Max != nil {
			prop["maximum"] = *f.Max
		}
		if f.Default != nil {
			prop["default"] = f.Default
		}
		if f.Format != "" {
			prop["format"] = f.Format
		}
		props[f.Name] = prop

		if f.Required {
			required = append(required, f.Name)
		}
	}

	return mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
}
