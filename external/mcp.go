package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/krishisetu/krishisetu/pkg/logging"
)

// ErrClientClosed is returned when the MCP provider has been closed.
var ErrClientClosed = errors.New("external: mcp client closed")

// toolCaller is the slice of the MCP session the provider needs.
type toolCaller interface {
	CallTool(ctx context.Context, params *sdkmcp.CallToolParams) (*sdkmcp.CallToolResult, error)
}

// MCPOption configures the MCP provider.
type MCPOption func(*mcpConfig)

type mcpConfig struct {
	implementation sdkmcp.Implementation
	callTimeout    time.Duration
}

// WithClientInfo sets the client metadata advertised to the MCP server.
func WithClientInfo(name, version string) MCPOption {
	return func(cfg *mcpConfig) {
		if name != "" {
			cfg.implementation.Name = name
		}
		if version != "" {
			cfg.implementation.Version = version
		}
	}
}

// WithCallTimeout bounds each tool call. Zero disables the bound.
func WithCallTimeout(d time.Duration) MCPOption {
	return func(cfg *mcpConfig) {
		cfg.callTimeout = d
	}
}

// MCPProvider fetches agricultural data from MCP tools exposed by an
// external data server.
type MCPProvider struct {
	session     toolCaller
	closer      func() error
	callTimeout time.Duration
	logger      *slog.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// NewMCPProvider connects to a streamable HTTP MCP server at endpoint.
func NewMCPProvider(ctx context.Context, endpoint string, opts ...MCPOption) (*MCPProvider, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("external: mcp endpoint cannot be empty")
	}

	cfg := mcpConfig{
		implementation: sdkmcp.Implementation{
			Name:    "krishisetu",
			Version: "1.0.0",
		},
		callTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := sdkmcp.NewClient(&cfg.implementation, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("external: mcp connect failed: %w", err)
	}

	return &MCPProvider{
		session:     session,
		closer:      session.Close,
		callTimeout: cfg.callTimeout,
		logger:      logging.WithComponent("external.mcp"),
		closed:      make(chan struct{}),
	}, nil
}

// Close terminates the MCP session.
func (p *MCPProvider) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.closed)
		if p.closer != nil {
			err = p.closer()
		}
	})
	return err
}

// Weather returns current weather context for a location.
func (p *MCPProvider) Weather(ctx context.Context, location string) any {
	return p.fetch(ctx, "get_weather_data", map[string]any{"location": location})
}

// Soil returns soil health data for a location.
func (p *MCPProvider) Soil(ctx context.Context, location string) any {
	return p.fetch(ctx, "get_soil_data", map[string]any{"location": location})
}

// Market returns market data for a crop.
func (p *MCPProvider) Market(ctx context.Context, crop string) any {
	return p.fetch(ctx, "get_market_data", map[string]any{"crop": crop})
}

// Policies returns government policy data for a state.
func (p *MCPProvider) Policies(ctx context.Context, state string) any {
	return p.fetch(ctx, "get_policy_data", map[string]any{"state": state})
}

// Comprehensive fans out the applicable sub-fetches concurrently and
// collects the results keyed by source. Crop and state are optional.
func (p *MCPProvider) Comprehensive(ctx context.Context, location, crop, state string) Data {
	type fetch struct {
		source string
		run    func(context.Context) any
	}

	fetches := []fetch{
		{"weather", func(ctx context.Context) any { return p.Weather(ctx, location) }},
		{"soil", func(ctx context.Context) any { return p.Soil(ctx, location) }},
	}
	if crop != "" {
		fetches = append(fetches, fetch{"market", func(ctx context.Context) any { return p.Market(ctx, crop) }})
	}
	if state != "" {
		fetches = append(fetches, fetch{"policies", func(ctx context.Context) any { return p.Policies(ctx, state) }})
	}

	var (
		mu   sync.Mutex
		data = make(Data, len(fetches))
		wg   sync.WaitGroup
	)
	for _, f := range fetches {
		wg.Add(1)
		go func(f fetch) {
			defer wg.Done()
			payload := f.run(ctx)
			mu.Lock()
			data[f.source] = payload
			mu.Unlock()
		}(f)
	}
	wg.Wait()

	return data
}

// fetch calls one MCP tool and decodes the textual response as JSON. All
// failures are folded into an error payload so callers can keep going.
func (p *MCPProvider) fetch(ctx context.Context, tool string, args map[string]any) any {
	select {
	case <-p.closed:
		return errPayload(tool, ErrClientClosed)
	default:
	}

	if p.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.callTimeout)
		defer cancel()
	}

	result, err := p.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	if err != nil {
		p.logger.Warn("mcp tool call failed", "tool", tool, "error", err)
		return errPayload(tool, err)
	}

	text := normalizeContent(result.Content)
	if result.IsError {
		if text == "" {
			text = "tool returned error without message"
		}
		p.logger.Warn("mcp tool returned error", "tool", tool, "message", text)
		return errPayload(tool, errors.New(text))
	}

	return decodePayload(text)
}

func errPayload(tool string, err error) map[string]any {
	return map[string]any{"error": fmt.Sprintf("failed to call %s: %v", tool, err)}
}

func normalizeContent(content []sdkmcp.Content) string {
	if len(content) == 0 {
		return ""
	}
	parts := make([]string, 0, len(content))
	for _, c := range content {
		switch v := c.(type) {
		case *sdkmcp.TextContent:
			parts = append(parts, v.Text)
		default:
			if data, err := c.MarshalJSON(); err == nil {
				parts = append(parts, string(data))
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// decodePayload parses a tool response as JSON, falling back to the raw
// text for non-JSON responses.
func decodePayload(text string) any {
	if text == "" {
		return map[string]any{}
	}
	var payload any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return map[string]any{"raw": text}
	}
	return payload
}
