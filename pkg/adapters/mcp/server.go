package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aretw0/fsg"
	"github.com/aretw0/fsg/internal/presentation/graph"
	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/harness"
	"github.com/aretw0/fsg/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

const (
	automatonURI = "fsg://automaton"
	graphURI     = "fsg://graph.mmd"

	maxCount = 1_000
)

// Engine defines what the MCP server needs from the fsg engine.
type Engine interface {
	Inspect() *domain.Definition
	Automaton() *automaton.Automaton
	Generate(ctx context.Context, count int, rng automaton.Source) iter.Seq2[string, error]
	Match(ctx context.Context, input string) automaton.MatchResult
}

type engineRef struct{ Engine }

// GenerateResponse is the structured result of the generate tool.
type GenerateResponse struct {
	Automaton string   `json:"automaton" jsonschema_description:"Name of the automaton"`
	Seed      uint64   `json:"seed" jsonschema_description:"Seed that reproduces these samples"`
	Samples   []string `json:"samples" jsonschema_description:"Generated strings, in order"`
}

// MatchResult reports the search outcome for one input.
type MatchResult struct {
	Input    string   `json:"input"`
	Accepted bool     `json:"accepted"`
	Path     []string `json:"path,omitempty" jsonschema_description:"Witness walk from start to end, when accepted"`
	Calls    int      `json:"calls" jsonschema_description:"Search invocations spent"`
}

// MatchResponse is the structured result of the match tool.
type MatchResponse struct {
	Automaton string        `json:"automaton"`
	Results   []MatchResult `json:"results"`
}

type generateArgs struct {
	Count int     `mapstructure:"count"`
	Seed  *uint64 `mapstructure:"seed"`
}

type matchArgs struct {
	Input  *string  `mapstructure:"input"`
	Inputs []string `mapstructure:"inputs"`
}

type graphArgs struct {
	Input *string `mapstructure:"input"`
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    atomic.Pointer[engineRef]
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		logger: slog.New(slog.DiscardHandler),
		mcpServer: server.NewMCPServer("fsg-mcp", strings.TrimSpace(fsg.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetEngine(engine)
	s.registerTools()
	s.registerResources()
	return s
}

// SetEngine replaces the served engine.
func (s *Server) SetEngine(engine Engine) {
	s.engine.Store(&engineRef{engine})
}

func (s *Server) current() Engine {
	return s.engine.Load().Engine
}

// MCPServer exposes the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// decodeArgs maps loosely typed tool arguments onto out. JSON numbers arrive
// as float64 and seeds may be sent as strings.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("generate",
		mcp.WithDescription("Generate random strings accepted by the automaton."),
		mcp.WithNumber("count", mcp.Description("How many strings to generate (default 1)"), mcp.Min(1), mcp.Max(maxCount)),
		mcp.WithNumber("seed", mcp.Description("Seed for a reproducible sequence (optional)")),
		mcp.WithOutputSchema[GenerateResponse](),
	), mcp.NewStructuredToolHandler(s.handleGenerate))

	s.mcpServer.AddTool(mcp.NewTool("match",
		mcp.WithDescription("Decide whether strings are accepted by the automaton and return a witness walk."),
		mcp.WithString("input", mcp.Description("A single string to test")),
		mcp.WithArray("inputs", mcp.Description("Several strings to test"), mcp.WithStringItems()),
		mcp.WithOutputSchema[MatchResponse](),
	), mcp.NewStructuredToolHandler(s.handleMatch))

	s.mcpServer.AddTool(mcp.NewTool("check",
		mcp.WithDescription("Run the generate-then-match harness and return the report."),
		mcp.WithNumber("samples", mcp.Description("Number of generated strings (default 1000, 0 skips sampling)")),
		mcp.WithNumber("seed", mcp.Description("Seed (optional)")),
		mcp.WithArray("patterns", mcp.Description("Regular expressions tallied against every sample"), mcp.WithStringItems()),
		mcp.WithString("reference", mcp.Description("Pattern expected to accept exactly the automaton's language")),
		mcp.WithNumber("inputs", mcp.Description("Random strings compared against the reference")),
	), s.handleCheck)

	s.mcpServer.AddTool(mcp.NewTool("get_automaton",
		mcp.WithDescription("Get the full automaton definition for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := json.Marshal(s.current().Inspect())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the automaton as a Mermaid flowchart, optionally highlighting the walk that accepts input."),
		mcp.WithString("input", mcp.Description("String whose witness walk is highlighted (optional)")),
	), s.handleGraph)
}

func (s *Server) handleGenerate(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (GenerateResponse, error) {
	req := generateArgs{Count: 1}
	if err := decodeArgs(args, &req); err != nil {
		return GenerateResponse{}, err
	}
	if req.Count < 1 || req.Count > maxCount {
		return GenerateResponse{}, fmt.Errorf("count must be between 1 and %d", maxCount)
	}

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	engine := s.current()
	resp := GenerateResponse{
		Automaton: engine.Automaton().Name(),
		Seed:      seed,
		Samples:   make([]string, 0, req.Count),
	}
	for sample, err := range engine.Generate(ctx, req.Count, automaton.NewSource(seed)) {
		if err != nil {
			s.logger.Warn("MCP generate failed", "err", err)
			return GenerateResponse{}, fmt.Errorf("generate failed: %w", err)
		}
		resp.Samples = append(resp.Samples, sample)
	}
	return resp, nil
}

func (s *Server) handleMatch(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (MatchResponse, error) {
	var req matchArgs
	if err := decodeArgs(args, &req); err != nil {
		return MatchResponse{}, err
	}

	inputs := req.Inputs
	if req.Input != nil {
		inputs = append([]string{*req.Input}, inputs...)
	}
	if len(inputs) == 0 {
		return MatchResponse{}, errors.New("input or inputs is required")
	}
	if len(inputs) > maxCount {
		return MatchResponse{}, fmt.Errorf("at most %d inputs per call", maxCount)
	}

	for _, in := range inputs {
		if err := runner.CheckInput(in); err != nil {
			s.logger.Warn("MCP match: input rejected", "err", err, "size", len(in))
			return MatchResponse{}, fmt.Errorf("input rejected: %w", err)
		}
	}

	engine := s.current()
	resp := MatchResponse{Automaton: engine.Automaton().Name()}
	for _, in := range inputs {
		res := engine.Match(ctx, in)
		resp.Results = append(resp.Results, MatchResult{
			Input:    in,
			Accepted: res.Accepted,
			Path:     res.Path,
			Calls:    res.Calls,
		})
	}
	return resp, nil
}

func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := harness.DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "json",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(request.GetArguments()); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	if cfg.Samples > maxCount*10 {
		return mcp.NewToolResultError(fmt.Sprintf("at most %d samples per check", maxCount*10)), nil
	}

	report, err := harness.New(s.current().Automaton(), harness.WithLogger(s.logger)).Run(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}

	var sb strings.Builder
	if err := harness.WriteSummary(&sb, report); err != nil {
		return nil, err
	}
	data, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultStructured(report, sb.String()+string(data)), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req graphArgs
	if err := decodeArgs(request.GetArguments(), &req); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.mermaid(ctx, req.Input)), nil
}

func (s *Server) mermaid(ctx context.Context, input *string) string {
	engine := s.current()
	var overlay *graph.Overlay
	if input != nil {
		overlay = &graph.Overlay{Path: engine.Match(ctx, *input).Path}
	}
	return graph.GenerateMermaid(engine.Inspect(), overlay)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(automatonURI, "Current Automaton Definition",
		mcp.WithMIMEType("application/json"),
	), s.readAutomaton)

	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Automaton Mermaid Diagram",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: graphURI, MIMEType: "text/plain", Text: s.mermaid(ctx, nil)},
		}, nil
	})
}

func (s *Server) readAutomaton(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.current().Inspect())
	if err != nil {
		return nil, fmt.Errorf("failed to inspect automaton: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: automatonURI, MIMEType: "application/json", Text: string(data)},
	}, nil
}
