package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync/atomic"

	"github.com/aretw0/fsg/internal/presentation/graph"
	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/harness"
	"github.com/aretw0/fsg/pkg/ports"
	"github.com/aretw0/fsg/pkg/runner"
	"github.com/go-chi/chi/v5"
)

// DefaultMaxCount caps the number of strings a single request may generate
// or match.
const DefaultMaxCount = 10_000

// Engine defines what the server needs from the fsg engine.
type Engine interface {
	Inspect() *domain.Definition
	Automaton() *automaton.Automaton
	Generate(ctx context.Context, count int, rng automaton.Source) iter.Seq2[string, error]
	Match(ctx context.Context, input string) automaton.MatchResult
}

type engineRef struct{ Engine }

// Server exposes an engine over HTTP. The engine may be swapped while serving.
type Server struct {
	engine   atomic.Pointer[engineRef]
	store    ports.ReportStore
	metrics  http.Handler
	logger   *slog.Logger
	maxCount int
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables POST /check persistence and the /reports endpoints.
func WithStore(store ports.ReportStore) Option {
	return func(s *Server) { s.store = store }
}

// WithMetricsHandler serves h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMaxCount caps generate and match batch sizes.
func WithMaxCount(n int) Option {
	return func(s *Server) { s.maxCount = n }
}

// NewServer creates a server for engine.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		logger:   slog.New(slog.DiscardHandler),
		maxCount: DefaultMaxCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetEngine(engine)
	return s
}

// SetEngine replaces the served engine. In-flight requests finish on the old one.
func (s *Server) SetEngine(engine Engine) {
	s.engine.Store(&engineRef{engine})
}

func (s *Server) current() Engine {
	return s.engine.Load().Engine
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return enableCORS(s.Router())
}

// Router builds the bare route table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.health)
	r.Get("/graph", s.getGraph)
	r.Get("/graph.mmd", s.getGraphMermaid)
	r.Post("/generate", s.generate)
	r.Post("/match", s.match)
	r.Post("/check", s.check)
	r.Get("/reports", s.listReports)
	r.Get("/reports/{id}", s.getReport)
	r.Delete("/reports/{id}", s.deleteReport)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(specYAML)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Handler()
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "status", status, "err", err)
	} else {
		s.logger.Warn("Request rejected", "status", status, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads an optional JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// statusFor maps domain and harness errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrGenerationDivergence),
		errors.Is(err, domain.ErrNoOutboundTransition),
		errors.Is(err, harness.ErrInvalidConfig),
		errors.Is(err, harness.ErrInvalidPattern),
		errors.Is(err, harness.ErrEmptyAlphabet):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

type healthResponse struct {
	Status    string `json:"status"`
	Automaton string `json:"automaton"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Automaton: s.current().Automaton().Name()})
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.current().Inspect())
}

func (s *Server) getGraphMermaid(w http.ResponseWriter, r *http.Request) {
	engine := s.current()

	var overlay *graph.Overlay
	if input, ok := r.URL.Query()["input"]; ok && len(input) > 0 {
		res := engine.Match(r.Context(), input[0])
		overlay = &graph.Overlay{Path: res.Path}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(engine.Inspect(), overlay))
}

type generateRequest struct {
	Count int     `json:"count"`
	Seed  *uint64 `json:"seed"`
}

type generateResponse struct {
	Automaton string   `json:"automaton"`
	Seed      uint64   `json:"seed"`
	Samples   []string `json:"samples"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	req := generateRequest{Count: 1}
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Count < 1 || req.Count > s.maxCount {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("count must be between 1 and %d", s.maxCount))
		return
	}

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	engine := s.current()
	rng := automaton.NewSource(seed)
	resp := generateResponse{
		Automaton: engine.Automaton().Name(),
		Seed:      seed,
		Samples:   make([]string, 0, req.Count),
	}
	for sample, err := range engine.Generate(r.Context(), req.Count, rng) {
		if err != nil {
			s.writeError(w, statusFor(err), err)
			return
		}
		resp.Samples = append(resp.Samples, sample)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type matchRequest struct {
	Input  *string  `json:"input"`
	Inputs []string `json:"inputs"`
}

type matchResult struct {
	Input    string   `json:"input"`
	Accepted bool     `json:"accepted"`
	Path     []string `json:"path,omitempty"`
	Calls    int      `json:"calls"`
	Depth    int      `json:"depth"`
}

type matchResponse struct {
	Automaton string        `json:"automaton"`
	Results   []matchResult `json:"results"`
}

func (s *Server) match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	inputs := req.Inputs
	if req.Input != nil {
		inputs = append([]string{*req.Input}, inputs...)
	}
	if len(inputs) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("input or inputs is required"))
		return
	}
	if len(inputs) > s.maxCount {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("at most %d inputs per request", s.maxCount))
		return
	}

	for _, in := range inputs {
		if err := runner.CheckInput(in); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	engine := s.current()
	resp := matchResponse{
		Automaton: engine.Automaton().Name(),
		Results:   make([]matchResult, 0, len(inputs)),
	}
	for _, in := range inputs {
		res := engine.Match(r.Context(), in)
		resp.Results = append(resp.Results, matchResult{
			Input:    in,
			Accepted: res.Accepted,
			Path:     res.Path,
			Calls:    res.Calls,
			Depth:    res.Depth,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	cfg := harness.DefaultConfig()
	if err := decode(r, &cfg); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if cfg.Samples > s.maxCount*10 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("at most %d samples per check", s.maxCount*10))
		return
	}

	opts := []harness.Option{harness.WithLogger(s.logger)}
	if s.store != nil {
		opts = append(opts, harness.WithStore(s.store))
	}

	report, err := harness.New(s.current().Automaton(), opts...).Run(r.Context(), cfg)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, errors.New("report storage is not configured"))
		return false
	}
	return true
}

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	report, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) deleteReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
