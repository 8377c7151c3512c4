// Package server exposes the calculators as a JSON API over fasthttp.
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/wealthlab/wealth-calculator/internal/calculation"
	"github.com/wealthlab/wealth-calculator/internal/config"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/internal/output"
)

const simulationsPrefix = "/api/v1/simulations/"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server routes simulation requests to the calculation engine.
type Server struct {
	engine  *calculation.CalculationEngine
	parser  *config.InputParser
	logger  calculation.Logger
	baseCtx context.Context
	routes  map[string]route
}

type route struct {
	kind   domain.ScenarioKind
	decode func(body []byte, s *domain.Scenario) error
}

// New creates a server backed by engine. A nil logger discards request logs.
func New(engine *calculation.CalculationEngine, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{
		engine:  engine,
		parser:  config.NewInputParser(),
		logger:  logger,
		baseCtx: context.Background(),
		routes: map[string]route{
			"projection": {domain.KindProjection, decode(func(s *domain.Scenario, in *domain.ProjectionInput) { s.Projection = in })},
			"goal-seek":  {domain.KindGoalSeek, decode(func(s *domain.Scenario, in *domain.GoalSeekInput) { s.GoalSeek = in })},
			"early-retirement": {domain.KindEarlyRetirement, decode(func(s *domain.Scenario, in *domain.EarlyRetirementInput) {
				s.EarlyRetirement = in
			})},
			"dividend-income": {domain.KindDividend, decodeDividend},
			"valuation/foreign": {domain.KindForeignValuation, decode(func(s *domain.Scenario, in *domain.ForeignPurchase) {
				s.ForeignValuation = in
			})},
			"valuation/domestic": {domain.KindDomesticValuation, decode(func(s *domain.Scenario, in *domain.DomesticPurchase) {
				s.DomesticValuation = in
			})},
		},
	}
}

// decode unmarshals the body into a new T and attaches it to the scenario.
func decode[T any](attach func(*domain.Scenario, *T)) func([]byte, *domain.Scenario) error {
	return func(body []byte, s *domain.Scenario) error {
		in := new(T)
		if err := json.Unmarshal(body, in); err != nil {
			return err
		}
		attach(s, in)
		return nil
	}
}

// Handle is the fasthttp request handler.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch {
	case path == "/healthz":
		if !ctx.IsGet() {
			s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
			break
		}
		s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case path == "/api/v1/reports":
		s.handleReport(ctx)
	case strings.HasPrefix(path, simulationsPrefix):
		s.handleSimulation(ctx, strings.TrimPrefix(path, simulationsPrefix))
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}

	s.logger.Infof("%s %s -> %d in %s", ctx.Method(), path, ctx.Response.StatusCode(), time.Since(start))
}

func (s *Server) handleSimulation(ctx *fasthttp.RequestCtx, name string) {
	rt, ok := s.routes[name]
	if !ok {
		s.writeError(ctx, fasthttp.StatusNotFound, "unknown simulation "+name)
		return
	}
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	scenario := domain.Scenario{Name: name, Kind: rt.kind}
	if err := rt.decode(ctx.PostBody(), &scenario); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidateScenario(&scenario); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	result, err := s.engine.RunScenario(s.baseCtx, &scenario)
	if err != nil {
		s.writeError(ctx, statusFor(err), err.Error())
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, result)
}

// handleReport runs a whole configuration. The format query parameter picks
// an output formatter; the default is JSON.
func (s *Server) handleReport(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var cfg domain.Configuration
	if err := json.Unmarshal(ctx.PostBody(), &cfg); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidateConfiguration(&cfg); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	format := string(ctx.QueryArgs().Peek("format"))
	if format == "" {
		format = "json"
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	report, err := s.engine.RunScenarios(&cfg)
	if err != nil {
		s.writeError(ctx, statusFor(err), err.Error())
		return
	}
	body, err := f.Format(report)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType(contentType(f.Name()))
	ctx.SetBody(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, calculation.ErrIncompleteInput),
		errors.Is(err, calculation.ErrUnknownRegime),
		errors.Is(err, calculation.ErrMissingInput),
		errors.Is(err, calculation.ErrUnknownKind):
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}

func contentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "html":
		return "text/html; charset=utf-8"
	case "csv", "detailed-csv":
		return "text/csv; charset=utf-8"
	case "markdown":
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorf("encode response: %v", err)
		status = fasthttp.StatusInternalServerError
		body = []byte(`{"status":500,"message":"encode response"}`)
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:            s.Handle,
		Name:               "wealthlab",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}
	s.baseCtx = ctx

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(addr) }()
	s.logger.Infof("listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return err
		}
		return nil
	}
}
