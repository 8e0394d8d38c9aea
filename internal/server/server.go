// Package server exposes the projection engine over a small JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/theirongolddev/fyfire/internal/config"
	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
)

// Server serves projections over HTTP.
type Server struct {
	cfg       config.ServerConfig
	projector *fire.Projector
	log       zerolog.Logger

	limiter *rate.Limiter
	cache   *cache.Cache
	now     func() time.Time
}

// New returns a server. Zero limiter or cache settings fall back to defaults.
func New(cfg config.ServerConfig, p *fire.Projector, log zerolog.Logger) *Server {
	def := config.DefaultConfig().Server
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.Burst < 1 {
		cfg.Burst = def.Burst
	}
	if cfg.CacheTTLSec <= 0 {
		cfg.CacheTTLSec = def.CacheTTLSec
	}

	ttl := time.Duration(cfg.CacheTTLSec) * time.Second
	return &Server{
		cfg:       cfg,
		projector: p,
		log:       log,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cache:     cache.New(ttl, 2*ttl),
		now:       time.Now,
	}
}

// Handler returns the routed request handler.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		defer func() {
			s.log.Debug().
				Str("method", string(ctx.Method())).
				Str("path", string(ctx.Path())).
				Int("status", ctx.Response.StatusCode()).
				Dur("took", time.Since(start)).
				Msg("request")
		}()

		if !s.limiter.Allow() {
			s.log.Warn().Str("path", string(ctx.Path())).Str("remote", ctx.RemoteAddr().String()).Msg("rate limit exceeded")
			writeError(ctx, fasthttp.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		switch string(ctx.Path()) {
		case "/healthz":
			ctx.SetContentType("text/plain; charset=utf-8")
			ctx.SetBodyString("ok\n")
		case "/v1/project":
			s.handleProject(ctx)
		case "/v1/defaults":
			s.handleDefaults(ctx)
		default:
			writeError(ctx, fasthttp.StatusNotFound, "not found")
		}
	}
}

// Run serves on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "fyfire",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(s.cfg.Addr)
	}()
	s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.ShutdownWithContext(shutdownCtx)
	case err := <-errCh:
		if err == nil {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) handleProject(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.Response.Header.Set("Allow", fasthttp.MethodPost)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body := ctx.PostBody()
	raw := ctx.QueryArgs().GetBool("raw")

	key := s.cacheKey(body, raw)
	if cached, ok := s.cache.Get(key); ok {
		ctx.Response.Header.Set("X-Cache", "hit")
		writeBody(ctx, fasthttp.StatusOK, cached.([]byte))
		return
	}

	in, err := decodeInputs(body)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if !raw {
		if err := in.Validate(); err != nil {
			var verrs model.ValidationErrors
			if errors.As(err, &verrs) {
				writeJSON(ctx, fasthttp.StatusUnprocessableEntity, ErrorResponse{
					Status:  fasthttp.StatusUnprocessableEntity,
					Message: "invalid inputs",
					Errors:  verrs,
				})
				return
			}
			writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	res := s.projector.Project(in.Snapshot())
	data, err := json.Marshal(NewProjectionResponse(res, s.projector.Policy().PensionAccessAge))
	if err != nil {
		s.log.Error().Err(err).Msg("encoding projection")
		writeError(ctx, fasthttp.StatusInternalServerError, "encoding projection")
		return
	}

	s.cache.SetDefault(key, data)
	ctx.Response.Header.Set("X-Cache", "miss")
	writeBody(ctx, fasthttp.StatusOK, data)
}

func (s *Server) handleDefaults(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.Response.Header.Set("Allow", fasthttp.MethodGet)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, DefaultsResponse{
		Inputs:      model.DefaultInputs(),
		Constraints: model.Constraints,
		Version:     model.SchemaVersion,
	})
}

// cacheKey scopes a body to the calendar day, since projected dates move
// with the clock.
func (s *Server) cacheKey(body []byte, raw bool) string {
	day := s.now().Format(time.DateOnly)
	mode := "v"
	if raw {
		mode = "r"
	}
	return day + "|" + mode + "|" + string(bytes.TrimSpace(body))
}

// decodeInputs accepts either a bare Inputs object or {"inputs": {...}}
// and merges it over the defaults.
func decodeInputs(body []byte) (model.Inputs, error) {
	in := model.DefaultInputs()

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return in, err
	}
	if nested, ok := envelope["inputs"]; ok {
		body = nested
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return model.DefaultInputs(), err
	}
	return in, nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		ctx.Error("encoding response", fasthttp.StatusInternalServerError)
		return
	}
	writeBody(ctx, status, data)
}

func writeBody(ctx *fasthttp.RequestCtx, status int, data []byte) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}
