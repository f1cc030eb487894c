// Package server exposes the tool API over HTTP: usage counting, local
// calculator evaluation and AI generation.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/toolsathi/toolsathi/pkg/audit"
	cachepkg "github.com/toolsathi/toolsathi/pkg/cache/sqlite"
	"github.com/toolsathi/toolsathi/pkg/calc"
	"github.com/toolsathi/toolsathi/pkg/config"
	"github.com/toolsathi/toolsathi/pkg/generate"
	"github.com/toolsathi/toolsathi/pkg/ledger"
	"github.com/toolsathi/toolsathi/pkg/models"
	"github.com/toolsathi/toolsathi/pkg/quota"
	"github.com/toolsathi/toolsathi/pkg/registry"
)

// Server is the ToolSathi HTTP API.
type Server struct {
	cfg      *config.Config
	ledger   ledger.Ledger
	provider generate.Provider
	cache    *cachepkg.Cache
	enforcer *quota.Enforcer
	auditor  *audit.Logger
	mux      *http.ServeMux
}

// New creates a Server wired with all dependencies. Cache, enforcer and
// auditor may be nil, in which case the matching behavior is skipped.
func New(cfg *config.Config, l ledger.Ledger, p generate.Provider, c *cachepkg.Cache, e *quota.Enforcer, a *audit.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		ledger:   l,
		provider: p,
		cache:    c,
		enforcer: e,
		auditor:  a,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/usage", s.handleUsageList)
	s.mux.HandleFunc("POST /api/usage/{toolId}", s.handleUsageRecord)
	s.mux.HandleFunc("POST /api/calc/{toolId}", s.handleCalc)
	s.mux.HandleFunc("POST /api/generate/{toolId}", s.handleGenerate)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the API server with graceful shutdown support.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("toolsathi api listening on %s", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUsageList(w http.ResponseWriter, r *http.Request) {
	records, err := s.ledger.List(r.Context())
	if err != nil {
		log.Printf("usage list error: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to list usage")
		return
	}
	if records == nil {
		records = []models.UsageRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleUsageRecord(w http.ResponseWriter, r *http.Request) {
	// The ledger accepts any tool id; the registry is authoritative for
	// dispatch and display, not for counting.
	toolID := r.PathValue("toolId")
	if err := s.ledger.Record(r.Context(), toolID); err != nil {
		log.Printf("usage record error: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to record usage")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	toolID := r.PathValue("toolId")
	tool, ok := registry.Lookup(toolID)
	if !ok || tool.Kind != registry.KindCalculator {
		writeJSONError(w, http.StatusNotFound, "unknown calculator tool")
		return
	}

	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := EvaluateCalc(toolID, payload)
	if err != nil {
		switch {
		case errors.Is(err, calc.ErrNotComputable), errors.Is(err, calc.ErrInvertedDates):
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrBadCalcInput):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("calc %s error: %v", toolID, err)
			writeJSONError(w, http.StatusInternalServerError, "calculation failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	toolID := r.PathValue("toolId")
	tool, ok := registry.Lookup(toolID)
	if !ok || tool.Kind != registry.KindGenerator {
		writeJSONError(w, http.StatusNotFound, "unknown generator tool")
		return
	}
	if s.provider == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "generator tools are not configured")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Input == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if s.enforcer != nil {
		if err := s.enforcer.Check(r.Context(), toolID); err != nil {
			if errors.Is(err, quota.ErrQuotaExceeded) {
				writeJSONError(w, http.StatusTooManyRequests, "daily generation quota exceeded")
				return
			}
			log.Printf("quota check error: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "quota check failed")
			return
		}
	}

	// Cache check
	var hash string
	if s.cache != nil {
		hash = cachepkg.HashRequest(toolID, s.cfg.Generate.Models, req.Input)
		if cached, ok := s.cache.Get(hash, toolID); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Toolsathi-Cache", "hit")
			w.Write(cached)
			return
		}
	}

	reqStart := time.Now()
	result, err := s.runGeneration(r.Context(), toolID, req.Input)
	latency := time.Since(reqStart).Milliseconds()

	if err != nil {
		log.Printf("generate %s failed: %v", toolID, err)
		s.logGeneration(toolID, req.Input, "", http.StatusBadGateway, latency)
		writeJSONError(w, http.StatusBadGateway, "generation failed")
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "encode response")
		return
	}

	if s.cache != nil {
		if err := s.cache.Put(hash, toolID, body); err != nil {
			log.Printf("cache put error: %v", err)
		}
	}

	// Usage counting and audit logging are best effort and never delay
	// the response.
	go func() {
		if err := s.ledger.Record(context.Background(), toolID); err != nil {
			log.Printf("usage record error: %v", err)
		}
	}()
	s.logGeneration(toolID, req.Input, string(body), http.StatusOK, latency)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Toolsathi-Cache", "miss")
	w.Write(body)
}

type generateRequest struct {
	Input string `json:"input"`
}

// runGeneration calls the provider method matching the tool and wraps the
// result in its response shape.
func (s *Server) runGeneration(ctx context.Context, toolID, input string) (any, error) {
	switch toolID {
	case "viral-title":
		titles, err := s.provider.Titles(ctx, input)
		if err != nil {
			return nil, err
		}
		return map[string]any{"titles": titles}, nil
	case "tags":
		tags, err := s.provider.Tags(ctx, input)
		if err != nil {
			return nil, err
		}
		return map[string]any{"tags": tags}, nil
	case "shorts-hook":
		hooks, err := s.provider.Hooks(ctx, input)
		if err != nil {
			return nil, err
		}
		return map[string]any{"hooks": hooks}, nil
	case "meta-description":
		desc, err := s.provider.MetaDescription(ctx, input)
		if err != nil {
			return nil, err
		}
		return map[string]any{"description": desc}, nil
	case "thumbnail-ctr":
		report, err := s.provider.AnalyzeHeadline(ctx, input)
		if err != nil {
			return nil, err
		}
		return report, nil
	default:
		return nil, fmt.Errorf("no generator for tool %s", toolID)
	}
}

func (s *Server) logGeneration(toolID, input, output string, status int, latencyMs int64) {
	if s.auditor == nil {
		return
	}
	entry := models.GenerationLog{
		RequestID:  audit.NewRequestID(),
		ToolID:     toolID,
		Model:      s.firstModel(),
		Input:      input,
		Output:     output,
		StatusCode: status,
		LatencyMs:  latencyMs,
		CreatedAt:  time.Now().UTC(),
	}
	go func() {
		if err := s.auditor.Log(context.Background(), entry); err != nil {
			log.Printf("audit log error: %v", err)
		}
	}()
}

func (s *Server) firstModel() string {
	if len(s.cfg.Generate.Models) > 0 {
		return s.cfg.Generate.Models[0]
	}
	return ""
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"message":%q,"code":%d}}`+"\n", message, code)
}
