package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ravik808/sitetrust/internal/app"
	"github.com/ravik808/sitetrust/internal/history"
	"github.com/ravik808/sitetrust/internal/interfaces"
	"github.com/ravik808/sitetrust/internal/logging"
)

const defaultVersion = "1.0.0"

// Server is the HTTP + WebSocket API surface for the trust scorer.
type Server struct {
	cfg      Config
	orch     *app.Orchestrator
	history  interfaces.AssessmentStore
	router   chi.Router
	upgrader websocket.Upgrader
	logger   interfaces.Logger
}

// NewServer wires the routes around an orchestrator.
func NewServer(cfg Config, orch *app.Orchestrator, logger interfaces.Logger) *Server {
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}

	s := &Server{
		cfg:     cfg,
		orch:    orch,
		history: orch.History(),
		router:  chi.NewRouter(),
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.recoverMiddleware)
	r.Use(s.corsMiddleware)

	r.Options("/api/v1/analyze", s.optionsHandler("POST"))
	r.Options("/api/v1/assessments", s.optionsHandler("GET"))
	r.Options("/api/v1/assessments/{id}", s.optionsHandler("GET"))

	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Get("/api/v1/analyze/stream", s.handleAnalyzeStream)
	r.Get("/api/v1/assessments", s.handleListAssessments)
	r.Get("/api/v1/assessments/{id}", s.handleGetAssessment)
	r.Get("/api/v1/health", s.handleHealth)

	if s.cfg.ScreenshotDir != "" {
		fs := http.StripPrefix("/screenshots", http.FileServer(http.Dir(s.cfg.ScreenshotDir)))
		r.Get("/screenshots/*", fs.ServeHTTP)
	}
}

// recoverMiddleware is the catch-all boundary for handler panics: the request
// dies with the standard 500 envelope instead of a dropped connection.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					// net/http aborts responses with this sentinel; pass it on.
					panic(rec)
				}
				s.logger.Error("panic serving request",
					interfaces.Field{Key: "method", Value: r.Method},
					interfaces.Field{Key: "path", Value: r.URL.Path},
					interfaces.Field{Key: "panic", Value: fmt.Sprint(rec)},
					interfaces.Field{Key: "stack", Value: string(debug.Stack())})
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []interfaces.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, interfaces.Field{Key: "query", Value: q})
	}

	if r.Body != nil && r.Method == http.MethodPost {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, interfaces.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{StatusCode: status, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{StatusCode: status, Message: msg})
}

// --- HTTP handlers ---

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(body.URL) == "" {
		writeError(w, http.StatusBadRequest, "missing url")
		return
	}

	assessment, err := s.orch.Analyze(r.Context(), body.URL, nil)
	if err != nil {
		if errors.Is(err, app.ErrInvalidURL) {
			s.logger.Warn("analysis rejected",
				interfaces.Field{Key: "url", Value: body.URL},
				interfaces.Field{Key: "error", Value: err.Error()})
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Warn("analysis failed",
			interfaces.Field{Key: "url", Value: body.URL},
			interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", interfaces.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	var req AnalyzeRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(ProgressEvent{Type: "error", Error: "invalid request"})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		_ = conn.WriteJSON(ProgressEvent{Type: "error", Error: "missing url"})
		return
	}

	// Stage events flow through a buffered channel and are dropped when the
	// writer lags, so a slow client never blocks the analysis itself.
	events := make(chan app.Stage, 16)
	progress := func(stage app.Stage) {
		select {
		case events <- stage:
		default:
		}
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for stage := range events {
			if err := conn.WriteJSON(ProgressEvent{Type: "progress", Stage: string(stage)}); err != nil {
				return
			}
		}
	}()

	assessment, err := s.orch.Analyze(r.Context(), req.URL, progress)

	// Stop the writer before touching the connection again; gorilla allows
	// one concurrent writer only.
	close(events)
	<-writerDone

	if err != nil {
		_ = conn.WriteJSON(ProgressEvent{Type: "error", Error: err.Error()})
		return
	}
	_ = conn.WriteJSON(ProgressEvent{Type: "result", Data: assessment})
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "assessment history is disabled")
		return
	}

	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	summaries, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.logger.Warn("listing assessments", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "assessment history is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	assessment, err := s.history.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	if err != nil {
		s.logger.Warn("getting assessment",
			interfaces.Field{Key: "id", Value: id},
			interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.cfg.Version})
}
