package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sasha-s/go-deadlock"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kyu49/euonymus/internal/config"
	"github.com/kyu49/euonymus/pkg/instrument"
)

const (
	// DefaultSessionTTL is how long a rendered page may wait before its
	// websocket connects.
	DefaultSessionTTL = 5 * time.Minute

	maxMessageSize  = 64 << 10
	shutdownTimeout = 5 * time.Second
)

// Server serves the live demo.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	registry *prometheus.Registry
	recorder instrument.Recorder
	active   prometheus.Gauge
	tracer   trace.Tracer

	upgrader websocket.Upgrader
	ttl      time.Duration

	mu       deadlock.Mutex
	sessions map[string]*Session
}

// Option configures a Server.
type Option func(*Server)

// WithRegistry registers metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithTracerProvider sets the provider used when tracing is enabled.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) { s.tracer = tp.Tracer(s.cfg.Tracing.TracerName) }
}

// WithSessionTTL sets how long an unconnected session is kept.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// New creates a server for cfg. A nil logger uses slog.Default.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger.With("component", "server"),
		ttl:      DefaultSessionTTL,
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.Server.ReadBufferSize,
			WriteBufferSize: cfg.Server.WriteBufferSize,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.recorder = instrument.Nop{}
	if cfg.Metrics.Enabled {
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
		}
		s.recorder = instrument.NewPrometheus(
			instrument.WithNamespace(cfg.Metrics.Namespace),
			instrument.WithRegistry(s.registry),
		)
		s.active = promauto.With(s.registry).NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Metrics.Namespace,
			Name:      "sessions_active",
			Help:      "Live sessions with a connected page.",
		})
	}

	switch {
	case !cfg.Tracing.Enabled:
		s.tracer = noop.NewTracerProvider().Tracer(cfg.Tracing.TracerName)
	case s.tracer == nil:
		s.tracer = otel.Tracer(cfg.Tracing.TracerName)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown failed", "error", err)
		}
	}()

	s.logger.Info("listening", "addr", srv.Addr)
	err := srv.ListenAndServe()
	if stderrors.Is(err, http.ErrServerClosed) {
		<-done
		s.closeAll()
		return nil
	}
	return err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.prune(time.Now())

	session, err := s.createSession()
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		http.Error(w, "session setup failed", http.StatusInternalServerError)
		return
	}
	page, err := session.Render()
	if err != nil {
		s.logger.Error("render failed", "session", session.ID, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(page)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	session := s.lookup(id)
	if session == nil {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	if !session.attach() {
		http.Error(w, "session already connected", http.StatusConflict)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "session", id, "error", err)
		s.drop(id)
		return
	}
	defer conn.Close()
	defer s.drop(id)

	if s.active != nil {
		s.active.Inc()
		defer s.active.Dec()
	}
	conn.SetReadLimit(maxMessageSize)
	session.logger.Debug("session connected")

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				session.logger.Warn("read failed", "error", err)
			}
			return
		}
		reply := session.Handle(ctx, data)
		if err := conn.WriteJSON(reply); err != nil {
			session.logger.Warn("write failed", "error", err)
			return
		}
	}
}

func (s *Server) createSession() (*Session, error) {
	session, err := newSession(s.cfg, s.logger, s.recorder, s.tracer)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session, nil
}

func (s *Server) lookup(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// drop removes and closes a session.
func (s *Server) drop(id string) {
	s.mu.Lock()
	session := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if session != nil {
		session.Close()
	}
}

// prune drops sessions whose page never connected.
func (s *Server) prune(now time.Time) {
	s.mu.Lock()
	var stale []string
	for id, session := range s.sessions {
		if session.expired(now, s.ttl) {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()
	for _, id := range stale {
		s.drop(id)
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.drop(id)
	}
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
