package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vcrobe/nojs-clock/appcomponents"
	"github.com/vcrobe/nojs-clock/internal/config"
	"github.com/vcrobe/nojs-clock/internal/metrics"
	"github.com/vcrobe/nojs-clock/runtime"
	"github.com/vcrobe/nojs-clock/vdom"
)

//go:embed templates/index.html
var indexTemplate string

var indexPage = template.Must(template.New("index").Parse(indexTemplate))

// LivePath is where the live session endpoint is mounted.
const LivePath = "/live"

// indexPageData holds template data for the index page
type indexPageData struct {
	Title    string
	Body     template.HTML
	LivePath string
}

// Server represents the HTTP server
type Server struct {
	server   *http.Server
	handler  http.Handler
	cfg      *config.Config
	clock    clockwork.Clock
	registry *prometheus.Registry
	recorder *metrics.Recorder
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
	closing  bool
	wg       sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces the real clock, typically with a fake one in tests.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithLogger replaces the global zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		clock:    clockwork.NewRealClock(),
		registry: prometheus.NewRegistry(),
		logger:   zap.L(),
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recorder = metrics.NewRecorder(s.registry)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc(LivePath, s.handleLive)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	s.handler = mux

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return s
}

// Handler returns the request router, for mounting in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, tears down every live session and
// waits for them to finish or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	s.mu.Lock()
	s.closing = true
	for _, sess := range s.sessions {
		sess.close()
	}
	s.mu.Unlock()

	err := s.server.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("live sessions did not stop: %w", ctx.Err())
	}
	return err
}

// ActiveSessions returns the number of mounted live sessions.
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) newApp() *appcomponents.App {
	return appcomponents.NewApp(
		appcomponents.WithTimeLayout(s.cfg.Clock.Layout),
		appcomponents.WithTickInterval(s.cfg.Clock.Interval),
	)
}

// Render returns the HTML of a one-shot render of the App.
func (s *Server) Render() (string, error) {
	scheduler := runtime.NewScheduler(s.clock, runtime.DiscardDispatcher)
	tree, err := runtime.Snapshot(s.newApp(), scheduler)
	if err != nil {
		return "", err
	}
	return vdom.HTML(tree)
}

// handleIndex serves the server-rendered page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	body, err := s.Render()
	if err != nil {
		s.logger.Error("Failed to render page", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := indexPageData{
		Title:    appcomponents.HeaderTitle,
		Body:     template.HTML(body), //nolint:gosec // produced by the escaping serializer
		LivePath: LivePath,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexPage.Execute(w, data); err != nil {
		s.logger.Error("Failed to execute index template", zap.Error(err))
	}
}

// handleHealth handles health check requests (always returns 200 for liveness)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
		s.logger.Error("Failed to write health response", zap.Error(err))
	}
}
