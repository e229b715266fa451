// Package webhost is an HTTP-backed bridge.Host for running the identity
// bridge outside a mobile container. It serves the bootstrapped content for
// each hosted session and relays the page's postMessage events back to the
// bridge over a websocket channel.
package webhost

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"
	"github.com/go-chi/traceid"
	"github.com/goware/cachestore"
	"github.com/goware/cachestore/cachestorectl"
	"github.com/goware/cachestore/memlru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	identitybridge "github.com/truora/identity-bridge"
	"github.com/truora/identity-bridge/bridge"
	"github.com/truora/identity-bridge/config"
)

type Server struct {
	Config   *config.Config
	Log      zerolog.Logger
	Server   *http.Server
	Registry *prometheus.Registry

	// Metrics is shared by every bridge hosted on this server.
	Metrics *bridge.Metrics

	sessions   cachestore.Store[*Session]
	sessionTTL time.Duration
	startTime  time.Time
	running    int32
}

func New(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	sessions, err := cachestorectl.Open[*Session](memlru.Backend(cfg.Sessions.CacheSize))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	httpServer := &http.Server{
		ReadTimeout:       45 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       45 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		Config:     cfg,
		Log:        log,
		Server:     httpServer,
		Registry:   registry,
		Metrics:    bridge.NewMetrics(registry),
		sessions:   sessions,
		sessionTTL: time.Duration(cfg.Sessions.TTLSeconds) * time.Second,
		startTime:  time.Now(),
	}, nil
}

func (s *Server) Run(ctx context.Context, l net.Listener) error {
	if s.IsRunning() {
		return fmt.Errorf("webhost: already running")
	}

	s.Log.Info().
		Str("op", "run").
		Str("ver", identitybridge.VERSION).
		Str("addr", l.Addr().String()).
		Msg("-> webhost: started")

	atomic.StoreInt32(&s.running, 1)
	defer atomic.StoreInt32(&s.running, 0)

	s.Server.Handler = s.Handler()

	go func() {
		<-ctx.Done()
		s.Stop(context.Background())
	}()

	err := s.Server.Serve(l)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(timeoutCtx context.Context) {
	if !s.IsRunning() || s.IsStopping() {
		return
	}
	atomic.StoreInt32(&s.running, 2)

	s.Log.Info().Str("op", "stop").Msg("-> webhost: stopping..")
	s.Server.Shutdown(timeoutCtx)
	s.Log.Info().Str("op", "stop").Msg("-> webhost: stopped.")
}

func (s *Server) IsRunning() bool {
	return atomic.LoadInt32(&s.running) == 1
}

func (s *Server) IsStopping() bool {
	return atomic.LoadInt32(&s.running) == 2
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(traceid.Middleware)
	r.Use(httplog.RequestLogger(s.Log, []string{"/", "/health", "/status", "/favicon.ico"}))

	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.Config.Service.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         600,
	}).Handler)

	r.Use(middleware.PageRoute("/health", http.HandlerFunc(s.healthHandler)))
	r.Use(middleware.PageRoute("/status", http.HandlerFunc(s.statusHandler)))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(28 * time.Second))
		r.Get("/session/{sessionID}", s.contentHandler)
		r.Handle("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))
	})

	// The channel stays open for the lifetime of the hosted page, so no
	// timeout middleware on this route.
	r.Get("/session/{sessionID}/channel", s.channelHandler)

	return r
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"startTime": s.startTime,
		"uptime":    uint64(time.Now().UTC().Sub(s.startTime).Seconds()),
		"ver":       identitybridge.VERSION,
		"mode":      s.Config.Mode.String(),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(status)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
