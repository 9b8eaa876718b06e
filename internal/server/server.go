// Package server exposes rendered channels over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/tesso57/feedsmith/internal/application/usecase"
	"go.uber.org/zap"
)

// Renderer renders a channel by slug on demand.
type Renderer interface {
	RenderByName(name string) (usecase.RenderedFeed, error)
}

// Server serves channel documents, rendering them per request so every
// response reflects the current article store.
type Server struct {
	renderer Renderer
	log      *zap.Logger
	addr     string
}

// New constructs a Server.
func New(renderer Renderer, log *zap.Logger, addr string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{renderer: renderer, log: log, addr: addr}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/feeds/{name}", s.handleFeed).Methods(http.MethodGet)
	r.Use(s.logRequests)
	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	rendered, err := s.renderer.RenderByName(name)
	if err != nil {
		s.log.Warn("render failed", zap.String("channel", name), zap.Error(err))
		http.Error(w, "unknown feed", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", rendered.MIMEType+"; charset="+rendered.Encoding)
	_, _ = w.Write([]byte(rendered.Body))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
