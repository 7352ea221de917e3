// Package server exposes one card-data reader over a read-only JSON
// API. All state lives in the shared Reader; handlers are stateless.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Drasnov/mtga-reader/internal/logger"
	"github.com/Drasnov/mtga-reader/internal/mtga"
)

// Server routes card lookups over a shared Reader.
type Server struct {
	reader *mtga.Reader
	log    *logger.Logger
	mux    *chi.Mux
}

// New builds the router. A nil logger selects the process default.
func New(reader *mtga.Reader, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Global()
	}
	s := &Server{reader: reader, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/languages", s.handleLanguages)
		r.Get("/enums", s.handleEnums)
		r.Get("/enums/{type}", s.handleEnum)
		r.Get("/cards", s.handleCardsByName)
		r.Get("/cards/{id}", s.handleCardByID)
		r.Get("/cards/{id}/art", s.handleCardArt)
		r.Get("/cards/{id}/art/{role}", s.handleCardArtImage)
	})
	s.mux = r
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe blocks serving on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.With().Str("addr", addr).Logger().Info("http server listening")
	return srv.ListenAndServe()
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Logger().
			Info("request served")
	})
}
