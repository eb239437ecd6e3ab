// Package api serves forecasts over a read-only JSON HTTP API.
//
//	GET /metrics
//	GET /editions
//	GET /editions/:edition
//	GET /editions/:edition/:metric?years=2025-2030
//	GET /editions/:edition/:metric/:year
//	GET /compare/:base/:comparison/:metric?years=2025-2030
//
// Every response is a JSON object with a code and a text, successful responses carry
// their payload in data.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/etnz/forecast"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Store opens editions, *forecast.Store is the usual implementation.
type Store interface {
	Open(edition string) (*forecast.Forecast, error)
	Editions() ([]forecast.Edition, error)
}

// Server is the API http.Handler.
type Server struct {
	store  Store
	router *httprouter.Router

	// Forecasts are read-only: opened once, they are shared between requests.
	mu        sync.Mutex
	forecasts map[string]*forecast.Forecast
	loading   singleflight.Group
}

// New returns a Server over store.
func New(store Store) *Server {
	s := &Server{
		store:     store,
		forecasts: make(map[string]*forecast.Forecast),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *httprouter.Router {
	router := httprouter.New()
	router.GET("/metrics", s.metricsHandler)
	router.GET("/editions", s.editionsHandler)
	router.GET("/editions/:edition", s.editionHandler)
	router.GET("/editions/:edition/:metric", s.seriesHandler)
	router.GET("/editions/:edition/:metric/:year", s.valueHandler)
	router.GET("/compare/:base/:comparison/:metric", s.compareHandler)

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.errorResponse(w, r, http.StatusNotFound, "no such endpoint")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.errorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		log.Error().Interface("panic", v).Str("path", r.URL.Path).Msg("handler panicked")
		s.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
	}
	return router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.router.ServeHTTP(rec, r)
	log.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rec.status).
		Dur("duration", time.Since(start)).
		Msg("request")
}

// open returns the forecast of edition, loading it once.
func (s *Server) open(edition string) (*forecast.Forecast, error) {
	s.mu.Lock()
	f, ok := s.forecasts[edition]
	s.mu.Unlock()
	if ok {
		return f, nil
	}

	v, err, _ := s.loading.Do(edition, func() (any, error) {
		s.mu.Lock()
		f, ok := s.forecasts[edition]
		s.mu.Unlock()
		if ok {
			return f, nil
		}
		f, err := s.store.Open(edition)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.forecasts[edition] = f
		s.mu.Unlock()
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*forecast.Forecast), nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
