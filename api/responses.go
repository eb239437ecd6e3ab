package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/etnz/forecast"
	"github.com/rs/zerolog/log"
)

// response is the envelope of every API response.
type response struct {
	Code int    `json:"code"`
	Text string `json:"text"`
	Data any    `json:"data,omitempty"`
}

func (s *Server) sendResponse(w http.ResponseWriter, r *http.Request, data any) {
	s.writeJSON(w, r, http.StatusOK, response{Code: http.StatusOK, Text: "OK", Data: data})
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, text string) {
	s.writeJSON(w, r, status, response{Code: status, Text: text})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to encode response")
	}
}

// badRequestError reports an invalid path or query parameter.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// failure maps err to an error response.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	var badRequest *badRequestError
	switch {
	case errors.As(err, &badRequest), errors.Is(err, forecast.ErrUnknownMetric):
		s.errorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, forecast.ErrEditionNotFound), errors.Is(err, forecast.ErrValueNotFound):
		s.errorResponse(w, r, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
	}
}
