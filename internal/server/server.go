// Package server exposes the cleaning pipeline over HTTP for the browser UI
// and for scripted callers.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/matsen/bibclean/internal/bibtex"
)

const (
	// DefaultAddr binds to loopback: the server is a local tool, not a
	// public service.
	DefaultAddr = "127.0.0.1:8000"

	// DefaultRateLimit caps clean requests per second.
	DefaultRateLimit = 10.0

	// MaxRequestBytes bounds the request body; larger .bib files should go
	// through the CLI.
	MaxRequestBytes = 10 << 20
)

// CleanRequest is the wire form of a clean call. Absent keep_fields or
// titlecase fall back to the server's configured defaults.
type CleanRequest struct {
	Input         string            `json:"input"`
	KeepFields    []string          `json:"keep_fields,omitempty"`
	Titlecase     *bool             `json:"titlecase,omitempty"`
	RegenKeys     bool              `json:"regen_keys,omitempty"`
	JournalAbbrev map[string]string `json:"journal_abbrev,omitempty"`
}

// CleanResponse carries the cleaned document.
type CleanResponse struct {
	Output string `json:"output"`
}

// ErrorResponse carries a failure message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server handles the cleaning API.
type Server struct {
	defaults bibtex.Options
	limiter  *rate.Limiter
	uiDir    string
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the options applied when a request omits them.
func WithDefaults(opts bibtex.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// WithRateLimit sets the clean-request rate limit in requests per second.
func WithRateLimit(rps float64) Option {
	return func(s *Server) { s.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1) }
}

// WithUIDir serves static UI files from dir at the root path.
func WithUIDir(dir string) Option {
	return func(s *Server) { s.uiDir = dir }
}

// New builds a Server with the given options.
func New(options ...Option) *Server {
	s := &Server{
		defaults: bibtex.DefaultOptions(),
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), int(DefaultRateLimit)+1),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/clean", s.handleClean)
	if s.uiDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.uiDir)))
	}
	return mux
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	var req CleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := s.options(req)
	output := bibtex.Clean(req.Input, opts)
	writeJSON(w, http.StatusOK, CleanResponse{Output: output})
}

// options merges a request's overrides onto the server defaults.
func (s *Server) options(req CleanRequest) bibtex.Options {
	opts := s.defaults
	if req.KeepFields != nil {
		opts.KeepFields = req.KeepFields
	}
	if req.Titlecase != nil {
		opts.Titlecase = *req.Titlecase
	}
	if req.RegenKeys {
		opts.RegenKeys = true
	}
	if len(req.JournalAbbrev) > 0 {
		opts.JournalAbbrev = req.JournalAbbrev
	}
	return opts
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
