// Package api serves the mapping tools over HTTP as JSON endpoints.
//
// Beatmaps travel as .osu text inside JSON bodies; the server never touches
// the filesystem. The browser UI under web/ is one client of these routes.
package api

import (
	"net/http"

	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes caps request bodies. A mapset's worth of .osu text
// fits comfortably.
const DefaultMaxBodyBytes = 16 << 20

// Options configures a Server.
type Options struct {
	Logger *zap.SugaredLogger
	// Leniency is used when a copy request does not carry one. Negative
	// means hitsounds.DefaultLeniency.
	Leniency     int
	Version      string
	MaxBodyBytes int64
	RateLimit    RateLimitConfig
	// Dev allows cross-origin requests from a local front-end dev server.
	Dev bool
}

// Server is the HTTP API server.
type Server struct {
	opts    Options
	log     *zap.SugaredLogger
	mux     *http.ServeMux
	handler http.Handler
}

// New creates a Server. Zero Logger, MaxBodyBytes and Version get defaults.
// Leniency is taken as given, since zero is a valid window; only a negative
// value selects hitsounds.DefaultLeniency.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Leniency < 0 {
		opts.Leniency = hitsounds.DefaultLeniency
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	s := &Server{
		opts: opts,
		log:  opts.Logger,
		mux:  http.NewServeMux(),
	}
	s.registerRoutes()

	mw := []Middleware{
		RequestIDMiddleware(),
		LoggingMiddleware(s.log),
		RateLimitMiddleware(opts.RateLimit, s.log),
		BodyLimitMiddleware(opts.MaxBodyBytes),
	}
	if opts.Dev {
		mw = append([]Middleware{CORSMiddleware}, mw...)
	}
	s.handler = ApplyMiddlewares(s.mux, mw...)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
