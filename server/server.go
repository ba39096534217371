// Package server is the development relay: it forwards /api calls to the
// school backend with the Origin and Referer the backend's allow-list
// accepts, and answers CORS for browsers running the portal elsewhere.
package server

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"strings"

	"github.com/jrsteele09/afterschool-portal/internal/config"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env    string
	mux    *http.ServeMux
	routes []string
	config config.Config
	proxy  *httputil.ReverseProxy
}

func New(cfg config.Config) (*Server, error) {
	proxy, err := newProxy(cfg)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create proxy: %w", err)
	}

	s := &Server{
		env:    cfg.GetEnv(),
		mux:    http.NewServeMux(),
		config: cfg,
		proxy:  proxy,
	}
	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes returns the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("*", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
