package server

import (
	"net/http"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.RequestIDMiddleware, s.LoggingMiddleware, s.RecoverMiddleware))

	// Every method under the prefix goes upstream; preflights stop at CORS.
	// The bare prefix is registered too so the mux does not redirect it.
	relay := ChainMiddleware(s.proxy.ServeHTTP, s.RelayMiddleware()...)
	if prefix := s.config.GetProxyPrefix(); prefix != "" {
		s.RegisterRouteFunc(prefix, relay)
	}
	s.RegisterRouteFunc(s.config.GetProxyPrefix()+"/", relay)
}

// HealthHandler reports that the relay is up and where it forwards to.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok " + s.config.GetTargetOrigin() + "\n"))
	}
}
