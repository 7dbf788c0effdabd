package server

import (
	"net/http"

	"github.com/catalystauth/go-oauth-server/auth"
	"github.com/catalystauth/go-oauth-server/internal/config"
	"github.com/catalystauth/go-oauth-server/server/pendingauth"
	"github.com/catalystauth/go-oauth-server/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Server struct {
	mux     *http.ServeMux
	routes  []string
	config  *config.Config
	auth    *auth.AuthorizationService
	repos   auth.Repos
	pending pendingauth.Repo

	// Client credential intake strategies for /token, tried in order.
	clientAuth []auth.ClientAuthenticator
}

func New(cfg *config.Config, repos auth.Repos, tokens token.Store) (*Server, error) {
	authService, err := auth.NewAuthorizationService(repos, tokens)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to create authorization service")
	}

	s := &Server{
		mux:        http.NewServeMux(),
		config:     cfg,
		auth:       authService,
		repos:      repos,
		pending:    pendingauth.NewInMemoryRepo(),
		clientAuth: []auth.ClientAuthenticator{auth.BasicStrategy{}, auth.BodyStrategy{}},
	}

	if cfg.SeedDemoData || cfg.IsDev() {
		if err := s.seedDemoData(); err != nil {
			return nil, errors.Wrap(err, "[Server New] failed to seed demo data")
		}
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if !s.config.IsDev() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered")
	}
}
