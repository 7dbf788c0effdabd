package server

import (
	"time"

	"github.com/catalystauth/go-oauth-server/clients"
	"github.com/catalystauth/go-oauth-server/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// seedDemoData provisions the demo user accounts and client registrations
// used in development.
func (s *Server) seedDemoData() error {
	passwordHash, err := users.HashPassword("password")
	if err != nil {
		return errors.Wrap(err, "[seedDemoData] HashPassword")
	}

	demoUsers := []*users.User{
		{ID: "user-catalyst-tester", Email: "catalyst.tester@gmail.com.x", PasswordHash: passwordHash, DateJoined: time.Now()},
		{ID: "user-it-testers", Email: "ittesters@hotmail.co.nz.x", PasswordHash: passwordHash, DateJoined: time.Now()},
	}
	for _, user := range demoUsers {
		if err := s.repos.Users.Upsert(user); err != nil {
			return errors.Wrap(err, "[seedDemoData] Users.Upsert")
		}
	}

	demoClients := []*clients.Client{
		{ID: "test", Name: "Test Client", Secret: "hunter2", RedirectURIs: []string{"http://localhost:8080/"}},
		{ID: "sp-demo", Name: "Demo Service Provider", Secret: "hunter2", RedirectURIs: []string{"http://localhost:8080/"}},
	}
	for _, client := range demoClients {
		if err := s.repos.Clients.Upsert(client); err != nil {
			return errors.Wrap(err, "[seedDemoData] Clients.Upsert")
		}
	}

	log.Info().Int("users", len(demoUsers)).Int("clients", len(demoClients)).Msg("seeded demo data")
	return nil
}
