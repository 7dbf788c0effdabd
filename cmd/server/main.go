package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/catalystauth/go-oauth-server/auth"
	"github.com/catalystauth/go-oauth-server/clients"
	"github.com/catalystauth/go-oauth-server/clients/boltrepo"
	"github.com/catalystauth/go-oauth-server/codes"
	"github.com/catalystauth/go-oauth-server/internal/config"
	"github.com/catalystauth/go-oauth-server/server"
	"github.com/catalystauth/go-oauth-server/sessions"
	"github.com/catalystauth/go-oauth-server/token"
	"github.com/catalystauth/go-oauth-server/transactions"
	"github.com/catalystauth/go-oauth-server/users/repofake"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	if cfg.IsDev() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	displayAppname(cfg.AppName)

	clientRepo, closeClients, err := newClientRepo(cfg)
	if err != nil {
		return fmt.Errorf("newClientRepo: %w", err)
	}
	defer closeClients()

	repos := auth.Repos{
		Users:        repofake.NewFakeUserRepo(),
		Clients:      clientRepo,
		Sessions:     sessions.NewInMemoryRepo(cfg.SessionTTL),
		Transactions: transactions.NewInMemoryRepo(),
		Codes:        codes.NewInMemoryRepo(cfg.CodeTTL),
	}
	tokens := token.NewInMemoryStore(cfg.AccessTokenTTL)

	srv, err := server.New(cfg, repos, tokens)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: srv}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Str("addr", httpServer.Addr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("ListenAndServe: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("Shutdown: %w", err)
		}
		return nil
	})

	return group.Wait()
}

// newClientRepo selects the client directory backend: bbolt when a path is
// configured, in-memory otherwise.
func newClientRepo(cfg *config.Config) (clients.Repo, func(), error) {
	if cfg.ClientsDBPath == "" {
		return clients.NewInMemoryRepo(), func() {}, nil
	}
	repo, err := boltrepo.Open(cfg.ClientsDBPath)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { _ = repo.Close() }, nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
