// Command server runs the user authentication HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/userauth/internal/auth/password"
	"github.com/skillsenselab/userauth/internal/auth/token"
	"github.com/skillsenselab/userauth/internal/config"
	"github.com/skillsenselab/userauth/internal/logger"
	"github.com/skillsenselab/userauth/internal/server"
	"github.com/skillsenselab/userauth/internal/user"
	"github.com/skillsenselab/userauth/internal/user/mongostore"
	"github.com/skillsenselab/userauth/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("Starting service", map[string]interface{}{
		"service":     cfg.Name,
		"version":     version.GetVersionInfo().String(),
		"environment": cfg.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Mongo.ConnectTimeout)*time.Second)
	defer cancel()

	client, err := mongostore.Connect(connectCtx, cfg.Mongo.URI)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error("Mongo disconnect error", map[string]interface{}{"error": err.Error()})
		}
	}()

	store := mongostore.New(client.Database(cfg.Mongo.Database), log)
	if err := store.EnsureIndexes(connectCtx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	codec, err := token.NewCodec(token.Config{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL(),
		Issuer: cfg.Name,
	})
	if err != nil {
		return fmt.Errorf("create token codec: %w", err)
	}

	hasher := password.NewBcryptHasher(password.WithCost(cfg.Auth.BcryptCost))
	svc := user.NewService(store, hasher, codec, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name, store.Ping)

	handler := server.NewHandler(svc, codec, cfg.Auth.TokenTTL(), cfg.IsProduction())
	handler.RegisterRoutes(srv.GinEngine())

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	return srv.Stop(context.Background())
}
