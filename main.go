package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lguibr/arbiter/actor"
	"github.com/lguibr/arbiter/auth"
	"github.com/lguibr/arbiter/config"
	"github.com/lguibr/arbiter/connectfour"
	"github.com/lguibr/arbiter/db"
	"github.com/lguibr/arbiter/httpapi"
	"github.com/lguibr/arbiter/module"
	"github.com/lguibr/arbiter/persistence"
	"github.com/lguibr/arbiter/repository"
	"github.com/lguibr/arbiter/supervisor"
	"github.com/lguibr/arbiter/tictactoe"
	"github.com/lguibr/arbiter/tracing"
)

const serviceName = "arbiter"

func main() {
	// exitCode is applied by the first-registered defer, so it runs after
	// every other deferred cleanup (DB close, tracing shutdown).
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown error: %v", err)
		}
	}()

	conn, err := db.Open(cfg.DBURL, cfg.DBPoolSize)
	if err != nil {
		log.Fatalf("db open/migrate: %v", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}()

	registry := module.NewRegistry()
	tictactoe.Register(registry)
	connectfour.Register(registry)

	engine := actor.NewEngine()

	repo := repository.NewSQLiteRepository(conn)
	persistencePID := engine.Spawn(actor.NewProps(persistence.NewProducer(repo, cfg.DBPoolSize)))
	if persistencePID == nil {
		log.Fatal("failed to spawn persistence worker")
	}

	supervisorPID := engine.Spawn(actor.NewProps(supervisor.NewProducer(registry, persistencePID)))
	if supervisorPID == nil {
		log.Fatal("failed to spawn supervisor")
	}
	// Give the supervisor a moment to finish its LoadAllSnapshots restore
	// before traffic arrives; it stashes anything that beats this anyway.
	time.Sleep(50 * time.Millisecond)

	issuer := auth.NewIssuer(cfg.JWTSecret)
	router := httpapi.NewRouter(engine, supervisorPID, issuer, registry, serviceName)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %v", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	engine.Shutdown(5 * time.Second)
}
