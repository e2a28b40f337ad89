package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/quillbase/go-blog-server/internal/config"
	"github.com/quillbase/go-blog-server/internal/database"
	postsgorm "github.com/quillbase/go-blog-server/posts/gormrepo"
	rolesgorm "github.com/quillbase/go-blog-server/roles/gormrepo"
	"github.com/quillbase/go-blog-server/server"
	"github.com/quillbase/go-blog-server/sessions"
	sessionsgorm "github.com/quillbase/go-blog-server/sessions/gormrepo"
	sessionsredis "github.com/quillbase/go-blog-server/sessions/redisrepo"
	usersgorm "github.com/quillbase/go-blog-server/users/gormrepo"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	srv, err := buildServer(c)
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	db, err := database.Init(c.GetDatabasePath(), c.GetEnv() == "DEV")
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	var sessionRepo sessions.Repo
	switch c.GetSessionStore() {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: c.GetRedisAddr()})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		sessionRepo = sessionsredis.New(rdb)
	case "memory":
		sessionRepo = sessions.NewInMemoryRepo()
	default:
		sessionRepo = sessionsgorm.New(db)
	}

	manager, err := sessions.NewManager(sessionRepo,
		sessions.WithTTLs(c.GetSessionAbsoluteTTL(), c.GetSessionIdleTTL()),
		sessions.WithTokenLength(c.GetSessionTokenLength()),
	)
	if err != nil {
		return nil, err
	}

	repos := server.Repos{
		Users: usersgorm.New(db),
		Roles: rolesgorm.New(db),
		Posts: postsgorm.New(db),
	}

	return server.New(c, repos, manager)
}

func setupLogging(c config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if c.GetEnv() == "DEV" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
