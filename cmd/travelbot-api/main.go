// README: Entry point; loads config, wires the router and collaborators, serves HTTP until signalled.
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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/1234620/Travel-Based-Chatbot/internal/app"
	"github.com/1234620/Travel-Based-Chatbot/internal/config"
	httptransport "github.com/1234620/Travel-Based-Chatbot/internal/http"
	"github.com/1234620/Travel-Based-Chatbot/internal/logger"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.Log.Format == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("wire application", zap.Error(err))
	}
	defer a.Close()

	srv, err := httptransport.NewServer(httptransport.ServerDeps{
		Chat:               a.Router,
		Flights:            a.Flights,
		Hotels:             a.Hotels,
		Itinerary:          a.Itinerary,
		Destinations:       a.Destinations,
		Logger:             lg.Named("http"),
		AllowedOrigins:     cfg.HTTP.AllowedOrigins,
		RateLimitPerSecond: cfg.HTTP.RateLimitPerSecond,
		RateLimitBurst:     cfg.HTTP.RateLimitBurst,
		RequestTimeout:     cfg.HTTP.RequestTimeout,
	})
	if err != nil {
		lg.Fatal("build http server", zap.Error(err))
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("http shutdown", zap.Error(err))
		}
	}()

	lg.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("conversation_backend", cfg.Conversation.Backend))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatal("http server", zap.Error(err))
	}
}
