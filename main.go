package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"k8s.io/klog/v2"

	"github.com/muhammadolammi/careerreadiness/internal/advisor"
	"github.com/muhammadolammi/careerreadiness/internal/config"
	"github.com/muhammadolammi/careerreadiness/internal/events"
	"github.com/muhammadolammi/careerreadiness/internal/gemini"
	"github.com/muhammadolammi/careerreadiness/internal/quiz"
	"github.com/muhammadolammi/careerreadiness/internal/report"
	"github.com/muhammadolammi/careerreadiness/internal/server"
	"github.com/muhammadolammi/careerreadiness/internal/storage"
)

const (
	sweepInterval = 10 * time.Minute
	sessionMaxAge = 2 * time.Hour
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	deps := server.Deps{
		Store:   quiz.NewStore(quiz.DefaultBank()),
		Proxy:   gemini.NewProxy(cfg.APIKey, gemini.WithBaseURL(cfg.GeminiBaseURL), gemini.WithModel(cfg.ProxyModel)),
		Builder: report.NewBuilder(),
		Events:  events.Nop{},
	}

	if cfg.APIKey != "" {
		completer, err := advisor.NewAgentCompleter(ctx, cfg.APIKey, cfg.AgentModel)
		if err != nil {
			klog.Fatalf("failed to create agent: %v", err)
		}
		deps.Generator = advisor.NewGenerator(completer)
	}

	if cfg.R2.Enabled() {
		store, err := storage.NewR2Store(ctx, cfg.R2)
		if err != nil {
			klog.Fatalf("failed to set up report storage: %v", err)
		}
		deps.Exports = store
	} else {
		klog.Info("R2 not configured; shareable report export is disabled")
	}

	if cfg.RabbitMQURL != "" {
		publisher, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			klog.Fatalf("%v", err)
		}
		defer publisher.Close()
		deps.Events = publisher
	}

	srv, err := server.New(deps)
	if err != nil {
		klog.Fatalf("failed to build server: %v", err)
	}
	go deps.Store.RunSweeper(ctx, sweepInterval, sessionMaxAge)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(cfg.GinMode),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		klog.Infof("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	klog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		klog.Errorf("shutdown: %v", err)
	}
}
