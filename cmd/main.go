package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"frontdesk/internal/apiclient"
	"frontdesk/internal/config"
	httpapi "frontdesk/internal/http"
	"frontdesk/internal/live"
	"frontdesk/internal/logging"
	"frontdesk/internal/push"
	"frontdesk/internal/refresh"
	"frontdesk/internal/repository"
	"frontdesk/internal/service"

	_ "frontdesk/docs"
)

// @title frontdesk
// @version 1.0
// @description Restaurant front-of-house dashboards over the restaurant API.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	gin.SetMode(cfg.HTTP.Mode)

	api, err := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithServiceToken(cfg.API.Token),
	)
	if err != nil {
		return err
	}

	broker := live.NewBroker(16)
	store := repository.NewStore(broker)
	sessions := repository.NewSessionStore(cfg.HTTP.SessionTTL)
	display := service.Display{Currency: cfg.Display.Currency, WaiterCommission: cfg.Display.WaiterCommission}

	srv, err := httpapi.NewServer(httpapi.Deps{
		Auth:     service.NewAuthService(api),
		Admin:    service.NewAdminService(api, store, display),
		Customer: service.NewCustomerService(api, store, display),
		Kitchen:  service.NewKitchenService(api, store),
		Waiter:   service.NewWaiterService(api, store, display, logger),
		Sessions: sessions,
		Broker:   broker,
		Log:      logger,
	})
	if err != nil {
		return err
	}

	poller := refresh.New(api, store, refresh.Intervals{
		Tables:     cfg.Polling.Tables,
		Menu:       cfg.Polling.Menu,
		Orders:     cfg.Polling.Orders,
		OrderItems: cfg.Polling.OrderItems,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// first snapshot; dashboards render empty until it arrives
	if err := poller.Refresh(ctx); err != nil {
		logger.Warn("initial refresh failed, continuing with polling", "error", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	httpServer.RegisterOnShutdown(srv.CloseStreams)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return poller.Run(ctx) })
	if sub := subscriber(cfg); sub != nil {
		g.Go(func() error { return push.NewDispatcher(sub, store, logger).Run(ctx) })
	}
	g.Go(func() error {
		sweepSessions(ctx, sessions, logger)
		return nil
	})
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", httpServer.Addr, "api", cfg.API.BaseURL, "push", cfg.Push.Transport)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
		return nil
	})
	return g.Wait()
}

func subscriber(cfg *config.Config) push.Subscriber {
	switch cfg.Push.Transport {
	case "stomp":
		return push.NewSTOMPSubscriber(push.STOMPConfig{
			URL:         cfg.Push.STOMP.URL,
			Host:        cfg.Push.STOMP.Host,
			Token:       cfg.API.Token,
			TopicPrefix: cfg.Push.STOMP.TopicPrefix,
		})
	case "amqp":
		return push.NewAMQPSubscriber(push.AMQPConfig{URL: cfg.Push.AMQP.URL, Exchange: cfg.Push.AMQP.Exchange})
	}
	return nil
}

func sweepSessions(ctx context.Context, sessions *repository.SessionStore, logger *slog.Logger) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := sessions.Sweep(); n > 0 {
				logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}
