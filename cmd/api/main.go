package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusbooking/internal/health"
	"campusbooking/internal/httpapi"
	"campusbooking/internal/profile"
	"campusbooking/pkg/config"
	"campusbooking/pkg/db"
	"campusbooking/pkg/mq"
	"campusbooking/pkg/obs"
	"campusbooking/pkg/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, "campusbooking-api", cfg.OTelEndpoint, cfg.AppEnv)
	if err != nil {
		log.Fatalf("tracer: %v", err)
	}

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer conn.Close()

	if cfg.MigrationsPath != "" {
		if err := db.MigrateConfig(cfg.MigrationsPath, cfg); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	var publisher mq.Publisher = mq.Nop{}
	if cfg.RabbitURL != "" {
		p, err := mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		publisher = p
	}
	defer func() { _ = publisher.Close() }()

	profiles := profile.NewRepository(conn)
	checks := []health.Check{{Name: "database", Run: profiles.Ping}}
	if cfg.Supabase.URL != "" && cfg.Supabase.AnonKey != "" {
		sb := supabase.Client{BaseURL: cfg.Supabase.URL, AnonKey: cfg.Supabase.AnonKey}
		checks = append(checks, health.Check{Name: "auth", Run: func(ctx context.Context) error {
			_, err := sb.AuthHealth(ctx)
			return err
		}})
	}
	monitor := health.NewMonitor(cfg.StatusPollInterval, checks...)
	monitor.Start(ctx)
	defer monitor.Stop()

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg:       cfg,
		DB:        conn,
		Publisher: publisher,
		Status:    monitor,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("http listening on %s env=%s", cfg.HTTPAddr, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Printf("tracer shutdown: %v", err)
	}
}
