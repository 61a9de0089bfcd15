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

	"reservas/internal/api"
	"reservas/internal/client"
	"reservas/internal/config"
	"reservas/internal/repository"
	"reservas/internal/service"
	"reservas/internal/tracing"
	"reservas/internal/views"

	"github.com/gorilla/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.EnableTracing {
		if err := tracing.Configure(); err != nil {
			log.Fatalf("Failed to configure X-Ray: %v", err)
		}
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := repository.Open(startCtx, repository.DBConfig{
		Driver:  cfg.DBDriver,
		URL:     cfg.DBURL,
		Tracing: cfg.EnableTracing,
	})
	if err != nil {
		cancelStart()
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	adminRepo := repository.NewAdminAuthRepository(store)
	if err := adminRepo.EnsureAdmin(startCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		cancelStart()
		log.Fatalf("Failed to seed admin: %v", err)
	}
	cancelStart()

	notifier := service.NewSenderService(service.SenderConfig{
		SendGrid: service.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		},
		Twilio: service.TwilioConfig{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			FromNumber: cfg.TwilioFromNumber,
		},
		StaffEmail: cfg.StaffEmail,
		StaffPhone: cfg.StaffPhone,
		Location:   cfg.Location(),
	})

	reservationRepo := repository.NewReservationRepository(store)
	reservationSvc := service.NewReservationService(reservationRepo, notifier, cfg.Location())
	authSvc := service.NewAdminAuthService(adminRepo, cfg.JWTSecret, cfg.SessionTTL)

	jobSvc := service.NewJobService(repository.NewJobRepository(store), cfg.CompletionGrace)
	if cfg.EnableTracing {
		jobSvc.Trace = tracing.Run
	}
	scheduler, err := jobSvc.StartScheduler(cfg.CompletionSchedule)
	if err != nil {
		log.Fatalf("Failed to start completion job: %v", err)
	}

	r := api.NewRouter(api.RouterDeps{
		Reservations: reservationSvc,
		Auth:         authSvc,
		DB:           store,
	})

	httpClient := &http.Client{Timeout: 10 * time.Second}
	if cfg.EnableTracing {
		httpClient = tracing.Client(httpClient)
	}
	pages, err := views.New(client.New(cfg.APIBaseURL, httpClient), authSvc, cfg.SessionTTL, cfg.Location())
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	pages.Register(r)

	var handler http.Handler = handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)
	handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
	handler = handlers.LoggingHandler(os.Stdout, handler)
	if cfg.EnableTracing {
		handler = tracing.Handler(handler)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	if err := store.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}
	log.Println("Server stopped")
}
