package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stagepass/internal/booking"
	"stagepass/internal/config"
	adminCancel "stagepass/internal/http-server/handlers/admin/cancelBooking"
	"stagepass/internal/http-server/handlers/admin/listBookings"
	"stagepass/internal/http-server/handlers/event/createEvent"
	"stagepass/internal/http-server/handlers/event/deleteEvent"
	"stagepass/internal/http-server/handlers/event/getAllEvents"
	"stagepass/internal/http-server/handlers/event/getEventInfo"
	"stagepass/internal/http-server/handlers/event/listByDateRange"
	"stagepass/internal/http-server/handlers/event/updateEvent"
	"stagepass/internal/http-server/handlers/event/updateEventStatus"
	"stagepass/internal/http-server/handlers/payment/cancelBooking"
	"stagepass/internal/http-server/handlers/payment/confirmPayment"
	"stagepass/internal/http-server/handlers/payment/createIntent"
	"stagepass/internal/http-server/handlers/payment/myBookings"
	"stagepass/internal/http-server/middleware/auth"
	"stagepass/internal/http-server/middleware/mwlogger"
	"stagepass/internal/http-server/middleware/ratelimit"
	"stagepass/internal/lib/api/response"
	"stagepass/internal/lib/logger/handlers/slogpretty"
	"stagepass/internal/lib/logger/sl"
	"stagepass/internal/payments/stripegw"
	"stagepass/internal/storage/postgres"
	"stagepass/internal/storage/rediscache"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"log/slog"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting stagepass", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	events := rediscache.New(log, storage, setupRedis(log, &cfg.Redis), cfg.Redis.TTL)

	gateway, err := stripegw.New(cfg.Stripe.SecretKey)
	if err != nil {
		log.Error("failed to init payment gateway", sl.Err(err))
		os.Exit(1)
	}

	reconciler := booking.NewReconciler(log, events, storage, gateway)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OK())
	})

	router.Get("/events", getAllEvents.New(log, events))
	router.Get("/events/date-range", listByDateRange.New(log, events))
	router.Get("/events/{id}", getEventInfo.New(log, events))

	limiter := ratelimit.New(cfg.HTTPServer.RateLimit, cfg.HTTPServer.RateBurst)

	router.Route("/payments", func(r chi.Router) {
		r.Use(auth.New(log, cfg.Auth.Secret))
		r.Use(limiter.Middleware)

		r.Post("/create-intent", createIntent.New(log, gateway))
		r.Post("/confirm", confirmPayment.New(log, reconciler))
		r.Get("/my-bookings", myBookings.New(log, storage))
		r.Patch("/{id}/cancel", cancelBooking.New(log, reconciler))
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.New(log, cfg.Auth.Secret))
		r.Use(auth.RequireAdmin)

		r.Post("/events", createEvent.New(log, events))
		r.Put("/events/{id}", updateEvent.New(log, events))
		r.Delete("/events/{id}", deleteEvent.New(log, events))
		r.Patch("/events/{id}/status", updateEventStatus.New(log, events))
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(auth.New(log, cfg.Auth.Secret))
		r.Use(auth.RequireAdmin)

		r.Get("/bookings", listBookings.New(log, storage))
		r.Patch("/bookings/{id}/cancel", adminCancel.New(log, reconciler))
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", sl.Err(err))
		}
	}()

	log.Info("server started")

	<-done
	log.Info("stopping server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to stop server", sl.Err(err))

		return
	}

	log.Info("server stopped")
}

// setupRedis returns nil when no address is configured or the server is
// unreachable; the cache layer treats a nil client as "no cache".
func setupRedis(log *slog.Logger, cfg *config.Redis) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, event cache disabled", sl.Err(err))
		return nil
	}

	return rdb
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
