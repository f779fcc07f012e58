package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog/internal/cache"
	"catalog/internal/events"
	"catalog/internal/handlers/admin"
	"catalog/internal/handlers/products"
	"catalog/internal/handlers/searching"
	"catalog/internal/idempotency"
	"catalog/internal/json"
	"catalog/internal/metrics"
	"catalog/internal/search"
)

type application struct {
	config   config
	engine   search.Engine
	cache    *cache.RedisClient
	eventBus events.Bus
	logger   *slog.Logger
}

type config struct {
	addr     string
	frontend string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metrics.Middleware())

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.frontend},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		json.Write(w, http.StatusOK, map[string]string{"message": "Welcome to the Product Search API"})
	})
	r.Get("/health", app.healthCheck)
	r.Handle("/metrics", promhttp.Handler())

	eventHandler := events.NewEventHandler(app.eventBus, events.NewEventConfig(), app.logger)

	productsService := products.NewProductsService(app.engine, app.logger, eventHandler)
	productsHandler := products.NewProductsHandler(productsService)

	searchService := searching.NewSearchService(app.engine, app.logger)
	searchHandler := searching.NewSearchHandler(searchService)

	adminService := admin.NewAdminService(app.engine, app.logger)
	adminHandler := admin.NewAdminHandler(adminService)

	r.Group(func(r chi.Router) {
		// Read-only routes
		r.Use(middleware.Recoverer)

		r.Get("/products/", productsHandler.ListProducts)
		r.Get("/products/{id}", productsHandler.GetProduct)

		r.Post("/search/", searchHandler.Search)
		r.Get("/categories/", searchHandler.GetCategories)
		r.Get("/recommendations/{id}", searchHandler.GetRecommendations)

		r.Get("/admin/collections", adminHandler.ListCollections)
		r.Get("/admin/collection/{name}", adminHandler.GetCollection)
		r.Get("/admin/collection/{name}/stats", adminHandler.CollectionStats)
		r.Get("/admin/typesense/stats", adminHandler.EngineStats)
	})

	r.Group(func(r chi.Router) {
		// Mutating routes; Idempotency-Key honored when Redis is configured
		r.Use(middleware.Recoverer)
		if app.cache != nil {
			r.Use(idempotency.Idempotency(idempotency.NewStore(app.cache)))
		}

		r.Post("/products/", productsHandler.CreateProduct)
		r.Delete("/products/{id}", productsHandler.DeleteProduct)
	})

	return r
}

func (app *application) healthCheck(w http.ResponseWriter, r *http.Request) {
	collections, err := app.engine.ListCollections(r.Context())
	if err != nil {
		json.Write(w, http.StatusOK, map[string]any{
			"status":    "degraded",
			"typesense": false,
			"error":     err.Error(),
		})
		return
	}

	json.Write(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"typesense":   true,
		"collections": len(collections),
	})
}

func (app *application) run(h http.Handler) error {
	svr := &http.Server{
		Addr:         app.config.addr,
		Handler:      h,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute * 1,
	}

	slog.Info("Starting server on " + app.config.addr)
	go func() {
		if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Listen: %s\n", err)
		}
	}()

	// Wait for Interrupt Signal (Ctrl+C or Docker Stop)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := svr.Shutdown(ctx); err != nil {
		log.Fatal("Server Forced to Shutdown:", err)
		return err
	}

	// Drain lets in-flight events finish publishing
	if err := app.eventBus.Drain(); err != nil {
		log.Fatal("Event bus drain failed:", err)
		return err
	}

	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			log.Fatal("Redis Close failed:", err)
			return err
		}
	}

	if err := app.engine.Close(); err != nil {
		return err
	}

	log.Println("Server Exited Properly")
	return nil
}
