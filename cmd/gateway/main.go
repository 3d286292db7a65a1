package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/edusuite/dashboard-gateway/internal/adapters/backend"
	"github.com/edusuite/dashboard-gateway/internal/adapters/cache"
	"github.com/edusuite/dashboard-gateway/internal/adapters/handler"
	"github.com/edusuite/dashboard-gateway/internal/adapters/messaging"
	"github.com/edusuite/dashboard-gateway/internal/adapters/metrics"
	gatewaymw "github.com/edusuite/dashboard-gateway/internal/adapters/middleware"
	"github.com/edusuite/dashboard-gateway/internal/config"
	"github.com/edusuite/dashboard-gateway/internal/core/ports"
	"github.com/edusuite/dashboard-gateway/internal/core/services"
	"github.com/edusuite/dashboard-gateway/internal/core/token"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	ctx := context.Background()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	var publisher ports.ContactEventPublisher = messaging.ConsolePublisher{}
	if cfg.RabbitMQURL != "" {
		broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.ContactQueue)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer broker.Close()
		publisher = broker
		log.Println("Connected to RabbitMQ")
	} else {
		log.Println("RABBITMQ_URL not set, logging contact events to console")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	gw := backend.NewGateway(cfg.BackendURL, httpClient, config.NewCircuitBreaker("Backend-REST"), m)
	refresher := backend.NewRefresher(gw, m)
	client := backend.NewClient(gw, refresher, m)

	profileCache := cache.NewProfileCache(redisClient, cfg.ProfileCacheTTL)
	authService := services.NewAuthService(client, profileCache)

	clock := token.NewClock()
	routeGate := gatewaymw.NewRouteGate(clock, cfg.SupportedLocales(), cfg.DefaultLocale, cfg.SecureCookies, m)

	authHandler := handler.NewAuthHandler(authService, cfg.SecureCookies)
	contactHandler := handler.NewContactHandler(publisher, m)
	healthHandler := handler.NewHealthHandler(redisClient, cfg.BackendURL)
	schoolProxy := handler.NewSchoolProxy(client, "/api/school", "/api/v1", cfg.SecureCookies)
	siteHandler := handler.NewSiteHandler(cfg.StaticDir)

	r := chi.NewRouter()
	r.Use(gatewaymw.CORS(cfg.Origins()))
	r.Use(routeGate.Handler)

	// Health endpoints (OpenShift compatible)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/ready", healthHandler.Ready)
	r.Get("/health/live", healthHandler.Live)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// API endpoints
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/logout", authHandler.Logout)
	r.Get("/api/auth/me", authHandler.Me)
	r.Post("/api/contact", contactHandler.Contact)
	r.Post("/api/demo-request", contactHandler.DemoRequest)
	r.Handle("/api/school/*", schoolProxy)

	// Localized site pages (route gate has resolved the locale by now)
	r.NotFound(siteHandler.ServeHTTP)

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
