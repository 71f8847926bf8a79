package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trackops/itam/internal/config"
	"github.com/trackops/itam/internal/handlers"
	"github.com/trackops/itam/internal/middleware"
	"github.com/trackops/itam/internal/repo"
	"github.com/trackops/itam/internal/service"
)

// newRouter wires repositories, services, and handlers onto a chi router.
// Kept separate from main so tests can mount the full API over a mock DB.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	auditSvc := service.NewAuditService(database)
	assetSvc := service.NewAssetService(database, auditSvc)
	transactionSvc := service.NewTransactionService(database)

	assetH := &handlers.AssetHandler{Svc: assetSvc}
	transactionH := &handlers.TransactionHandler{Svc: transactionSvc}
	auditH := &handlers.AuditHandler{Svc: auditSvc}
	authH := &handlers.AuthHandler{
		Repo:        repo.NewUserRepo(database),
		Secret:      []byte(cfg.JWTSecret),
		ExpireHours: cfg.JWTExpireHours,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth([]byte(cfg.JWTSecret)))

		r.Get("/assets", assetH.ListAssets)
		r.Post("/assets", assetH.CreateAsset)
		r.Get("/assets/{id}", assetH.GetAsset)
		r.Put("/assets/{id}", assetH.UpdateAsset)
		r.Delete("/assets/{id}", assetH.DeleteAsset)

		r.Post("/transactions/check-out", transactionH.CheckOut)
		r.Post("/transactions/check-in", transactionH.CheckIn)
		r.Get("/transactions", transactionH.ListTransactions)

		r.Get("/audit", auditH.ListAudit)
	})

	return r
}
