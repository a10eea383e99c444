// Package http wires the chi router: public auth routes, the
// authenticated API surface and the operational endpoints.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roamly/roamly/internal/auth"
	"github.com/roamly/roamly/internal/config"
	"github.com/roamly/roamly/internal/http/authapi"
	"github.com/roamly/roamly/internal/http/balance"
	"github.com/roamly/roamly/internal/http/choice"
	"github.com/roamly/roamly/internal/http/expense"
	"github.com/roamly/roamly/internal/http/kit"
	"github.com/roamly/roamly/internal/http/settlement"
	"github.com/roamly/roamly/internal/http/trip"
	"github.com/roamly/roamly/internal/middleware"
	"github.com/roamly/roamly/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth       *service.AuthService
	Trip       *service.TripService
	Expense    *service.ExpenseService
	Balance    *service.BalanceService
	Settlement *service.SettlementService
	Choice     *service.ChoiceService
	Kit        *service.KitService

	JWT *auth.JWTManager
}

// NewRouter builds the full route tree.
func NewRouter(cfg *config.Config, svcs Services) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authHandler := authapi.NewHandler(svcs.Auth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authHandler.Routes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(svcs.JWT))

			authHandler.AuthedRoutes(r)
			trip.NewHandler(svcs.Trip).Routes(r)
			expense.NewHandler(svcs.Expense).Routes(r)
			balance.NewHandler(svcs.Balance).Routes(r)
			settlement.NewHandler(svcs.Settlement).Routes(r)
			choice.NewHandler(svcs.Choice).Routes(r)
			kit.NewHandler(svcs.Kit).Routes(r)
		})
	})

	return r
}
