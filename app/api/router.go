// Package api exposes the JSON HTTP API the customer pages and admin
// dashboards talk to.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ComandaApp/app/services"
)

// Handlers bundles the services behind the HTTP API.
type Handlers struct {
	Menu       *services.MenuService
	Delivery   *services.DeliveryService
	Clients    *services.ClientService
	Orders     *services.OrderService
	Sales      *services.SalesService
	Dictation  *services.DictationService
	Print      *services.PrintService
	Prefs      *services.PrefsService
	AdminToken string
}

// NewRouter builds the chi router with all routes mounted.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.handleHealth)

	// Customer-facing endpoints
	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.handleGetMenu)
		r.Get("/delivery-areas", h.handleGetDeliveryAreas)
		r.Get("/delivery-quote", h.handleDeliveryQuote)
		r.Post("/checkout", h.handleCheckout)
		r.Get("/session/{sessionID}/prefs", h.handleGetPrefs)
		r.Put("/session/{sessionID}/prefs", h.handleSavePrefs)

		// Admin dashboards
		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Get("/menu/full", h.handleGetFullMenu)
			r.Post("/menu/{id}/availability", h.handleSetAvailability)
			r.Post("/delivery-areas", h.handleSaveDeliveryArea)
			r.Get("/clients", h.handleGetClients)
			r.Post("/clients", h.handleSaveClient)
			r.Get("/orders", h.handleGetOrders)
			r.Post("/orders/{row}/status", h.handleUpdateStatus)
			r.Post("/orders/{row}/print", h.handlePrint)
			r.Get("/sales/summary", h.handleSalesSummary)
			r.Get("/sales/export", h.handleSalesExport)

			// Voice dictation
			r.Post("/dictation/{sessionID}/clips", h.handleAddClip)
			r.Get("/dictation/{sessionID}/clips", h.handleGetClips)
			r.Delete("/dictation/{sessionID}/clips/{clipID}", h.handleDeleteClip)
			r.Post("/dictation/{sessionID}/upload", h.handleDictationUpload)
			r.Delete("/dictation/{sessionID}", h.handleDictationReset)
		})
	})

	return r
}

// requireAdmin guards the dashboard endpoints with a shared token. An
// empty configured token leaves them open (local installs).
func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.AdminToken != "" && r.Header.Get("X-Admin-Token") != h.AdminToken {
			respondError(w, http.StatusUnauthorized, "invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
