package rest

import (
	"log/slog"
	"net/http"

	"github.com/finito-app/expense-tracker/internal/expense"
	"github.com/finito-app/expense-tracker/internal/transport/middleware"
	"github.com/finito-app/expense-tracker/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, expenseHandler *expense.Handler, health *HealthHandler, logger *slog.Logger) {
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec at root, swagger UI alongside
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.healthCheckHandler)
		r.Get("/ping", health.pingHandler)

		r.Get("/categories", expenseHandler.GetCategories)

		r.Route("/expenses", func(er chi.Router) {
			er.Post("/", expenseHandler.CreateExpense)
			er.Get("/{id}", expenseHandler.GetAllExpenses)          // {id} is a group id
			er.Get("/{id}/analytics", expenseHandler.GetAnalytics)  // {id} is a group id
			er.Get("/{id}/details", expenseHandler.GetExpense)      // {id} is an expense id
			er.Patch("/{id}", expenseHandler.UpdateExpense)
			er.Delete("/{id}", expenseHandler.DeleteExpense)

			// administrative paths, outside the normal flow
			er.Post("/{id}/restore", expenseHandler.RestoreExpense)
			er.Delete("/{id}/purge", expenseHandler.PurgeExpense)
		})
	})
}
