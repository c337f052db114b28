package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/saurabhsolanke/expensify-be/internal/config"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler"
	authmw "github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
	"github.com/saurabhsolanke/expensify-be/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)

		auth := authmw.NewJWTAuth(cfg.Auth, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", handlers.Expenses.ListExpenses)
				r.Post("/", handlers.Expenses.CreateExpense)
				r.Get("/analytics/summary", handlers.Expenses.AnalyticsSummary)
				r.Get("/{id}", handlers.Expenses.GetExpense)
				r.Put("/{id}", handlers.Expenses.UpdateExpense)
				r.Delete("/{id}", handlers.Expenses.DeleteExpense)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", handlers.Expenses.ListCategories)
				r.Post("/", handlers.Expenses.CreateCategory)
				r.Post("/setup-defaults", handlers.Expenses.SetupDefaultCategories)
				r.Get("/{id}", handlers.Expenses.GetCategory)
				r.Put("/{id}", handlers.Expenses.UpdateCategory)
				r.Delete("/{id}", handlers.Expenses.DeleteCategory)
			})

			r.Route("/credit-cards", func(r chi.Router) {
				r.Get("/", handlers.Ledger.ListCards)
				r.Post("/", handlers.Ledger.CreateCard)
				r.Get("/{id}", handlers.Ledger.GetCard)
				r.Put("/{id}", handlers.Ledger.UpdateCard)
				r.Delete("/{id}", handlers.Ledger.DeleteCard)
			})

			r.Route("/borrowed-money", func(r chi.Router) {
				r.Get("/", handlers.Ledger.ListBorrowed)
				r.Post("/", handlers.Ledger.CreateBorrowed)
				r.Get("/overdue", handlers.Ledger.ListOverdue)
				r.Get("/summary", handlers.Ledger.BorrowedSummary)
				r.Get("/{id}", handlers.Ledger.GetBorrowed)
				r.Put("/{id}", handlers.Ledger.UpdateBorrowed)
				r.Delete("/{id}", handlers.Ledger.DeleteBorrowed)
				r.Post("/{id}/repay", handlers.Ledger.Repay)
				r.Get("/{id}/payments", handlers.Ledger.ListBorrowedPayments)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", handlers.Ledger.ListPayments)
				r.Post("/", handlers.Ledger.CreatePayment)
				r.Get("/summary", handlers.Ledger.PaymentSummary)
				r.Get("/{id}", handlers.Ledger.GetPayment)
				r.Put("/{id}", handlers.Ledger.UpdatePayment)
				r.Delete("/{id}", handlers.Ledger.DeletePayment)
			})
		})
	})

	return r
}
