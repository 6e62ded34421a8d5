package http

import (
	"net/http"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/security"
	"campusbooks-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires all handlers onto a mux router. Route groups:
// public auth + book browsing, authenticated user routes, and the
// admin back office under /api/admin.
func NewRouter(
	tokens security.TokenManager,
	authSvc service.AuthService,
	bookSvc service.BookService,
	txSvc service.TransactionService,
	payoutSvc service.PayoutService,
	processor service.PayoutProcessor,
) *mux.Router {
	authMW := NewAuthMiddleware(tokens)
	authHandler := NewAuthHandler(authSvc)
	bookHandler := NewBookHandler(bookSvc)
	txHandler := NewTransactionHandler(txSvc)
	payoutHandler := NewPayoutHandler(payoutSvc, processor)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/books", bookHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/books/{id:[0-9]+}", bookHandler.Get).Methods(http.MethodGet)

	// Authenticated
	authed := func(h http.HandlerFunc) http.Handler { return authMW.Require(h) }
	api.Handle("/books", authed(bookHandler.Create)).Methods(http.MethodPost)
	api.Handle("/books/{id:[0-9]+}", authed(bookHandler.Update)).Methods(http.MethodPut)
	api.Handle("/books/{id:[0-9]+}", authed(bookHandler.Delete)).Methods(http.MethodDelete)
	api.Handle("/my/books", authed(bookHandler.ListMine)).Methods(http.MethodGet)

	api.Handle("/transactions", authed(txHandler.Checkout)).Methods(http.MethodPost)
	api.Handle("/transactions/{id:[0-9]+}", authed(txHandler.Get)).Methods(http.MethodGet)
	api.Handle("/transactions/code/{code}", authed(txHandler.GetByCode)).Methods(http.MethodGet)
	api.Handle("/my/purchases", authed(txHandler.ListPurchases)).Methods(http.MethodGet)
	api.Handle("/my/sales", authed(txHandler.ListSales)).Methods(http.MethodGet)

	api.Handle("/payouts", authed(payoutHandler.Create)).Methods(http.MethodPost)
	api.Handle("/payouts/{id:[0-9]+}", authed(payoutHandler.Get)).Methods(http.MethodGet)
	api.Handle("/my/payouts", authed(payoutHandler.ListMine)).Methods(http.MethodGet)
	api.Handle("/my/earnings", authed(payoutHandler.Earnings)).Methods(http.MethodGet)

	// Admin back office
	admin := func(h http.HandlerFunc) http.Handler {
		return authMW.RequireRole(domain.UserRoleAdmin, h)
	}
	api.Handle("/admin/transactions/{id:[0-9]+}/payment-status", admin(txHandler.UpdatePaymentStatus)).Methods(http.MethodPut)
	api.Handle("/admin/transactions/{id:[0-9]+}/delivery-status", admin(txHandler.UpdateDeliveryStatus)).Methods(http.MethodPut)
	api.Handle("/admin/transactions/{id:[0-9]+}/cancel", admin(txHandler.Cancel)).Methods(http.MethodPost)
	api.Handle("/admin/transactions/{id:[0-9]+}", admin(txHandler.Delete)).Methods(http.MethodDelete)
	api.Handle("/admin/payouts", admin(payoutHandler.ListPending)).Methods(http.MethodGet)
	api.Handle("/admin/payouts/{id:[0-9]+}/action", admin(payoutHandler.Action)).Methods(http.MethodPost)

	return r
}
