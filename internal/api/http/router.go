package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
)

// RouterDeps bundles everything the API surface needs.
type RouterDeps struct {
	Tokens         security.TokenManager
	AuthSvc        service.AuthService
	UserSvc        service.UserService
	VehicleSvc     service.VehicleService
	ReservationSvc service.ReservationService
	PaymentSvc     service.PaymentService
	CatalogSvc     service.CatalogService
}

// NewRouter builds the full route table. Public routes cover signup, login
// and vehicle browsing; everything else requires an access token, and the
// fleet-management routes additionally require the admin role.
func NewRouter(deps RouterDeps) *mux.Router {
	authHandler := NewAuthHandler(deps.AuthSvc, deps.UserSvc)
	vehicleHandler := NewVehicleHandler(deps.VehicleSvc)
	reservationHandler := NewReservationHandler(deps.ReservationSvc)
	paymentHandler := NewPaymentHandler(deps.PaymentSvc, deps.CatalogSvc)

	root := mux.NewRouter()
	root.Use(RequestLogger)

	api := root.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/available", vehicleHandler.SearchAvailable).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}/quote", reservationHandler.Quote).Methods(http.MethodGet)
	api.HandleFunc("/refund-policies", paymentHandler.ListRefundPolicies).Methods(http.MethodGet)
	api.HandleFunc("/branches", paymentHandler.ListBranches).Methods(http.MethodGet)
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Authenticated
	authed := api.NewRoute().Subrouter()
	authed.Use(Authenticate(deps.Tokens))
	authed.HandleFunc("/me", authHandler.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/me/profile", authHandler.UpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/reservations", reservationHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/reservations", reservationHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/reservations/{id:[0-9]+}", reservationHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/reservations/{id:[0-9]+}/cancel", reservationHandler.Cancel).Methods(http.MethodPost)
	authed.HandleFunc("/payments", paymentHandler.ListPayments).Methods(http.MethodGet)

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(Authenticate(deps.Tokens))
	admin.Use(RequireAdmin)
	admin.HandleFunc("/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/vehicles/{id:[0-9]+}", vehicleHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/vehicles/{id:[0-9]+}/maintenance", vehicleHandler.SendToMaintenance).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles/{id:[0-9]+}/release", vehicleHandler.ReturnToService).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{id:[0-9]+}/cancel", reservationHandler.AdminCancel).Methods(http.MethodPost)

	return root
}
