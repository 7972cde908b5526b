package http

import (
	"encoding/json"
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type ReservationHandler struct {
	reservationSvc service.ReservationService
}

func NewReservationHandler(reservationSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc}
}

type createReservationRequest struct {
	VehicleID      int64  `json:"vehicle_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DriverDocument string `json:"driver_document"`
	CardNumber     string `json:"card_number"`
	CardPIN        string `json:"card_pin"`
	CardExpiry     string `json:"card_expiry"`
	HolderDocument string `json:"holder_document"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	claims := claimsFrom(r.Context())
	reservation, err := h.reservationSvc.Create(r.Context(), service.CreateReservationInput{
		UserID:         claims.UserID,
		VehicleID:      req.VehicleID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DriverDocument: req.DriverDocument,
		CardNumber:     req.CardNumber,
		CardPIN:        req.CardPIN,
		CardExpiry:     req.CardExpiry,
		HolderDocument: req.HolderDocument,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	claims := claimsFrom(r.Context())
	reservation, err := h.reservationSvc.Get(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	claims := claimsFrom(r.Context())
	status := domain.ReservationStatus(r.URL.Query().Get("status"))

	reservations, total, err := h.reservationSvc.List(r.Context(), claims.UserID, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, reservations, total, page, pageSize)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type cancelResponse struct {
	Reservation     *domain.Reservation `json:"reservation"`
	RefundCents     int64               `json:"refund_cents"`
	VehicleReleased bool                `json:"vehicle_released"`
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req cancelRequest
	// Body is optional for a user cancellation.
	_ = json.NewDecoder(r.Body).Decode(&req)

	claims := claimsFrom(r.Context())
	result, err := h.reservationSvc.Cancel(r.Context(), claims.UserID, id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelResponse{
		Reservation:     result.Reservation,
		RefundCents:     result.RefundCents,
		VehicleReleased: result.VehicleReleased,
	})
}

// AdminCancel cancels any reservation regardless of the cutoff. The reason
// is mandatory and is relayed to the renter.
func (h *ReservationHandler) AdminCancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	claims := claimsFrom(r.Context())
	result, err := h.reservationSvc.AdminCancel(r.Context(), claims.UserID, id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelResponse{
		Reservation:     result.Reservation,
		RefundCents:     result.RefundCents,
		VehicleReleased: result.VehicleReleased,
	})
}

type quoteResponse struct {
	VehicleID      int64  `json:"vehicle_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalCostCents int64  `json:"total_cost_cents"`
}

// Quote prices a window without reserving anything.
func (h *ReservationHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	total, err := h.reservationSvc.Quote(r.Context(), id, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{
		VehicleID:      id,
		StartDate:      q.Get("start_date"),
		EndDate:        q.Get("end_date"),
		TotalCostCents: total,
	})
}
