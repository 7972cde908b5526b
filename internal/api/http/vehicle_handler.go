package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

type vehicleRequest struct {
	LicensePlate    string `json:"license_plate"`
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	VehicleType     string `json:"vehicle_type"`
	Year            int32  `json:"year"`
	Capacity        int32  `json:"capacity"`
	DailyPriceCents int64  `json:"daily_price_cents"`
	OdometerKm      int64  `json:"odometer_km"`
	Description     string `json:"description"`
	RefundPolicyID  *int64 `json:"refund_policy_id"`
	BranchID        *int64 `json:"branch_id"`
}

func (req *vehicleRequest) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		LicensePlate:    req.LicensePlate,
		Brand:           req.Brand,
		Model:           req.Model,
		VehicleType:     req.VehicleType,
		Year:            req.Year,
		Capacity:        req.Capacity,
		DailyPriceCents: req.DailyPriceCents,
		OdometerKm:      req.OdometerKm,
		Description:     req.Description,
		RefundPolicyID:  req.RefundPolicyID,
		BranchID:        req.BranchID,
	}
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.LicensePlate == "" || req.Brand == "" || req.Model == "" || req.DailyPriceCents <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "license_plate, brand, model and a positive daily_price_cents are required"})
		return
	}

	vehicle := req.toDomain()
	if err := h.vehicleSvc.Create(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := h.vehicleSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	vehicle := req.toDomain()
	vehicle.ID = id
	if err := h.vehicleSvc.Update(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.vehicleSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	q := r.URL.Query()
	filter := repository.VehicleListFilter{
		Brand:       q.Get("brand"),
		VehicleType: q.Get("vehicle_type"),
		Status:      domain.VehicleStatus(q.Get("status")),
	}
	if v, err := strconv.Atoi(q.Get("min_capacity")); err == nil && v > 0 {
		filter.MinCapacity = int32(v)
	}

	vehicles, total, err := h.vehicleSvc.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, vehicles, total, page, pageSize)
}

// SearchAvailable lists vehicles free for the requested window.
func (h *VehicleHandler) SearchAvailable(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	q := r.URL.Query()

	vehicles, total, err := h.vehicleSvc.SearchAvailable(r.Context(), q.Get("start_date"), q.Get("end_date"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, vehicles, total, page, pageSize)
}

func (h *VehicleHandler) SendToMaintenance(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.vehicleSvc.SendToMaintenance)
}

func (h *VehicleHandler) ReturnToService(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, h.vehicleSvc.ReturnToService)
}

func (h *VehicleHandler) applyTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) (*domain.Vehicle, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}
