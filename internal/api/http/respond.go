package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/security"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type listResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeList(w http.ResponseWriter, items any, total int64, page, pageSize int32) {
	writeJSON(w, http.StatusOK, listResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}

// errorStatus maps each business-rule error to an HTTP status and, where the
// error concerns a single input, the field name the client should attach the
// message to.
var errorStatus = map[error]struct {
	status int
	field  string
}{
	domain.ErrInvalidDate:     {http.StatusBadRequest, ""},
	domain.ErrInvalidDocument: {http.StatusBadRequest, "document"},
	domain.ErrReasonRequired:  {http.StatusBadRequest, "reason"},

	domain.ErrStartDateInPast: {http.StatusBadRequest, "start_date"},
	domain.ErrEndBeforeStart:  {http.StatusBadRequest, "end_date"},
	domain.ErrCancelCutoff:    {http.StatusConflict, ""},

	domain.ErrVehicleConflict: {http.StatusConflict, ""},
	domain.ErrDriverConflict:  {http.StatusConflict, "driver_document"},
	domain.ErrPlateTaken:      {http.StatusConflict, "license_plate"},

	domain.ErrCardNotFound:      {http.StatusUnprocessableEntity, "card_number"},
	domain.ErrWrongPIN:          {http.StatusUnprocessableEntity, "card_pin"},
	domain.ErrExpiryMismatch:    {http.StatusUnprocessableEntity, "card_expiry"},
	domain.ErrCardExpired:       {http.StatusUnprocessableEntity, "card_expiry"},
	domain.ErrInsufficientFunds: {http.StatusUnprocessableEntity, "card_number"},
	domain.ErrHolderMismatch:    {http.StatusUnprocessableEntity, "holder_document"},

	domain.ErrVehicleNotAvailable: {http.StatusConflict, ""},
	domain.ErrInvalidTransition:   {http.StatusConflict, ""},
	domain.ErrNotCancellable:      {http.StatusConflict, ""},

	domain.ErrNotOwner:           {http.StatusForbidden, ""},
	domain.ErrAdminRequired:      {http.StatusForbidden, ""},
	domain.ErrEmailTaken:         {http.StatusConflict, "email"},
	domain.ErrInvalidCredentials: {http.StatusUnauthorized, ""},
	security.ErrInvalidToken:     {http.StatusUnauthorized, ""},
	security.ErrExpiredToken:     {http.StatusUnauthorized, ""},
	security.ErrWrongTokenType:   {http.StatusUnauthorized, ""},

	domain.ErrNotFound:               {http.StatusNotFound, ""},
	domain.ErrVehicleHasReservations: {http.StatusConflict, ""},
}

func writeError(w http.ResponseWriter, err error) {
	for sentinel, m := range errorStatus {
		if errors.Is(err, sentinel) {
			writeJSON(w, m.status, errorResponse{Error: sentinel.Error(), Field: m.field})
			return
		}
	}
	logger.Error("Unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
