package http

import (
	"net/http"

	"carrental-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
	catalogSvc service.CatalogService
}

func NewPaymentHandler(paymentSvc service.PaymentService, catalogSvc service.CatalogService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, catalogSvc: catalogSvc}
}

// ListPayments returns the caller's charge and refund history.
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	claims := claimsFrom(r.Context())

	payments, total, err := h.paymentSvc.ListByUser(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, payments, total, page, pageSize)
}

func (h *PaymentHandler) ListRefundPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.catalogSvc.ListRefundPolicies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, policies)
}

func (h *PaymentHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.catalogSvc.ListBranches(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, branches)
}
