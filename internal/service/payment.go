package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type paymentService struct {
	store repository.Store
}

func NewPaymentService(store repository.Store) PaymentService {
	return &paymentService{store: store}
}

func (s *paymentService) ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Payment, int64, error) {
	return s.store.Payments().ListByUser(ctx, userID, page, pageSize)
}

type catalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

func (s *catalogService) ListRefundPolicies(ctx context.Context) ([]domain.RefundPolicy, error) {
	return s.store.Catalog().ListRefundPolicies(ctx)
}

func (s *catalogService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.store.Catalog().ListBranches(ctx)
}
