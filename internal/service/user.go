package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type userService struct {
	store repository.Store
}

func NewUserService(store repository.Store) UserService {
	return &userService{store: store}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*domain.User, *domain.Profile, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.store.Users().GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	if profile.Document != "" && !isNumeric(profile.Document) {
		return domain.ErrInvalidDocument
	}
	return s.store.Users().UpdateProfile(ctx, profile)
}
