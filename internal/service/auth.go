package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/security"
	"carrental-backend/internal/utils"
)

type authService struct {
	store  repository.Store
	tokens security.TokenManager
}

func NewAuthService(store repository.Store, tokens security.TokenManager) AuthService {
	return &authService{store: store, tokens: tokens}
}

// Signup creates the account and its profile in one transaction so a user
// row never exists without its profile row.
func (s *authService) Signup(ctx context.Context, name, email, password, document, phone, birthDate string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if document != "" && !isNumeric(document) {
		return nil, "", "", domain.ErrInvalidDocument
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Users().GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return domain.ErrEmailTaken
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}

		profile := &domain.Profile{
			UserID:   user.ID,
			Document: document,
			Phone:    phone,
		}
		if birthDate != "" {
			bd, err := utils.ParseDate(birthDate)
			if err != nil {
				return err
			}
			profile.BirthDate = &bd
		}
		return tx.Users().CreateProfile(ctx, profile)
	})
	if err != nil {
		return nil, "", "", err
	}

	logger.Info("User signed up", "user_id", user.ID)
	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", domain.ErrInvalidCredentials
		}
		return "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", domain.ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}
	// Re-read the user so role changes take effect on rotation.
	user, err := s.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	var roles []string
	if user.IsAdmin {
		roles = append(roles, security.RoleAdmin)
	}
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, roles)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
