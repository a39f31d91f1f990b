package client

import (
	"context"

	"github.com/dmitrijs2005/khula/internal/client/models"
)

// Remote is the backend API of the onboarding service.
type Remote interface {
	// Me returns the profile of the account that owns token.
	Me(ctx context.Context, token string) (models.Profile, error)
	// RefreshToken exchanges a refresh token for a new session token.
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// Offline is the Remote used while no backend is deployed. Every call fails
// with ErrUnavailable, or ErrUnauthorized when an authenticated call has no
// token.
type Offline struct{}

func NewOffline() *Offline { return &Offline{} }

func (Offline) Me(_ context.Context, token string) (models.Profile, error) {
	if token == "" {
		return models.Profile{}, ErrUnauthorized
	}
	return models.Profile{}, ErrUnavailable
}

func (Offline) RefreshToken(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (Offline) ChangePassword(_ context.Context, token, _, _ string) error {
	if token == "" {
		return ErrUnauthorized
	}
	return ErrUnavailable
}

func (Offline) RequestPasswordReset(context.Context, string) error {
	return ErrUnavailable
}

func (Offline) ResetPassword(context.Context, string, string) error {
	return ErrUnavailable
}
