package ports

import (
	"context"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create a user account with its
// access profile.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
	Sectors     []string
}

// AuthService implements account management and session-token issuance.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Profile resolves the access profile for a user ID, fetched once per
	// session and served from the session store afterwards.
	Profile(ctx context.Context, userID string) (*domain.User, error)
	// UpdateSectors replaces a user's accessible sectors and pushes the new
	// profile to any live session subscribed to that user.
	UpdateSectors(ctx context.Context, userID string, sectors []string) (*domain.User, error)
}
