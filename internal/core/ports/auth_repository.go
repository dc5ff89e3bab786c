package ports

import (
	"context"

	"github.com/fieldtrack/dashboard-api/internal/core/domain"
)

// AuthRepository defines the interface for user and access-profile persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateSectors replaces a user's accessible-sector list.
	UpdateSectors(ctx context.Context, id string, sectors []string) (*domain.User, error)
}
