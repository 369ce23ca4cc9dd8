// Package users persists registered identities.
package users

import (
	"context"

	"github.com/dmitrijs2005/studentverse/internal/models"
)

// Repository stores users. Usernames passed in are already normalized.
type Repository interface {
	// Create inserts user. A taken username fails with
	// common.ErrAlreadyExists; the unique constraint decides, so concurrent
	// registrations of one name cannot both succeed.
	Create(ctx context.Context, user *models.User) error
	// GetByUserName returns common.ErrNotFound when no such user exists.
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
}
