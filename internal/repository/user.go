package repository

import (
	"context"

	"fms/internal/model"
)

// UserRepository defines data access for accounts in the users service.
type UserRepository interface {
	// Create inserts a new user and returns the stored row.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByEmail returns the user with the given email, or sql.ErrNoRows.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByUsernameOrEmail returns any user matching either value; used for
	// the registration duplicate check.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
}
