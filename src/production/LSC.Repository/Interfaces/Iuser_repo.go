package interfaces

import (
	"context"

	lscmodels "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Models"
)

//go:generate mockgen -source=Iuser_repo.go -destination=../mocks/mock_user_repo.go -package=mocks

type UserRepository interface {
	// Create returns ErrDuplicate when the email is already registered
	Create(ctx context.Context, user *lscmodels.User) (*lscmodels.User, error)

	// GetByEmail returns ErrNotFound when no account uses the email
	GetByEmail(ctx context.Context, email string) (*lscmodels.User, error)
}
