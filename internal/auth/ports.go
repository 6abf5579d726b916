package auth

import (
	"context"

	"foodorder/internal/domain"
)

type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (string, error)
	SignIn(ctx context.Context, req SignInRequest) (*TokenResponse, error)
}

type Repository interface {
	Insert(ctx context.Context, user domain.User) (int64, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// Welcomer greets newly registered users.
type Welcomer interface {
	UserRegistered(ctx context.Context, user domain.User)
}
