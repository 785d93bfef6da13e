package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// CreateUserInput carries the fields of a new account.
type CreateUserInput struct {
	Username  string `validate:"required,alphanum,min=3,max=50"`
	Email     string `validate:"required,email,max=255"`
	Password  string `validate:"required,min=8,max=72"`
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Role      string `validate:"required,oneof=admin member"`
}

// CreateUserResult mirrors the outcome of account creation. Validation
// problems are reported in Errors with Success false, not as an error.
type CreateUserResult struct {
	Success bool
	User    *domain.User
	Errors  []string
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*CreateUserResult, error)
}
