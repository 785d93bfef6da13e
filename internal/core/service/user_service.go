package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// UserService creates accounts after validating input and uniqueness.
type UserService struct {
	repo     ports.UserRepository
	validate *validator.Validate
	cost     int
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		validate: validator.New(),
		cost:     bcrypt.DefaultCost,
		log:      log,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*ports.CreateUserResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := s.validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return &ports.CreateUserResult{Errors: ValidationMessages(ve)}, nil
		}
		return nil, err
	}

	var problems []string
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		problems = append(problems, domain.ErrEmailTaken.Error())
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		problems = append(problems, domain.ErrUsernameTaken.Error())
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if len(problems) > 0 {
		return &ports.CreateUserResult{Errors: problems}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Lost a race against a concurrent insert.
		if errors.Is(err, domain.ErrUserExists) {
			return &ports.CreateUserResult{Errors: []string{domain.ErrEmailTaken.Error()}}, nil
		}
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return &ports.CreateUserResult{Success: true, User: created}, nil
}

// ValidationMessages converts validator errors into human-readable messages.
func ValidationMessages(ve validator.ValidationErrors) []string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return msgs
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "alphanum":
		return field + " must contain only letters and digits"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
