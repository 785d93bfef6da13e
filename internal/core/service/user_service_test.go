package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

func adminInput() ports.CreateUserInput {
	return ports.CreateUserInput{
		Username:  "admin",
		Email:     "admin@taskboard.local",
		Password:  "Admin@123",
		FirstName: "System",
		LastName:  "Administrator",
		Role:      domain.RoleAdmin,
	}
}

func newUserService() (*UserService, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewUserService(repo, zerolog.Nop()).WithHashCost(bcrypt.MinCost), repo
}

func TestUserService_Create_Success(t *testing.T) {
	svc, repo := newUserService()

	res, err := svc.Create(context.Background(), adminInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !res.Success || res.User == nil {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.User.ID == 0 || !res.User.IsActive || res.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if res.User.PasswordHash == "Admin@123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("Admin@123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(repo.users))
	}
}

func TestUserService_Create_TwiceFailsOnUniqueness(t *testing.T) {
	svc, repo := newUserService()

	if res, err := svc.Create(context.Background(), adminInput()); err != nil || !res.Success {
		t.Fatalf("first create failed: %+v %v", res, err)
	}

	res, err := svc.Create(context.Background(), adminInput())
	if err != nil {
		t.Fatalf("second create returned error: %v", err)
	}
	if res.Success {
		t.Fatalf("second create must not succeed")
	}
	if !contains(res.Errors, domain.ErrEmailTaken.Error()) {
		t.Fatalf("expected uniqueness error, got %v", res.Errors)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(repo.users))
	}
}

func TestUserService_Create_NormalisesEmail(t *testing.T) {
	svc, _ := newUserService()
	in := adminInput()
	in.Email = "  Admin@TaskBoard.Local "

	res, err := svc.Create(context.Background(), in)
	if err != nil || !res.Success {
		t.Fatalf("create failed: %+v %v", res, err)
	}
	if res.User.Email != "admin@taskboard.local" {
		t.Fatalf("expected normalised email, got %q", res.User.Email)
	}
}

func TestUserService_Create_ValidationErrors(t *testing.T) {
	svc, repo := newUserService()

	res, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "a!",
		Email:    "not-an-email",
		Password: "short",
		Role:     "root",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Fatalf("expected validation failure")
	}

	joined := strings.Join(res.Errors, "|")
	for _, want := range []string{
		"email must be a valid email",
		"password must be at least 8 characters",
		"firstname is required",
		"role must be one of: admin member",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", want, res.Errors)
		}
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user must be stored")
	}
}

func TestUserService_Create_RaceMappedToUniqueness(t *testing.T) {
	svc, repo := newUserService()
	repo.createErr = domain.ErrUserExists

	res, err := svc.Create(context.Background(), adminInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success || !contains(res.Errors, domain.ErrEmailTaken.Error()) {
		t.Fatalf("expected uniqueness failure, got %+v", res)
	}
}

func TestUserService_Create_RepoError(t *testing.T) {
	svc, repo := newUserService()
	repo.findErr = errors.New("db down")

	if _, err := svc.Create(context.Background(), adminInput()); err == nil {
		t.Fatalf("expected error")
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
