// Command seed-admin creates the initial administrator account.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/core/service"
	"github.com/taskboard/taskboard-api/internal/infrastructure/config"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/postgres"
	"github.com/taskboard/taskboard-api/pkg/logger"
)

var admin = ports.CreateUserInput{
	Username:  "admin",
	Email:     "admin@taskboard.local",
	Password:  "Admin@123",
	FirstName: "System",
	LastName:  "Administrator",
	Role:      domain.RoleAdmin,
}

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed-admin"})

	db, err := postgres.Connect(ctx, postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
		Timeout:  cfg.Database.Timeout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return 1
		}
	}

	users := service.NewUserService(postgres.NewUserRepository(db), logger.Get())
	return seed(ctx, users, os.Stdout)
}
