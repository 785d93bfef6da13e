package main

import (
	"context"
	"fmt"
	"io"

	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// seed submits the admin account and reports the outcome on out. It returns
// the process exit code.
func seed(ctx context.Context, users ports.UserService, out io.Writer) int {
	res, err := users.Create(ctx, admin)
	if err != nil {
		fmt.Fprintf(out, "Error creating admin user: %v\n", err)
		return 1
	}
	if !res.Success {
		fmt.Fprintln(out, "Failed to create admin user:")
		for _, msg := range res.Errors {
			fmt.Fprintf(out, "  - %s\n", msg)
		}
		return 1
	}

	fmt.Fprintln(out, "Admin user created successfully.")
	fmt.Fprintf(out, "  Username: %s\n", admin.Username)
	fmt.Fprintf(out, "  Email:    %s\n", admin.Email)
	fmt.Fprintf(out, "  Password: %s\n", admin.Password)
	return 0
}
