// Package users is a thin lookup over the Notion-backed user database.
// Session and cookie handling live elsewhere; this only resolves a user
// record by email.
package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/rvaldes/finance-dashboard/internal/notion"
)

// User is a normalized user record.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}

// ErrNotFound is returned when no user record matches the given email.
var ErrNotFound = fmt.Errorf("users: not found")

// FindByEmail scans the user database for a record whose Email property
// matches (case-insensitive). An empty database ID means no user store is
// configured and resolves to ErrNotFound.
func FindByEmail(ctx context.Context, svc notion.Service, databaseID, email string) (*User, error) {
	if databaseID == "" || strings.TrimSpace(email) == "" {
		return nil, ErrNotFound
	}

	pages, err := notion.QueryAll(ctx, svc, databaseID)
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}

	for _, page := range pages {
		recordEmail, _ := notion.Scalar(page.Properties, "Email").(string)
		if recordEmail == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(recordEmail), strings.TrimSpace(email)) {
			return &User{
				ID:       string(page.ID),
				Name:     notion.Text(page.Properties, "Name", "N/A"),
				Email:    recordEmail,
				IsActive: notion.Flag(page.Properties, "Is Active", false),
			}, nil
		}
	}

	return nil, ErrNotFound
}
