package memory

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// Credentials for the seeded demo accounts. Hashes are derived at startup so
// the plaintext never lives in a stored record.
var seedCredentials = []struct {
	id, name, email, password, role string
}{
	{"1", "John Admin", "admin@test.com", "admin123", domain.RoleAdmin},
	{"2", "Jane User", "user@test.com", "user123", domain.RoleUser},
	{"3", "Bob Smith", "bob@test.com", "bob123", domain.RoleUser},
}

// seedUserCost keeps startup and test runs fast; these are demo accounts, not
// real credentials.
const seedUserCost = bcrypt.MinCost

func seedUsers() ([]domain.User, error) {
	users := make([]domain.User, 0, len(seedCredentials))
	for _, c := range seedCredentials {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.password), seedUserCost)
		if err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		users = append(users, domain.User{
			ID:           c.id,
			Name:         c.name,
			Email:        c.email,
			Role:         c.role,
			PasswordHash: string(hash),
		})
	}
	return users, nil
}

func seedTasks() []domain.Task {
	return []domain.Task{
		{
			ID:             "1",
			Title:          "Implement Authentication",
			Description:    "Create login and registration functionality with JWT tokens. Need to handle both email/password authentication and social login options.",
			Status:         domain.StatusInProgress,
			AssignedUserID: "2",
			CreatedAt:      seedTime("2025-12-20T10:30:00Z"),
			UpdatedAt:      seedTime("2025-12-26T07:49:46.747Z"),
		},
		{
			ID:             "2",
			Title:          "Design Database Schema",
			Description:    "Design and implement the database schema for the task management system including users, tasks, and project tables.",
			Status:         domain.StatusInProgress,
			AssignedUserID: "2",
			CreatedAt:      seedTime("2025-12-18T09:00:00Z"),
			UpdatedAt:      seedTime("2025-12-27T06:07:34.700Z"),
		},
		{
			ID:             "3",
			Title:          "Setup CI/CD Pipeline",
			Description:    "Configure continuous integration and deployment pipeline using GitHub Actions for automated testing and deployment.",
			Status:         domain.StatusPending,
			AssignedUserID: "3",
			CreatedAt:      seedTime("2025-12-21T11:15:00Z"),
			UpdatedAt:      seedTime("2025-12-21T11:15:00Z"),
		},
		{
			ID:             "4",
			Title:          "Write Unit Tests",
			Description:    "Write comprehensive unit tests for all components and utilities. Aim for at least 80% code coverage.",
			Status:         domain.StatusPending,
			AssignedUserID: "2",
			CreatedAt:      seedTime("2025-12-22T13:30:00Z"),
			UpdatedAt:      seedTime("2025-12-22T13:30:00Z"),
		},
		{
			ID:             "5",
			Title:          "Optimize Performance",
			Description:    "Analyze and optimize application performance. Focus on reducing bundle size and improving load times.",
			Status:         domain.StatusCompleted,
			AssignedUserID: "1",
			CreatedAt:      seedTime("2025-12-23T08:00:00Z"),
			UpdatedAt:      seedTime("2025-12-26T08:59:25.827Z"),
		},
		{
			ID:             "6",
			Title:          "Update Documentation",
			Description:    "Update project documentation including README, API docs, and user guides.",
			Status:         domain.StatusPending,
			AssignedUserID: "3",
			CreatedAt:      seedTime("2025-12-24T15:20:00Z"),
			UpdatedAt:      seedTime("2025-12-24T15:20:00Z"),
		},
		{
			ID:             "7",
			Title:          "Code Review",
			Description:    "Review pull requests and provide feedback on code quality, best practices, and potential improvements.",
			Status:         domain.StatusInProgress,
			AssignedUserID: "1",
			CreatedAt:      seedTime("2025-12-25T09:00:00Z"),
			UpdatedAt:      seedTime("2025-12-25T09:00:00Z"),
		},
	}
}

func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(fmt.Sprintf("seed tasks: bad timestamp %q: %v", s, err))
	}
	return t
}
