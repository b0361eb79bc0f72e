package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/models"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, address, created_at, updated_at`

type CreateUserParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Address      *string
}

func CreateUser(ctx context.Context, q sqlx.ExtContext, p CreateUserParams) (*models.User, error) {
	user := &models.User{}

	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns

	err := sqlx.GetContext(ctx, q, user, query,
		p.Email, p.PasswordHash, p.FirstName, p.LastName, p.Phone, p.Address)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func GetUser(ctx context.Context, q sqlx.ExtContext, id int64) (*models.User, error) {
	user := &models.User{}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	if err := sqlx.GetContext(ctx, q, user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func GetUserByEmail(ctx context.Context, q sqlx.ExtContext, email string) (*models.User, error) {
	user := &models.User{}

	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	if err := sqlx.GetContext(ctx, q, user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

func ListUsers(ctx context.Context, q sqlx.ExtContext) ([]models.User, error) {
	users := []models.User{}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	if err := sqlx.SelectContext(ctx, q, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}
