package repository

import (
	"context"
	"database/sql"
	"fmt"

	"foodorder/internal/domain"
	"foodorder/internal/errors"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) Insert(ctx context.Context, user domain.User) (int64, error) {
	query := `
		INSERT INTO Users (username, password, role, email, phoneNumber, country)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role, user.Email, user.PhoneNumber, user.Country)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting user id: %w", err)
	}

	return id, nil
}

func (r *MySQLUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password, role, email, phoneNumber, country
		FROM Users
		WHERE username = ?
	`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Email, &u.PhoneNumber, &u.Country,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewResourceNotFoundError(errors.ResourceUser, fmt.Sprintf("User %s not found", username))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}

func (r *MySQLUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM Users WHERE username = ? OR email = ?)`, username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking user existence: %w", err)
	}
	return exists, nil
}
