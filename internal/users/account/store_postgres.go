// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/users/auth"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the account Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	const query = `
		SELECT id, orgid, username, fullname, email, passwordhash, isorgadmin, createdat, updatedat
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID, &user.OrgID, &user.Username, &user.FullName, &user.Email,
		&user.PasswordHash, &user.IsOrgAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_failed: %w", err)
	}

	return user, nil
}

/*
UpdateProfile persists the mutable profile fields of an account.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresRepository) UpdateProfile(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET fullname = $2, email = $3, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING updatedat`

	err := repository.pool.QueryRow(context, query, user.ID, user.FullName, user.Email).
		Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("User")
		}
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	return nil
}

/*
UpdatePassword replaces only the password hash of an account.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL`

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
ListAssignedCenters returns the distinct centers the user holds at least one
role assignment in, with their display data.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []CenterRef: Distinct assigned centers, ordered by name
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListAssignedCenters(context context.Context, userID string) ([]CenterRef, error) {
	const query = `
		SELECT DISTINCT c.id, c.name, c.slug
		FROM core.roleassignment a
		JOIN core.center c ON c.id = a.centerid AND c.deletedat IS NULL
		WHERE a.userid = $1
		ORDER BY c.name ASC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_centers_failed: %w", err)
	}
	defer rows.Close()

	var centers []CenterRef
	for rows.Next() {
		var ref CenterRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Slug); err != nil {
			return nil, fmt.Errorf("postgres_account_repo_center_scan_failed: %w", err)
		}
		centers = append(centers, ref)
	}

	return centers, rows.Err()
}
