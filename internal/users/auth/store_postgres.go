// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/centra/internal/platform/apperr"
)

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, orgid, username, fullname, email, passwordhash, isorgadmin, createdat, updatedat`

// scanUser hydrates one account row.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.OrgID,
		&user.Username,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.IsOrgAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Description: The primary lookup for authentication and token-subject
resolution, filtering out soft-deleted accounts.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE username = $1 AND deletedat IS NULL`

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by their email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE email = $1 AND deletedat IS NULL`

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
UpdatePassword replaces only the password hash of an account.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL`

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// # Assignment Repository

// PostgresAssignmentRepository implements [AssignmentRepository] using pgx.
//
// All queries are point lookups over the composite-key indexes of
// core.roleassignment and core.rolepermission — they run on every request.
type PostgresAssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a PostgreSQL-backed assignment store.
func NewAssignmentRepository(pool *pgxpool.Pool) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{pool: pool}
}

/*
FindByUserAndCenter returns the (org, role) pairs assigned to the user in
the given center.

Parameters:
  - context: context.Context
  - userID: string
  - centerID: string

Returns:
  - []AssignmentRef: Matching assignments
  - error: Database retrieval failures
*/
func (repository *PostgresAssignmentRepository) FindByUserAndCenter(context context.Context, userID, centerID string) ([]AssignmentRef, error) {
	const query = `
		SELECT orgid, rolename
		FROM core.roleassignment
		WHERE userid = $1 AND centerid = $2`

	rows, err := repository.pool.Query(context, query, userID, centerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_assignment_repo_find_failed: %w", err)
	}
	defer rows.Close()

	var refs []AssignmentRef
	for rows.Next() {
		var ref AssignmentRef
		if err := rows.Scan(&ref.OrgID, &ref.RoleName); err != nil {
			return nil, fmt.Errorf("postgres_assignment_repo_scan_failed: %w", err)
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

/*
FindRolePermissions returns the permission list of one role scoped by its
owning organization.

Parameters:
  - context: context.Context
  - orgID: string
  - roleName: string

Returns:
  - []string: Permission literals
  - error: Database retrieval failures
*/
func (repository *PostgresAssignmentRepository) FindRolePermissions(context context.Context, orgID, roleName string) ([]string, error) {
	const query = `
		SELECT permission
		FROM core.rolepermission
		WHERE orgid = $1 AND rolename = $2`

	rows, err := repository.pool.Query(context, query, orgID, roleName)
	if err != nil {
		return nil, fmt.Errorf("postgres_assignment_repo_permissions_failed: %w", err)
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var permission string
		if err := rows.Scan(&permission); err != nil {
			return nil, fmt.Errorf("postgres_assignment_repo_permission_scan_failed: %w", err)
		}
		permissions = append(permissions, permission)
	}

	return permissions, rows.Err()
}

/*
FindDistinctCenterIDs returns every distinct center the user holds at least
one role assignment in.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []string: Distinct center ids
  - error: Database retrieval failures
*/
func (repository *PostgresAssignmentRepository) FindDistinctCenterIDs(context context.Context, userID string) ([]string, error) {
	const query = `
		SELECT DISTINCT centerid
		FROM core.roleassignment
		WHERE userid = $1`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_assignment_repo_centers_failed: %w", err)
	}
	defer rows.Close()

	var centerIDs []string
	for rows.Next() {
		var centerID string
		if err := rows.Scan(&centerID); err != nil {
			return nil, fmt.Errorf("postgres_assignment_repo_center_scan_failed: %w", err)
		}
		centerIDs = append(centerIDs, centerID)
	}

	return centerIDs, rows.Err()
}
