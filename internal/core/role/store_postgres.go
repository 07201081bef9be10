// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package role

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/centra/internal/platform/apperr"
	"github.com/taibuivan/centra/internal/platform/dberr"
)

// PostgresRepository persists roles across two tables: core.role holds the
// identity row and core.rolepermission holds one row per granted permission.
// Writes keep the pair consistent inside a single transaction.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListRoles(context context.Context, orgID string) ([]*Role, error) {
	const query = `
		SELECT r.orgid, r.name, r.description, r.createdat, r.updatedat,
		       COALESCE(array_agg(p.permission) FILTER (WHERE p.permission IS NOT NULL), '{}')
		FROM core.role r
		LEFT JOIN core.rolepermission p ON p.orgid = r.orgid AND p.rolename = r.name
		WHERE r.orgid = $1
		GROUP BY r.orgid, r.name, r.description, r.createdat, r.updatedat
		ORDER BY r.name ASC`

	rows, err := repository.db.Query(context, query, orgID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_roles")
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		role := &Role{}
		if err := rows.Scan(&role.OrgID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt, &role.Permissions); err != nil {
			return nil, dberr.Wrap(err, "scan_role")
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

func (repository *PostgresRepository) GetRole(context context.Context, orgID, name string) (*Role, error) {
	const query = `
		SELECT r.orgid, r.name, r.description, r.createdat, r.updatedat,
		       COALESCE(array_agg(p.permission) FILTER (WHERE p.permission IS NOT NULL), '{}')
		FROM core.role r
		LEFT JOIN core.rolepermission p ON p.orgid = r.orgid AND p.rolename = r.name
		WHERE r.orgid = $1 AND r.name = $2
		GROUP BY r.orgid, r.name, r.description, r.createdat, r.updatedat`

	role := &Role{}
	err := repository.db.QueryRow(context, query, orgID, name).Scan(
		&role.OrgID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt, &role.Permissions,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Role")
		}
		return nil, dberr.Wrap(err, "get_role")
	}

	return role, nil
}

func (repository *PostgresRepository) CreateRole(context context.Context, role *Role) error {
	return repository.inTx(context, func(tx pgx.Tx) error {
		const insertRole = `
			INSERT INTO core.role (orgid, name, description, createdat, updatedat)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING createdat, updatedat`

		err := tx.QueryRow(context, insertRole, role.OrgID, role.Name, role.Description).
			Scan(&role.CreatedAt, &role.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "create_role")
		}

		return repository.replacePermissions(context, tx, role)
	})
}

func (repository *PostgresRepository) UpdateRole(context context.Context, role *Role) error {
	return repository.inTx(context, func(tx pgx.Tx) error {
		const updateRole = `
			UPDATE core.role
			SET description = $3, updatedat = NOW()
			WHERE orgid = $1 AND name = $2
			RETURNING updatedat`

		err := tx.QueryRow(context, updateRole, role.OrgID, role.Name, role.Description).
			Scan(&role.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("Role")
			}
			return dberr.Wrap(err, "update_role")
		}

		const clear = `DELETE FROM core.rolepermission WHERE orgid = $1 AND rolename = $2`
		if _, err := tx.Exec(context, clear, role.OrgID, role.Name); err != nil {
			return dberr.Wrap(err, "clear_role_permissions")
		}

		return repository.replacePermissions(context, tx, role)
	})
}

func (repository *PostgresRepository) DeleteRole(context context.Context, orgID, name string) error {
	return repository.inTx(context, func(tx pgx.Tx) error {
		// Assignments referencing the role go with it: a dangling assignment
		// would resolve to an empty set anyway, but keeping them would leak
		// ghost rows into assignment listings.
		const deleteAssignments = `DELETE FROM core.roleassignment WHERE orgid = $1 AND rolename = $2`
		if _, err := tx.Exec(context, deleteAssignments, orgID, name); err != nil {
			return dberr.Wrap(err, "delete_role_assignments")
		}

		const deletePermissions = `DELETE FROM core.rolepermission WHERE orgid = $1 AND rolename = $2`
		if _, err := tx.Exec(context, deletePermissions, orgID, name); err != nil {
			return dberr.Wrap(err, "delete_role_permissions")
		}

		const deleteRole = `DELETE FROM core.role WHERE orgid = $1 AND name = $2`
		cmd, err := tx.Exec(context, deleteRole, orgID, name)
		if err != nil {
			return dberr.Wrap(err, "delete_role")
		}
		if cmd.RowsAffected() == 0 {
			return apperr.NotFound("Role")
		}
		return nil
	})
}

// # Access-Right Catalog

func (repository *PostgresRepository) SyncAccessRights(context context.Context, registry map[string]string) error {
	return repository.inTx(context, func(tx pgx.Tx) error {
		const upsert = `
			INSERT INTO core.accessright (permission, description)
			VALUES ($1, $2)
			ON CONFLICT (permission) DO UPDATE SET description = EXCLUDED.description`

		for permission, description := range registry {
			if _, err := tx.Exec(context, upsert, permission, description); err != nil {
				return dberr.Wrap(err, "sync_access_right")
			}
		}

		return nil
	})
}

func (repository *PostgresRepository) ListAccessRights(context context.Context) ([]*AccessRight, error) {
	const query = `SELECT permission, description FROM core.accessright ORDER BY permission ASC`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_access_rights")
	}
	defer rows.Close()

	var rights []*AccessRight
	for rows.Next() {
		right := &AccessRight{}
		if err := rows.Scan(&right.Permission, &right.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_access_right")
		}
		rights = append(rights, right)
	}

	return rights, rows.Err()
}

// # Internal Helpers

func (repository *PostgresRepository) replacePermissions(context context.Context, tx pgx.Tx, role *Role) error {
	const insert = `INSERT INTO core.rolepermission (orgid, rolename, permission) VALUES ($1, $2, $3)`

	for _, permission := range role.Permissions {
		if _, err := tx.Exec(context, insert, role.OrgID, role.Name, permission); err != nil {
			return dberr.Wrap(err, "insert_role_permission")
		}
	}
	return nil
}

func (repository *PostgresRepository) inTx(context context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("role_repo_begin_tx_failed: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(context)
}

// # Assignment Repository

type PostgresAssignmentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAssignmentRepository(db *pgxpool.Pool) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

func (repository *PostgresAssignmentRepository) ListByUser(context context.Context, orgID, userID string) ([]*Assignment, error) {
	const query = `
		SELECT userid, orgid, centerid, rolename, createdat
		FROM core.roleassignment
		WHERE orgid = $1 AND userid = $2
		ORDER BY centerid, rolename`

	return repository.queryAssignments(context, query, orgID, userID)
}

func (repository *PostgresAssignmentRepository) ListByCenter(context context.Context, orgID, centerID string) ([]*Assignment, error) {
	const query = `
		SELECT userid, orgid, centerid, rolename, createdat
		FROM core.roleassignment
		WHERE orgid = $1 AND centerid = $2
		ORDER BY userid, rolename`

	return repository.queryAssignments(context, query, orgID, centerID)
}

func (repository *PostgresAssignmentRepository) Create(context context.Context, assignment *Assignment) error {
	const query = `
		INSERT INTO core.roleassignment (userid, orgid, centerid, rolename, createdat)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (userid, orgid, centerid, rolename) DO NOTHING
		RETURNING createdat`

	err := repository.db.QueryRow(context, query,
		assignment.UserID, assignment.OrgID, assignment.CenterID, assignment.RoleName,
	).Scan(&assignment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conflict target swallowed the insert: the grant already exists.
			return apperr.Conflict("Role is already assigned to this user in this center")
		}
		return dberr.Wrap(err, "create_assignment")
	}

	return nil
}

func (repository *PostgresAssignmentRepository) Delete(context context.Context, assignment *Assignment) error {
	const query = `
		DELETE FROM core.roleassignment
		WHERE userid = $1 AND orgid = $2 AND centerid = $3 AND rolename = $4`

	cmd, err := repository.db.Exec(context, query,
		assignment.UserID, assignment.OrgID, assignment.CenterID, assignment.RoleName,
	)
	if err != nil {
		return dberr.Wrap(err, "delete_assignment")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Role assignment")
	}
	return nil
}

func (repository *PostgresAssignmentRepository) UserInOrg(context context.Context, orgID, userID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM users.account
			WHERE id = $1 AND orgid = $2 AND deletedat IS NULL
		)`

	var exists bool
	if err := repository.db.QueryRow(context, query, userID, orgID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "assignment_user_check")
	}
	return exists, nil
}

func (repository *PostgresAssignmentRepository) CenterInOrg(context context.Context, orgID, centerID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM core.center
			WHERE id = $1 AND orgid = $2 AND deletedat IS NULL
		)`

	var exists bool
	if err := repository.db.QueryRow(context, query, centerID, orgID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "assignment_center_check")
	}
	return exists, nil
}

func (repository *PostgresAssignmentRepository) queryAssignments(context context.Context, query string, args ...any) ([]*Assignment, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_assignments")
	}
	defer rows.Close()

	var assignments []*Assignment
	for rows.Next() {
		assignment := &Assignment{}
		if err := rows.Scan(&assignment.UserID, &assignment.OrgID, &assignment.CenterID, &assignment.RoleName, &assignment.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_assignment")
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}
