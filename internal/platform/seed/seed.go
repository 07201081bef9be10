// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package seed bootstraps the minimum data a fresh deployment needs.

A brand-new database has no organization, no users, and no roles — and
every write endpoint is locked behind a permission, so nothing could ever
be created through the API. The seeder breaks that deadlock once:

  - a default organization,
  - one center ("Main Center"),
  - an org_admin role granted every registered permission,
  - an "admin" account flagged as org admin, assigned org_admin in the
    default center.

Every step is idempotent: rows are looked up before insertion, so the
seeder is safe to run on every startup.
*/
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/pkg/uuid"
)

const (
	defaultOrgName    = "Default Organization"
	defaultOrgSlug    = "default"
	defaultOrgType    = "company"
	defaultCenterName = "Main Center"
	defaultCenterSlug = "main-center"
	adminUsername     = "admin"
	adminFullName     = "Administrator"
	adminEmail        = "admin@centra.local"
	adminRoleName     = "org_admin"
)

// Run performs the idempotent bootstrap. adminPassword is only used when
// the admin account does not exist yet; changing it later has no effect.
func Run(ctx context.Context, pool *pgxpool.Pool, adminPassword string, logger *slog.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed_begin_tx_failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orgID, err := ensureOrganization(ctx, tx)
	if err != nil {
		return err
	}

	centerID, err := ensureCenter(ctx, tx, orgID)
	if err != nil {
		return err
	}

	if err := ensureAdminRole(ctx, tx, orgID); err != nil {
		return err
	}

	adminID, created, err := ensureAdminUser(ctx, tx, orgID, adminPassword)
	if err != nil {
		return err
	}

	if err := ensureAssignment(ctx, tx, adminID, orgID, centerID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("seed_commit_failed: %w", err)
	}

	if created {
		logger.Info("seed_admin_created",
			slog.String("username", adminUsername),
			slog.String("org_id", orgID),
		)
	} else {
		logger.Debug("seed_already_applied", slog.String("org_id", orgID))
	}

	return nil
}

func ensureOrganization(ctx context.Context, tx pgx.Tx) (string, error) {
	const find = `SELECT id FROM core.organization WHERE slug = $1 AND deletedat IS NULL`

	var orgID string
	err := tx.QueryRow(ctx, find, defaultOrgSlug).Scan(&orgID)
	if err == nil {
		return orgID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("seed_find_org_failed: %w", err)
	}

	orgID = uuid.New()
	const insert = `
		INSERT INTO core.organization (id, name, slug, orgtype, properties, createdat, updatedat)
		VALUES ($1, $2, $3, $4, '{}', NOW(), NOW())`
	if _, err := tx.Exec(ctx, insert, orgID, defaultOrgName, defaultOrgSlug, defaultOrgType); err != nil {
		return "", fmt.Errorf("seed_create_org_failed: %w", err)
	}

	return orgID, nil
}

func ensureCenter(ctx context.Context, tx pgx.Tx, orgID string) (string, error) {
	const find = `SELECT id FROM core.center WHERE orgid = $1 AND slug = $2 AND deletedat IS NULL`

	var centerID string
	err := tx.QueryRow(ctx, find, orgID, defaultCenterSlug).Scan(&centerID)
	if err == nil {
		return centerID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("seed_find_center_failed: %w", err)
	}

	centerID = uuid.New()
	const insert = `
		INSERT INTO core.center (id, orgid, name, slug, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())`
	if _, err := tx.Exec(ctx, insert, centerID, orgID, defaultCenterName, defaultCenterSlug); err != nil {
		return "", fmt.Errorf("seed_create_center_failed: %w", err)
	}

	return centerID, nil
}

// ensureAdminRole creates the org_admin role and reconciles its permission
// set against the registry, so permissions added in a release reach the
// admin role on the next startup.
func ensureAdminRole(ctx context.Context, tx pgx.Tx, orgID string) error {
	const upsertRole = `
		INSERT INTO core.role (orgid, name, description, createdat, updatedat)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (orgid, name) DO NOTHING`

	description := "Full administrative access to the organization"
	if _, err := tx.Exec(ctx, upsertRole, orgID, adminRoleName, description); err != nil {
		return fmt.Errorf("seed_create_role_failed: %w", err)
	}

	const upsertPermission = `
		INSERT INTO core.rolepermission (orgid, rolename, permission)
		VALUES ($1, $2, $3)
		ON CONFLICT (orgid, rolename, permission) DO NOTHING`

	for _, permission := range sec.AllPermissions() {
		if _, err := tx.Exec(ctx, upsertPermission, orgID, adminRoleName, permission); err != nil {
			return fmt.Errorf("seed_grant_permission_failed: %w", err)
		}
	}

	return nil
}

func ensureAdminUser(ctx context.Context, tx pgx.Tx, orgID, password string) (string, bool, error) {
	const find = `SELECT id FROM users.account WHERE username = $1 AND deletedat IS NULL`

	var adminID string
	err := tx.QueryRow(ctx, find, adminUsername).Scan(&adminID)
	if err == nil {
		return adminID, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, fmt.Errorf("seed_find_admin_failed: %w", err)
	}

	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return "", false, fmt.Errorf("seed_hash_password_failed: %w", err)
	}

	adminID = uuid.New()
	const insert = `
		INSERT INTO users.account (id, orgid, username, fullname, email, passwordhash, isorgadmin, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())`
	if _, err := tx.Exec(ctx, insert, adminID, orgID, adminUsername, adminFullName, adminEmail, passwordHash); err != nil {
		return "", false, fmt.Errorf("seed_create_admin_failed: %w", err)
	}

	return adminID, true, nil
}

func ensureAssignment(ctx context.Context, tx pgx.Tx, userID, orgID, centerID string) error {
	const insert = `
		INSERT INTO core.roleassignment (userid, orgid, centerid, rolename, createdat)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (userid, orgid, centerid, rolename) DO NOTHING`

	if _, err := tx.Exec(ctx, insert, userID, orgID, centerID, adminRoleName); err != nil {
		return fmt.Errorf("seed_assign_role_failed: %w", err)
	}
	return nil
}
