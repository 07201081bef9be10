// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/centra/internal/platform/dberr"
	"github.com/taibuivan/centra/internal/users/auth"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, orgid, username, fullname, email, passwordhash, isorgadmin, createdat, updatedat`

func (repository *PostgresRepository) List(context context.Context, orgID string, filter Filter, limit, offset int) ([]*auth.User, int, error) {
	baseWhere := ` WHERE orgid = $1 AND deletedat IS NULL`
	args := []any{orgID}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		placeholder := `$` + strconv.Itoa(len(args))
		baseWhere += ` AND (username ILIKE ` + placeholder +
			` OR fullname ILIKE ` + placeholder +
			` OR email ILIKE ` + placeholder + `)`
	}

	countQuery := `SELECT count(*) FROM users.account` + baseWhere

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	query := `SELECT ` + userColumns + ` FROM users.account` + baseWhere +
		` ORDER BY username ASC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		user := &auth.User{}
		if err := rows.Scan(&user.ID, &user.OrgID, &user.Username, &user.FullName, &user.Email,
			&user.PasswordHash, &user.IsOrgAdmin, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

func (repository *PostgresRepository) Get(context context.Context, orgID, id string) (*auth.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE id = $1 AND orgid = $2 AND deletedat IS NULL`

	user := &auth.User{}
	err := repository.db.QueryRow(context, query, id, orgID).Scan(
		&user.ID, &user.OrgID, &user.Username, &user.FullName, &user.Email,
		&user.PasswordHash, &user.IsOrgAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, dberr.Wrap(err, "get_user")
}

func (repository *PostgresRepository) Create(context context.Context, user *auth.User) error {
	const query = `
		INSERT INTO users.account (id, orgid, username, fullname, email, passwordhash, isorgadmin, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.db.QueryRow(context, query,
		user.ID, user.OrgID, user.Username, user.FullName, user.Email, user.PasswordHash, user.IsOrgAdmin,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET fullname = $3, email = $4, isorgadmin = $5, updatedat = NOW()
		WHERE id = $1 AND orgid = $2 AND deletedat IS NULL
		RETURNING updatedat`

	err := repository.db.QueryRow(context, query,
		user.ID, user.OrgID, user.FullName, user.Email, user.IsOrgAdmin,
	).Scan(&user.UpdatedAt)
	return dberr.Wrap(err, "update_user")
}

func (repository *PostgresRepository) SoftDelete(context context.Context, orgID, id string) error {
	const query = `
		UPDATE users.account
		SET deletedat = NOW()
		WHERE id = $1 AND orgid = $2 AND deletedat IS NULL`

	cmd, err := repository.db.Exec(context, query, id, orgID)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
