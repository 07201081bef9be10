// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package center

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/centra/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const centerColumns = `id, orgid, name, slug, createdat, updatedat`

func (repository *PostgresRepository) List(context context.Context, orgID string, limit, offset int) ([]*Center, int, error) {
	const countQuery = `SELECT count(*) FROM core.center WHERE orgid = $1 AND deletedat IS NULL`
	const query = `
		SELECT ` + centerColumns + `
		FROM core.center
		WHERE orgid = $1 AND deletedat IS NULL
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.db.QueryRow(context, countQuery, orgID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_centers")
	}

	rows, err := repository.db.Query(context, query, orgID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_centers")
	}
	defer rows.Close()

	var centers []*Center
	for rows.Next() {
		c := &Center{}
		if err := rows.Scan(&c.ID, &c.OrgID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_center")
		}
		centers = append(centers, c)
	}

	return centers, total, rows.Err()
}

func (repository *PostgresRepository) Get(context context.Context, orgID, id string) (*Center, error) {
	const query = `
		SELECT ` + centerColumns + `
		FROM core.center
		WHERE id = $1 AND orgid = $2 AND deletedat IS NULL`

	c := &Center{}
	err := repository.db.QueryRow(context, query, id, orgID).Scan(
		&c.ID, &c.OrgID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, dberr.Wrap(err, "get_center")
}

func (repository *PostgresRepository) Create(context context.Context, c *Center) error {
	const query = `
		INSERT INTO core.center (id, orgid, name, slug, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.db.QueryRow(context, query, c.ID, c.OrgID, c.Name, c.Slug).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_center")
}

func (repository *PostgresRepository) Update(context context.Context, c *Center) error {
	const query = `
		UPDATE core.center
		SET name = $3, slug = $4, updatedat = NOW()
		WHERE id = $1 AND orgid = $2 AND deletedat IS NULL
		RETURNING updatedat`

	err := repository.db.QueryRow(context, query, c.ID, c.OrgID, c.Name, c.Slug).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_center")
}

func (repository *PostgresRepository) Delete(context context.Context, orgID, id string) error {
	const query = `
		UPDATE core.center
		SET deletedat = NOW()
		WHERE id = $1 AND orgid = $2 AND deletedat IS NULL`

	cmd, err := repository.db.Exec(context, query, id, orgID)
	if err != nil {
		return dberr.Wrap(err, "delete_center")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
