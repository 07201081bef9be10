// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package organization

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/centra/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Organization, error) {
	const query = `
		SELECT id, name, slug, orgtype, properties, createdat, updatedat
		FROM core.organization
		WHERE id = $1 AND deletedat IS NULL`

	org := &Organization{}
	var rawProps []byte

	err := repository.db.QueryRow(context, query, id).Scan(
		&org.ID, &org.Name, &org.Slug, &org.OrgType, &rawProps, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_organization")
	}

	if len(rawProps) > 0 {
		if err := json.Unmarshal(rawProps, &org.Props); err != nil {
			return nil, fmt.Errorf("organization_props_decode_failed: %w", err)
		}
	}

	return org, nil
}

func (repository *PostgresRepository) Update(context context.Context, org *Organization) error {
	const query = `
		UPDATE core.organization
		SET name = $2, slug = $3, orgtype = $4, properties = $5, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING updatedat`

	rawProps, err := json.Marshal(org.Props)
	if err != nil {
		return fmt.Errorf("organization_props_encode_failed: %w", err)
	}

	err = repository.db.QueryRow(context, query, org.ID, org.Name, org.Slug, org.OrgType, rawProps).
		Scan(&org.UpdatedAt)
	return dberr.Wrap(err, "update_organization")
}
