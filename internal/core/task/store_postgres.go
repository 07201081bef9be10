// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/centra/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, orgid, centerid, title, description, status, duedate, assigneeid, createdat, updatedat`

func (repository *PostgresRepository) List(context context.Context, orgID, centerID string, filter Filter, limit, offset int) ([]*Task, int, error) {
	baseWhere := ` WHERE orgid = $1 AND centerid = $2 AND deletedat IS NULL`
	args := []any{orgID, centerID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		baseWhere += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.AssigneeID != "" {
		args = append(args, filter.AssigneeID)
		baseWhere += ` AND assigneeid = $` + strconv.Itoa(len(args))
	}

	countQuery := `SELECT count(*) FROM core.task` + baseWhere

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tasks")
	}

	query := `SELECT ` + taskColumns + ` FROM core.task` + baseWhere +
		` ORDER BY duedate ASC NULLS LAST, createdat DESC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tasks")
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t := &Task{}
		if err := rows.Scan(&t.ID, &t.OrgID, &t.CenterID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_task")
		}
		tasks = append(tasks, t)
	}

	return tasks, total, rows.Err()
}

func (repository *PostgresRepository) Get(context context.Context, orgID, centerID, id string) (*Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM core.task
		WHERE id = $1 AND orgid = $2 AND centerid = $3 AND deletedat IS NULL`

	t := &Task{}
	err := repository.db.QueryRow(context, query, id, orgID, centerID).Scan(
		&t.ID, &t.OrgID, &t.CenterID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, dberr.Wrap(err, "get_task")
}

func (repository *PostgresRepository) Create(context context.Context, t *Task) error {
	const query = `
		INSERT INTO core.task (id, orgid, centerid, title, description, status, duedate, assigneeid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.db.QueryRow(context, query,
		t.ID, t.OrgID, t.CenterID, t.Title, t.Description, t.Status, t.DueDate, t.AssigneeID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, "create_task")
}

func (repository *PostgresRepository) Update(context context.Context, t *Task) error {
	const query = `
		UPDATE core.task
		SET title = $4, description = $5, status = $6, duedate = $7, assigneeid = $8, updatedat = NOW()
		WHERE id = $1 AND orgid = $2 AND centerid = $3 AND deletedat IS NULL
		RETURNING updatedat`

	err := repository.db.QueryRow(context, query,
		t.ID, t.OrgID, t.CenterID, t.Title, t.Description, t.Status, t.DueDate, t.AssigneeID,
	).Scan(&t.UpdatedAt)
	return dberr.Wrap(err, "update_task")
}

func (repository *PostgresRepository) Delete(context context.Context, orgID, centerID, id string) error {
	const query = `
		UPDATE core.task
		SET deletedat = NOW()
		WHERE id = $1 AND orgid = $2 AND centerid = $3 AND deletedat IS NULL`

	cmd, err := repository.db.Exec(context, query, id, orgID, centerID)
	if err != nil {
		return dberr.Wrap(err, "delete_task")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
