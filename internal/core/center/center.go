// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package center manages the operational units of an organization.
//
// Centers are the second tenancy axis: role assignments and tasks are
// scoped to a (org, center) pair, and a session must select a center
// before any center-scoped permission resolves.
package center

import "time"

// Center is an operational unit (branch, campus, site) of an organization.
type Center struct {
	ID        string     `json:"id"`
	OrgID     string     `json:"org_id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // soft-delete tracker
}

// Field names for validation
const (
	FieldName = "name"
)
