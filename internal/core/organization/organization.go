// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package organization manages the top-level tenant entity.

Every other domain entity hangs off an organization: centers, users, roles,
and tasks are all scoped by the org id carried in the principal. The
organization itself is created by the bootstrap seeder; the API exposes
read and update only.
*/
package organization

import "time"

// Organization is the tenant root.
type Organization struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	OrgType   string     `json:"org_type"`
	Props     Props      `json:"properties"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // soft-delete tracker
}

// Field names for validation
const (
	FieldName    = "name"
	FieldOrgType = "org_type"
	FieldProps   = "properties"
)

// Recognized org types. Free-form extension is deliberate: the value is
// informational and never drives authorization.
const (
	OrgTypeCompany   = "company"
	OrgTypeNonprofit = "nonprofit"
	OrgTypeEducation = "education"
)
