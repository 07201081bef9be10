// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package task manages the work items of a center.
//
// Tasks are the most tightly scoped entity: every query filters by the
// (org, center) pair taken from the caller's session, so a session without
// a selected center cannot reach any task at all.
package task

import "time"

// Task is a unit of work within one center.
type Task struct {
	ID          string     `json:"id"`
	OrgID       string     `json:"org_id"`
	CenterID    string     `json:"center_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *string    `json:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// Task lifecycle states.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Filter holds the optional list constraints on top of the tenant scope.
type Filter struct {
	Status     string
	AssigneeID string
}

// Field names for validation
const (
	FieldTitle      = "title"
	FieldStatus     = "status"
	FieldDueDate    = "due_date"
	FieldAssigneeID = "assignee_id"
)
