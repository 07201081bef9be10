// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
)

// # Access-Right Resolution

// Resolver computes the effective permission set of a (user, center) pair
// by walking the role graph: assignments → roles → permission lists.
//
// # Purity
//
// Resolution is a pure read with no side effects and no caching. It runs on
// every authenticated request, which is exactly what makes mid-session role
// revocation visible without a token invalidation mechanism.
type Resolver struct {
	assignments AssignmentRepository
}

// NewResolver constructs a [Resolver] over the assignment repository.
func NewResolver(assignments AssignmentRepository) *Resolver {
	return &Resolver{assignments: assignments}
}

/*
Resolve returns the de-duplicated union of permission lists across every role
the user holds in the given center.

Description: Finds all role assignments matching (userID, centerID), looks up
each role's permission list scoped by the assignment's org id and role name,
and flattens the lists into one set. Order is not significant.

Parameters:
  - context: context.Context
  - userID: string
  - centerID: string

Returns:
  - []string: De-duplicated permission literals; empty when no assignments match
  - error: Database retrieval failures
*/
func (resolver *Resolver) Resolve(context context.Context, userID, centerID string) ([]string, error) {
	assignmentRefs, err := resolver.assignments.FindByUserAndCenter(context, userID, centerID)
	if err != nil {
		return nil, fmt.Errorf("resolver_find_assignments_failed: %w", err)
	}

	seen := make(map[string]struct{})
	resolved := make([]string, 0, len(assignmentRefs)*4)

	for _, ref := range assignmentRefs {
		permissions, err := resolver.assignments.FindRolePermissions(context, ref.OrgID, ref.RoleName)
		if err != nil {
			return nil, fmt.Errorf("resolver_find_role_permissions_failed: %w", err)
		}

		// Flatten and de-duplicate by value. Two roles granting the same
		// permission must resolve to one entry.
		for _, permission := range permissions {
			if _, duplicate := seen[permission]; duplicate {
				continue
			}
			seen[permission] = struct{}{}
			resolved = append(resolved, permission)
		}
	}

	return resolved, nil
}

/*
UniqueCenterForUser returns the user's center when their role assignments span
exactly one distinct center.

Description: Used when a token is requested without an explicit center. A user
with zero or multiple distinct centers yields nil — the session stays
center-less until an explicit selection.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *string: The single center id, or nil
  - error: Database retrieval failures
*/
func (resolver *Resolver) UniqueCenterForUser(context context.Context, userID string) (*string, error) {
	centerIDs, err := resolver.assignments.FindDistinctCenterIDs(context, userID)
	if err != nil {
		return nil, fmt.Errorf("resolver_find_distinct_centers_failed: %w", err)
	}

	if len(centerIDs) != 1 {
		return nil, nil
	}

	return &centerIDs[0], nil
}

/*
AssignedCenters returns every distinct center the user can select.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []string: Distinct center ids
  - error: Database retrieval failures
*/
func (resolver *Resolver) AssignedCenters(context context.Context, userID string) ([]string, error) {
	return resolver.assignments.FindDistinctCenterIDs(context, userID)
}
