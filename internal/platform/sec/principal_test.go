// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/centra/internal/platform/sec"
)

/*
TestPrincipal_PermissionMembership checks set-membership semantics.
*/
func TestPrincipal_PermissionMembership(t *testing.T) {
	centerID := "center-1"
	principal := sec.NewPrincipal("u1", "alice", "org-1", &centerID, false, []string{"task_read", "task_edit"})

	assert.True(t, principal.HasPermission("task_read"))
	assert.True(t, principal.HasPermission("task_edit"))
	assert.False(t, principal.HasPermission("task_delete"))
	assert.False(t, principal.HasPermission(""))
}

/*
TestPrincipal_TenantChecks verifies org, center, and self matching.
*/
func TestPrincipal_TenantChecks(t *testing.T) {
	centerID := "center-1"
	principal := sec.NewPrincipal("u1", "alice", "org-1", &centerID, true, nil)

	assert.True(t, principal.SameOrg("org-1"))
	assert.False(t, principal.SameOrg("org-2"))
	assert.False(t, principal.SameOrg(""))

	assert.True(t, principal.InCenter("center-1"))
	assert.False(t, principal.InCenter("center-2"))

	assert.True(t, principal.IsSelf("u1"))
	assert.False(t, principal.IsSelf("u2"))
}

/*
TestPrincipal_NullCenter verifies that an unselected center fails every
center-scoped check and carries an empty permission set.
*/
func TestPrincipal_NullCenter(t *testing.T) {
	principal := sec.NewPrincipal("u1", "alice", "org-1", nil, false, nil)

	assert.False(t, principal.HasCenter())
	assert.False(t, principal.InCenter("center-1"))
	assert.False(t, principal.InCenter(""))
	assert.Empty(t, principal.Permissions())
}

/*
TestRegistry_Consistency verifies that the static catalog covers every
declared permission constant.
*/
func TestRegistry_Consistency(t *testing.T) {
	assert.True(t, sec.IsRegistered(sec.PermTaskRead))
	assert.True(t, sec.IsRegistered(sec.PermUserDelete))
	assert.False(t, sec.IsRegistered("made_up_permission"))

	all := sec.AllPermissions()
	assert.Len(t, all, len(sec.Registry))
	for _, permission := range all {
		assert.NotEmpty(t, sec.Registry[permission])
	}
}
