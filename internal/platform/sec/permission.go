// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Permission Catalog

// Permission string literals checked against a principal's resolved set.
//
// The catalog is a static registry: permissions are declared here, once,
// and synced into the informational core.accessright table at startup.
// Authorization never consults the table — only the resolved set.
const (
	PermUserRead   = "user_read"
	PermUserCreate = "user_create"
	PermUserEdit   = "user_edit"
	PermUserDelete = "user_delete"

	PermOrgRead = "org_read"
	PermOrgEdit = "org_edit"

	PermCenterRead   = "center_read"
	PermCenterCreate = "center_create"
	PermCenterEdit   = "center_edit"
	PermCenterDelete = "center_delete"

	PermRoleRead   = "role_read"
	PermRoleCreate = "role_create"
	PermRoleEdit   = "role_edit"
	PermRoleDelete = "role_delete"

	PermAssignmentRead = "assignment_read"
	PermAssignmentEdit = "assignment_edit"

	PermTaskRead   = "task_read"
	PermTaskCreate = "task_create"
	PermTaskEdit   = "task_edit"
	PermTaskDelete = "task_delete"
)

// Registry maps every known permission literal to its human-readable
// description. Hand-maintained by design: adding an endpoint guard for a
// new permission means adding a line here first.
var Registry = map[string]string{
	PermUserRead:   "View users within the organization",
	PermUserCreate: "Create users within the organization",
	PermUserEdit:   "Edit users within the organization",
	PermUserDelete: "Delete users within the organization",

	PermOrgRead: "View the organization profile",
	PermOrgEdit: "Edit the organization profile",

	PermCenterRead:   "View centers of the organization",
	PermCenterCreate: "Create centers within the organization",
	PermCenterEdit:   "Edit centers of the organization",
	PermCenterDelete: "Delete centers of the organization",

	PermRoleRead:   "View roles and the access-right catalog",
	PermRoleCreate: "Create roles within the organization",
	PermRoleEdit:   "Edit roles and their access rights",
	PermRoleDelete: "Delete roles from the organization",

	PermAssignmentRead: "View role assignments",
	PermAssignmentEdit: "Grant and revoke role assignments",

	PermTaskRead:   "View tasks of the selected center",
	PermTaskCreate: "Create tasks in the selected center",
	PermTaskEdit:   "Edit tasks of the selected center",
	PermTaskDelete: "Delete tasks of the selected center",
}

// AllPermissions returns every registered permission literal.
func AllPermissions() []string {
	out := make([]string, 0, len(Registry))
	for permission := range Registry {
		out = append(out, permission)
	}
	return out
}

// IsRegistered reports whether the permission literal exists in the registry.
func IsRegistered(permission string) bool {
	_, ok := Registry[permission]
	return ok
}
