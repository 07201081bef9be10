// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Authenticated Principal

// Principal is the per-request authenticated identity plus tenant context.
//
// It is reconstructed fresh on every request by the authentication
// middleware: identity and tenant context come from the token claims, the
// permission set from a live role-assignment lookup. Nothing here survives
// the request, so role changes are visible on the very next call.
type Principal struct {
	// UserID is the account's opaque identifier.
	UserID string `json:"user_id"`

	// Username is the unique login name (token subject).
	Username string `json:"username"`

	// OrgID is the tenant boundary. Every org-scoped query filters by it.
	OrgID string `json:"org_id"`

	// CenterID is the selected center, or nil when the user has not picked
	// one. A nil center carries an empty permission set by construction.
	CenterID *string `json:"center_id,omitempty"`

	// IsOrgAdmin mirrors the persisted org-admin flag. Informational: it
	// never bypasses permission checks.
	IsOrgAdmin bool `json:"is_org_admin"`

	// permissions is the resolved access-right set for (user, center).
	permissions map[string]struct{}
}

// NewPrincipal constructs a principal with the given resolved permission set.
func NewPrincipal(userID, username, orgID string, centerID *string, isOrgAdmin bool, permissions []string) *Principal {
	set := make(map[string]struct{}, len(permissions))
	for _, permission := range permissions {
		set[permission] = struct{}{}
	}

	return &Principal{
		UserID:      userID,
		Username:    username,
		OrgID:       orgID,
		CenterID:    centerID,
		IsOrgAdmin:  isOrgAdmin,
		permissions: set,
	}
}

// # Access Checks

// HasPermission reports membership of the permission string in the resolved set.
func (p *Principal) HasPermission(permission string) bool {
	_, ok := p.permissions[permission]
	return ok
}

// SameOrg reports whether the given org id matches the principal's tenant.
func (p *Principal) SameOrg(orgID string) bool {
	return orgID != "" && p.OrgID == orgID
}

// InCenter reports whether the principal's selected center matches centerID.
// A principal without a selected center matches no concrete center.
func (p *Principal) InCenter(centerID string) bool {
	return p.CenterID != nil && centerID != "" && *p.CenterID == centerID
}

// IsSelf reports whether userID identifies the principal's own account.
func (p *Principal) IsSelf(userID string) bool {
	return userID != "" && p.UserID == userID
}

// HasCenter reports whether a center has been selected for this session.
func (p *Principal) HasCenter() bool {
	return p.CenterID != nil
}

// Permissions returns the resolved permission set as a sorted-irrelevant slice.
func (p *Principal) Permissions() []string {
	out := make([]string, 0, len(p.permissions))
	for permission := range p.permissions {
		out = append(out, permission)
	}
	return out
}
