// Package policy maps staff roles to the actions they may perform on
// back-office resources. Admins and managers can do everything including
// deletes and blog authoring; plain staff work the pipeline but cannot
// destroy records.
package policy

import "strings"

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

// Permission is an allowed action on a resource, "resource:action".
// "*:*" matches everything and "leads:*" matches every lead action.
type Permission string

const permissionAll Permission = "*:*"

// NewPermission builds a permission from resource and action.
func NewPermission(resource string, action Action) Permission {
	return Permission(resource + ":" + string(action))
}

func (p Permission) parse() (resource string, action string) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// Matches reports whether p covers the requested permission.
func (p Permission) Matches(requested Permission) bool {
	if p == permissionAll || p == requested {
		return true
	}
	res, act := p.parse()
	reqRes, _ := requested.parse()
	return res == reqRes && act == "*"
}

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

func permsFor(resources []string, actions ...Action) []Permission {
	var out []Permission
	for _, r := range resources {
		for _, a := range actions {
			out = append(out, NewPermission(r, a))
		}
	}
	return out
}

var staffResources = []string{"leads", "clients", "projects", "invoices", "tickets", "meetings", "feedback"}

var rolePermissions = map[string][]Permission{
	RoleAdmin:   {permissionAll},
	RoleManager: {permissionAll},
	RoleStaff:   permsFor(staffResources, ActionView, ActionList, ActionCreate, ActionUpdate),
}

// Allow reports whether the given role may perform action on resource.
// Unknown roles get nothing.
func Allow(role, resource string, action Action) bool {
	requested := NewPermission(resource, action)
	for _, p := range rolePermissions[role] {
		if p.Matches(requested) {
			return true
		}
	}
	return false
}
