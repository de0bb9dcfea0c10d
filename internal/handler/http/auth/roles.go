package auth

import "strings"

// Role constants define the available user roles in the system.
// These roles are used in JWT claims and permission checks.
const (
	// RoleAdmin has full access to all endpoints and methods
	RoleAdmin = "admin"
	// RoleViewer has read-only access to the subscriber list
	RoleViewer = "viewer"
)

// Permission defines the allowed operations for a role.
type Permission struct {
	// AllowedMethods specifies which HTTP methods this role can use
	AllowedMethods []string

	// AllowedPaths specifies which URL paths this role can access.
	// Supports wildcards: "/*" matches all paths, "/subscribers/*" matches
	// /subscribers and everything under it.
	AllowedPaths []string
}

// RolePermissions maps each role to its allowed permissions.
// OPTIONS is included for both roles to support CORS preflight requests.
var RolePermissions = map[string]Permission{
	RoleAdmin: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedPaths:   []string{"/*"},
	},
	RoleViewer: {
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedPaths: []string{
			"/subscribers",
			"/subscribers/*",
		},
	},
}

// checkRolePermission checks if a role has permission for a method and path.
// Returns false if the role doesn't exist or lacks permission.
func checkRolePermission(role, method, path string) bool {
	if role == "" {
		return false
	}

	perm, exists := RolePermissions[role]
	if !exists {
		return false
	}

	methodAllowed := false
	for _, allowedMethod := range perm.AllowedMethods {
		if allowedMethod == method {
			methodAllowed = true
			break
		}
	}
	if !methodAllowed {
		return false
	}

	return matchesPathPattern(path, perm.AllowedPaths)
}

// matchesPathPattern checks if a path matches any of the allowed patterns.
// Patterns ending with "/*" match the prefix itself and any subpath;
// other patterns require an exact match.
func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}

		if strings.HasSuffix(pattern, "/*") {
			prefix := strings.TrimSuffix(pattern, "/*")
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}

		if path == pattern {
			return true
		}
	}
	return false
}
