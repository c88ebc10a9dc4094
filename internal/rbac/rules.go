package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"user": {
		"questions:read",
		"test:submit",
		"progress:read",
		"progress:write",
	},
	"admin": {
		"*", // everything
	},
}
