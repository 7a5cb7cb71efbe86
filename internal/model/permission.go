package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	PermissionStudentsRead    Permission = "students:read"
	PermissionStudentsWrite   Permission = "students:write"
	PermissionAttendanceRead  Permission = "attendance:read"
	PermissionAttendanceWrite Permission = "attendance:write"
	PermissionSessionsRead    Permission = "sessions:read"
	PermissionSessionsWrite   Permission = "sessions:write"
	PermissionSocialRead      Permission = "social_action:read"
	PermissionSocialWrite     Permission = "social_action:write"
	PermissionReportsRead     Permission = "reports:read"
	PermissionReportsExport   Permission = "reports:export"
	PermissionStudentsDelete  Permission = "students:delete"
	PermissionSystemRead      Permission = "system:read"
)

var readPermissions = []Permission{
	PermissionStudentsRead,
	PermissionAttendanceRead,
	PermissionSessionsRead,
	PermissionSocialRead,
	PermissionReportsRead,
}

var teacherPermissions = append(append([]Permission{}, readPermissions...),
	PermissionStudentsWrite,
	PermissionAttendanceWrite,
	PermissionSessionsWrite,
	PermissionSocialWrite,
	PermissionReportsExport,
)

// PermissionsFor returns the permission set granted to a role. Unknown roles get nothing.
func PermissionsFor(role Role) []Permission {
	var perms []Permission
	switch role {
	case RoleAdmin:
		perms = append(perms, teacherPermissions...)
		perms = append(perms, PermissionStudentsDelete, PermissionSystemRead)
	case RoleTeacher:
		perms = append(perms, teacherPermissions...)
	case RoleViewer:
		perms = append(perms, readPermissions...)
	}
	return perms
}
