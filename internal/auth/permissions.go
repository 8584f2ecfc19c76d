package auth

// Permission represents a named capability in the system.
// Permissions are opaque tags; every authorisation decision is a
// set-membership test against an account's granted tags.
type Permission string

// Permission constants.
const (
	PermDeviceView     Permission = "device:view"
	PermDeviceControl  Permission = "device:control"
	PermDeviceAdd      Permission = "device:add"
	PermDeviceRemove   Permission = "device:remove"
	PermUserManage     Permission = "user:manage"
	PermLogsView       Permission = "logs:view"
	PermSystemSettings Permission = "system:settings"
)

// DefaultPermissions returns the tags every account receives at creation:
// viewing and controlling devices.
func DefaultPermissions() []Permission {
	return []Permission{
		PermDeviceView,
		PermDeviceControl,
	}
}

// AdminPermissions returns the additional tags granted to administrator
// accounts. This set is also the yardstick for the derived ADMIN role label:
// an account whose tags include all of these reads as ADMIN.
func AdminPermissions() []Permission {
	return []Permission{
		PermDeviceAdd,
		PermDeviceRemove,
		PermUserManage,
		PermLogsView,
		PermSystemSettings,
	}
}

// Role is a presentation label derived from an account's permission set.
// It must never be used for authorisation decisions.
type Role string

// Role labels.
const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// RoleFor computes the presentation label for a permission set:
// ADMIN when the administrator permission set is a subset of the granted
// tags, USER otherwise.
func RoleFor(granted []Permission) Role {
	have := make(map[Permission]struct{}, len(granted))
	for _, p := range granted {
		have[p] = struct{}{}
	}
	for _, p := range AdminPermissions() {
		if _, ok := have[p]; !ok {
			return RoleUser
		}
	}
	return RoleAdmin
}
