package tenant

// Role identifies the kind of authenticated actor.
type Role string

const (
	ClientRole      Role = "client"
	BarberRole      Role = "barber"
	TenantAdminRole Role = "tenant_admin"
	SuperAdminRole  Role = "super_admin"
)

// Actor is the authenticated principal attached to a request.
type Actor struct {
	ID       string
	Role     Role
	TenantID string // empty for super admins
}

// Action is a named capability checked before a protected operation.
type Action string

const (
	ActionManageSchedule    Action = "schedule:manage"
	ActionReadSchedule      Action = "schedule:read"
	ActionListReservations  Action = "reservations:read"
	ActionUpdateReservation Action = "reservations:update"
	ActionManageBlacklist   Action = "blacklist:manage"
)

// rolePermissions maps each role to the actions it may perform within its
// own tenant. Super admins bypass the table entirely.
var rolePermissions = map[Role]map[Action]bool{
	TenantAdminRole: {
		ActionManageSchedule:    true,
		ActionReadSchedule:      true,
		ActionListReservations:  true,
		ActionUpdateReservation: true,
	},
	BarberRole: {
		ActionManageSchedule:    true,
		ActionReadSchedule:      true,
		ActionListReservations:  true,
		ActionUpdateReservation: true,
	},
	ClientRole: {},
}

// HasCapability is the single choke point for authorization decisions: it
// reports whether the actor may perform the action against the given tenant.
// Non-super-admin actors are confined to their own tenant regardless of role.
func HasCapability(actor Actor, action Action, tenantID string) bool {
	if actor.Role == SuperAdminRole {
		return true
	}
	if actor.TenantID == "" || actor.TenantID != tenantID {
		return false
	}
	perms, ok := rolePermissions[actor.Role]
	if !ok {
		return false
	}
	return perms[action]
}
