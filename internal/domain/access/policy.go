// Package access holds the role/action/resource permission table.
// Every mutating entry point consults Authorize before touching any
// store; a deny short-circuits with no side effect. The table is the
// single place a new action/resource pair gets added.
package access

import "github.com/manjito26/ESTOP-System/internal/domain/models"

// Action names something a user can do
type Action string

const (
	ActionRecordTest  Action = "record-test"
	ActionViewHistory Action = "view-history"
	ActionEditReport  Action = "edit-report"
	ActionViewSummary Action = "view-summary"
	ActionManageUsers Action = "manage-users"
)

// Resource names the kind of thing an action operates on
type Resource string

const (
	ResourceTestRecord Resource = "test-record"
	ResourceReport     Resource = "report"
	ResourceUser       Resource = "user"
)

type permission struct {
	action   Action
	resource Resource
}

// The fixed permission table. Admin rows are explicit entries, not a
// fallthrough: a role grants exactly what is listed here.
var policy = map[permission]map[models.Role]bool{
	{ActionRecordTest, ResourceTestRecord}: {
		models.RoleUser:       true,
		models.RoleSupervisor: true,
		models.RoleAdmin:      true,
	},
	{ActionViewHistory, ResourceTestRecord}: {
		models.RoleUser:       true,
		models.RoleSupervisor: true,
		models.RoleAdmin:      true,
	},
	{ActionViewHistory, ResourceReport}: {
		models.RoleUser:       true,
		models.RoleSupervisor: true,
		models.RoleAdmin:      true,
	},
	{ActionEditReport, ResourceReport}: {
		models.RoleSupervisor: true,
		models.RoleAdmin:      true,
	},
	{ActionViewSummary, ResourceReport}: {
		models.RoleUser:       true,
		models.RoleSupervisor: true,
		models.RoleAdmin:      true,
	},
	{ActionManageUsers, ResourceUser}: {
		models.RoleAdmin: true,
	},
}

// Authorize reports whether role may perform action on resource.
// Unknown roles, actions, and resources deny.
func Authorize(role models.Role, action Action, resource Resource) bool {
	roles, ok := policy[permission{action, resource}]
	if !ok {
		return false
	}
	return roles[role]
}
