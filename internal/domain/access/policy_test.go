package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
)

func TestAuthorizeTable(t *testing.T) {
	tests := []struct {
		role     models.Role
		action   Action
		resource Resource
		allowed  bool
	}{
		// record-test: every role
		{models.RoleUser, ActionRecordTest, ResourceTestRecord, true},
		{models.RoleSupervisor, ActionRecordTest, ResourceTestRecord, true},
		{models.RoleAdmin, ActionRecordTest, ResourceTestRecord, true},

		// view-history: every role, both resources
		{models.RoleUser, ActionViewHistory, ResourceTestRecord, true},
		{models.RoleSupervisor, ActionViewHistory, ResourceTestRecord, true},
		{models.RoleAdmin, ActionViewHistory, ResourceTestRecord, true},
		{models.RoleUser, ActionViewHistory, ResourceReport, true},
		{models.RoleSupervisor, ActionViewHistory, ResourceReport, true},
		{models.RoleAdmin, ActionViewHistory, ResourceReport, true},

		// edit-report: supervisor and admin only
		{models.RoleUser, ActionEditReport, ResourceReport, false},
		{models.RoleSupervisor, ActionEditReport, ResourceReport, true},
		{models.RoleAdmin, ActionEditReport, ResourceReport, true},

		// view-summary: every role
		{models.RoleUser, ActionViewSummary, ResourceReport, true},
		{models.RoleSupervisor, ActionViewSummary, ResourceReport, true},
		{models.RoleAdmin, ActionViewSummary, ResourceReport, true},

		// manage-users: admin only
		{models.RoleUser, ActionManageUsers, ResourceUser, false},
		{models.RoleSupervisor, ActionManageUsers, ResourceUser, false},
		{models.RoleAdmin, ActionManageUsers, ResourceUser, true},
	}

	for _, tt := range tests {
		got := Authorize(tt.role, tt.action, tt.resource)
		assert.Equal(t, tt.allowed, got, "%s %s on %s", tt.role, tt.action, tt.resource)
	}
}

func TestAuthorizeUnknownDenies(t *testing.T) {
	assert.False(t, Authorize("superuser", ActionRecordTest, ResourceTestRecord), "unknown role")
	assert.False(t, Authorize(models.RoleAdmin, "delete-everything", ResourceTestRecord), "unknown action")
	assert.False(t, Authorize(models.RoleAdmin, ActionRecordTest, "ledger"), "unknown resource")
	assert.False(t, Authorize("", "", ""), "empty everything")
}

func TestAdminHasNoImplicitGrants(t *testing.T) {
	// Admin rows are explicit entries; an unlisted pair denies even for
	// admin.
	assert.False(t, Authorize(models.RoleAdmin, ActionManageUsers, ResourceReport))
	assert.False(t, Authorize(models.RoleAdmin, ActionEditReport, ResourceTestRecord))
}
