package models_test

import (
	"testing"

	"cosign/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParsePermissions(t *testing.T) {
	perms, err := models.ParsePermissions([]string{"ADMIN", "ITEMDELETE"})
	assert.NoError(t, err)
	assert.Equal(t, []models.Permission{models.PermissionAdmin, models.PermissionItemDelete}, perms)

	// Anything outside the closed set is rejected
	_, err = models.ParsePermissions([]string{"ADMIN", "ROOT"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown permission: ROOT")
}

func TestUserHasPermission(t *testing.T) {
	user := &models.User{
		Permissions: []models.Permission{models.PermissionUser, models.PermissionItemCreate},
	}

	assert.True(t, user.HasPermission(models.PermissionItemCreate))
	assert.True(t, user.HasPermission(models.PermissionAdmin, models.PermissionItemCreate))
	assert.False(t, user.HasPermission(models.PermissionAdmin))
	assert.False(t, user.HasPermission())
}
