package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmin574/pc-diamond-edge/app/models"
	"github.com/pmin574/pc-diamond-edge/pkg/apperr"
)

func registerUser(t *testing.T, email string) models.User {
	t.Helper()

	user, err := NewAuthService().Register(RegisterInput{
		Name:     "Sam Carter",
		Email:    email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	return user
}

func TestRoleDefaultsToCustomer(t *testing.T) {
	setupDB(t)
	user := registerUser(t, "sam@example.com")

	users := NewUserService()
	assert.Equal(t, models.RoleCustomer, users.RoleOf(user.ID))
	assert.False(t, users.IsAdmin(user.ID))
}

func TestSetRolePromotesAndDemotes(t *testing.T) {
	setupDB(t)
	user := registerUser(t, "sam@example.com")

	users := NewUserService()

	require.NoError(t, users.SetRole(user.ID, models.RoleAdmin))
	assert.True(t, users.IsAdmin(user.ID))

	// Upsert path: the second assignment updates the existing row.
	require.NoError(t, users.SetRole(user.ID, models.RoleCustomer))
	assert.False(t, users.IsAdmin(user.ID))
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	setupDB(t)
	user := registerUser(t, "sam@example.com")

	err := NewUserService().SetRole(user.ID, "superuser")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestSetRoleRejectsMissingUser(t *testing.T) {
	setupDB(t)

	err := NewUserService().SetRole(31337, models.RoleAdmin)
	require.Error(t, err)
	assert.True(t, apperr.IsReference(err))
}

func TestUsersListIncludesRoles(t *testing.T) {
	setupDB(t)
	admin := registerUser(t, "admin@example.com")
	registerUser(t, "customer@example.com")

	users := NewUserService()
	require.NoError(t, users.SetRole(admin.ID, models.RoleAdmin))

	listed, pagination, err := users.Users(1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pagination.Total)

	roles := map[string]string{}
	for _, u := range listed {
		roles[u.Email] = u.Role
	}
	assert.Equal(t, models.RoleAdmin, roles["admin@example.com"])
	assert.Equal(t, models.RoleCustomer, roles["customer@example.com"])
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setupDB(t)
	registerUser(t, "sam@example.com")

	_, err := NewAuthService().Register(RegisterInput{
		Name:     "Other Sam",
		Email:    "sam@example.com",
		Password: "another-password",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestLoginIssuesTokenWithRole(t *testing.T) {
	setupDB(t)
	user := registerUser(t, "sam@example.com")
	require.NoError(t, NewUserService().SetRole(user.ID, models.RoleAdmin))

	tokens, err := NewAuthService().Login(LoginInput{
		Email:    "sam@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, models.RoleAdmin, tokens.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	setupDB(t)
	registerUser(t, "sam@example.com")

	_, err := NewAuthService().Login(LoginInput{
		Email:    "sam@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}
