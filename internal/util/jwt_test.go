package util

import (
	"testing"
	"time"

	"academy_backend/internal/access"
	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestStaffJWTRoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 12},
		Email:     "admin@example.com",
	}
	require.NoError(t, user.SetRoles([]model.StaffRole{model.RoleManager, model.RoleProduction}))

	token, err := GenerateStaffJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.ActorID)
	assert.Equal(t, access.KindStaff, claims.Kind)
	assert.Equal(t, []model.StaffRole{model.RoleManager, model.RoleProduction}, claims.Roles)

	actor := claims.Actor()
	require.NotNil(t, actor)
	assert.Equal(t, access.KindStaff, actor.Kind)
	assert.True(t, actor.HasRole(model.RoleManager))
	assert.False(t, actor.HasRole(model.RoleSuperAdmin))
}

func TestClientJWTRoundTrip(t *testing.T) {
	account := &model.Account{
		BaseModel: model.BaseModel{ID: 99},
		Email:     "student@example.com",
	}

	token, err := GenerateClientJWT(account, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, access.KindClient, claims.Kind)
	assert.Empty(t, claims.Roles)

	actor := claims.Actor()
	require.NotNil(t, actor)
	assert.Equal(t, access.KindClient, actor.Kind)
	assert.Equal(t, uint(99), actor.ID)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	account := &model.Account{BaseModel: model.BaseModel{ID: 1}}
	token, err := GenerateClientJWT(account, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	account := &model.Account{BaseModel: model.BaseModel{ID: 1}}
	token, err := GenerateClientJWT(account, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestNilClaimsActor(t *testing.T) {
	var claims *Claims
	assert.Nil(t, claims.Actor())
}
