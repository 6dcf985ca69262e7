package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"academy_backend/internal/access"
	"academy_backend/internal/model"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authorizeRouter(claims *util.Claims, collection access.Collection, op access.Operation) (*gin.Engine, *access.Decision) {
	gin.SetMode(gin.TestMode)
	var captured access.Decision
	r := gin.New()
	r.GET("/t",
		func(c *gin.Context) {
			if claims != nil {
				c.Set("claims", claims)
			}
		},
		Authorize(collection, op),
		func(c *gin.Context) {
			captured = DecisionFromContext(c)
			c.Status(http.StatusOK)
		})
	return r, &captured
}

func TestAuthorizeDeniesAnonymous(t *testing.T) {
	r, _ := authorizeRouter(nil, access.Submissions, access.Read)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeForbidsWrongKind(t *testing.T) {
	staff := &util.Claims{ActorID: 1, Kind: access.KindStaff, Roles: []model.StaffRole{model.RoleManager}}
	r, _ := authorizeRouter(staff, access.Comments, access.Create)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizePassesDecisionDownstream(t *testing.T) {
	client := &util.Claims{ActorID: 7, Kind: access.KindClient}
	r, captured := authorizeRouter(client, access.Comments, access.Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, captured.Allowed)
	assert.Equal(t, "client_id", captured.OwnerColumn)
}
