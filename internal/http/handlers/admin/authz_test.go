package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ait-marketplace/internal/authz"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/provider"
	"github.com/ait-marketplace/internal/repository"
	"github.com/ait-marketplace/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type authzTestEnv struct {
	handler *Handler
	engine  *gin.Engine
	db      *gorm.DB
}

func setupAuthzHandlerTest(t *testing.T) *authzTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:admin_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.AuthzAuditLog{}))

	authzService, err := authz.NewService(db)
	require.NoError(t, err)
	h := New(&provider.Container{
		AdminRepo:         repository.NewAdminRepository(db),
		AuthzService:      authzService,
		AuthzAuditService: service.NewAuthzAuditService(repository.NewAuthzAuditLogRepository(db)),
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("admin_id", uint(1))
		c.Set("username", "root")
		c.Set("request_id", "req-authz")
		c.Next()
	})
	r.GET("/authz/roles", h.ListAuthzRoles)
	r.POST("/authz/roles", h.CreateAuthzRole)
	r.DELETE("/authz/roles/:role", h.DeleteAuthzRole)
	r.GET("/authz/roles/:role/policies", h.GetAuthzRolePolicies)
	r.POST("/authz/policies", h.GrantAuthzPolicy)
	r.DELETE("/authz/policies", h.RevokeAuthzPolicy)
	r.PUT("/authz/admins/:id/roles", h.SetAuthzAdminRoles)
	r.GET("/authz/admins/:id/roles", h.GetAuthzAdminRoles)
	r.GET("/authz/audit-logs", h.ListAuthzAuditLogs)
	return &authzTestEnv{handler: h, engine: r, db: db}
}

func (e *authzTestEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, dest))
}

func TestAuthzRoleAndPolicyLifecycle(t *testing.T) {
	env := setupAuthzHandlerTest(t)

	w := env.do(http.MethodPost, "/authz/roles", gin.H{"role": "campus moderator"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]string
	decodeData(t, w, &created)
	assert.Equal(t, "role:campus_moderator", created["role"])

	w = env.do(http.MethodPost, "/authz/policies", gin.H{"role": "campus_moderator", "object": "/admin/items", "action": "get"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/authz/roles/role%3Acampus_moderator/policies", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var policies []authz.Policy
	decodeData(t, w, &policies)
	require.Len(t, policies, 1)
	assert.Equal(t, "/admin/items", policies[0].Object)
	assert.Equal(t, "GET", policies[0].Action)

	w = env.do(http.MethodDelete, "/authz/policies", gin.H{"role": "campus_moderator", "object": "/admin/items", "action": "GET"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodPost, "/authz/policies", gin.H{"role": "campus_moderator"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var logs []models.AuthzAuditLog
	require.NoError(t, env.db.Order("id ASC").Find(&logs).Error)
	require.Len(t, logs, 3)
	assert.Equal(t, "role_create", logs[0].Action)
	assert.Equal(t, "policy_grant", logs[1].Action)
	assert.Equal(t, "GET", logs[1].Method)
	assert.Equal(t, "policy_revoke", logs[2].Action)
	assert.Equal(t, "root", logs[2].OperatorUsername)
	assert.Equal(t, "req-authz", logs[2].RequestID)

	w = env.do(http.MethodGet, "/authz/audit-logs?action=policy_grant", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page []models.AuthzAuditLog
	decodeData(t, w, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "/admin/items", page[0].Object)
}

func TestSetAuthzAdminRoles(t *testing.T) {
	env := setupAuthzHandlerTest(t)
	target := &models.Admin{Username: "moderator01", PasswordHash: "x"}
	require.NoError(t, env.db.Create(target).Error)

	w := env.do(http.MethodPut, "/authz/admins/999/roles", gin.H{"roles": []string{"analyst"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodPut, fmt.Sprintf("/authz/admins/%d/roles", target.ID), gin.H{"roles": []string{"analyst"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, fmt.Sprintf("/authz/admins/%d/roles", target.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roles []string
	decodeData(t, w, &roles)
	assert.Equal(t, []string{"role:analyst"}, roles)

	var log models.AuthzAuditLog
	require.NoError(t, env.db.Where("action = ?", "admin_roles_update").First(&log).Error)
	require.NotNil(t, log.TargetAdminID)
	assert.Equal(t, target.ID, *log.TargetAdminID)
	assert.Equal(t, "moderator01", log.TargetUsername)
}

func TestAuditLogTimeFilterValidation(t *testing.T) {
	env := setupAuthzHandlerTest(t)
	w := env.do(http.MethodGet, "/authz/audit-logs?created_from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	parsed, err := parseTimeNullable("2026-01-02")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, 2, parsed.Day())

	parsed, err = parseTimeNullable("  ")
	require.NoError(t, err)
	assert.Nil(t, parsed)
}

func TestDecodeRoleParam(t *testing.T) {
	assert.Equal(t, "role:ops team", decodeRoleParam("role%3Aops+team"))
	assert.Equal(t, "analyst", decodeRoleParam(" analyst "))
}
