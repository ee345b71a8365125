package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/config"
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

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newAuthTestHandler(t *testing.T) *Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:public_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserMembership{}, &models.Setting{}))

	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "public-handler-secret"
	cfg.UserJWT.ExpireHours = 1
	cfg.UserJWT.RefreshExpireHours = 24
	cfg.Marketplace.AllowedEmailDomain = "@ait.ac.th"

	userRepo := repository.NewUserRepository(db)
	settings := service.NewSettingService(repository.NewSettingRepository(db))
	return New(&provider.Container{
		Config:          cfg,
		UserRepo:        userRepo,
		SettingService:  settings,
		UserAuthService: service.NewUserAuthService(cfg, userRepo, settings),
	})
}

func postJSON(r *gin.Engine, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp envelope
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRegisterTokenRefreshFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthTestHandler(t)
	r := gin.New()
	r.POST("/users/register", h.Register)
	r.POST("/users/token", h.Token)
	r.POST("/users/token/refresh", h.RefreshToken)

	password := "Campus#2024x"
	w, resp := postJSON(r, "/users/register", gin.H{
		"username":         "somchai",
		"email":            "somchai@gmail.com",
		"password":         password,
		"confirm_password": password,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "non campus email must be rejected")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	w, resp = postJSON(r, "/users/register", gin.H{
		"username":         "somchai",
		"email":            "Somchai@AIT.ac.th",
		"password":         password,
		"confirm_password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID       uint   `json:"id"`
		AITEmail string `json:"ait_email"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "somchai@ait.ac.th", created.AITEmail)

	w, _ = postJSON(r, "/users/register", gin.H{
		"username":         "somchai",
		"email":            "other@ait.ac.th",
		"password":         password,
		"confirm_password": password,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = postJSON(r, "/users/token", gin.H{"username": "somchai", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = postJSON(r, "/users/token", gin.H{"username": "somchai", "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tokens service.TokenPair
	require.NoError(t, json.Unmarshal(resp.Data, &tokens))
	require.NotEmpty(t, tokens.Access)
	require.NotEmpty(t, tokens.Refresh)

	w, _ = postJSON(r, "/users/token/refresh", gin.H{"refresh": tokens.Access})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "access token must not refresh")

	w, resp = postJSON(r, "/users/token/refresh", gin.H{"refresh": tokens.Refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var refreshed struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &refreshed))
	assert.NotEmpty(t, refreshed.Access)
}

func TestGetMembershipWithoutMembership(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAuthTestHandler(t)
	user, err := h.UserAuthService.Register(service.RegisterInput{
		Username:        "malee",
		Email:           "malee@ait.ac.th",
		Password:        "Campus#2024x",
		ConfirmPassword: "Campus#2024x",
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/users/membership", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		h.GetMembership(c)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/membership", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var view service.MembershipView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.False(t, view.IsValid)
	assert.Nil(t, view.Membership)
	assert.Equal(t, "No active membership", view.Message)
}

func TestParseNullableMoney(t *testing.T) {
	money, clear, err := parseNullableMoney(nil)
	require.NoError(t, err)
	assert.Nil(t, money)
	assert.False(t, clear)

	money, clear, err = parseNullableMoney(json.RawMessage(" null "))
	require.NoError(t, err)
	assert.Nil(t, money)
	assert.True(t, clear)

	money, clear, err = parseNullableMoney(json.RawMessage(`"1250.50"`))
	require.NoError(t, err)
	require.NotNil(t, money)
	assert.False(t, clear)
	assert.Equal(t, "1250.50", money.String())

	_, _, err = parseNullableMoney(json.RawMessage(`"abc"`))
	assert.Error(t, err)
}

func TestRequestIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name      string
		forwarded string
		want      string
	}{
		{"first forwarded entry", "203.0.113.9, 10.0.0.1", "203.0.113.9"},
		{"invalid forwarded falls back", "unknown", "192.0.2.1"},
		{"no header", "", "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/advertisements/1/view", nil)
			c.Request.RemoteAddr = "192.0.2.1:4321"
			if tc.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			assert.Equal(t, tc.want, requestIP(c))
		})
	}
}

func TestSetItemFeaturedRequiresMembership(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:public_featured_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserMembership{}, &models.Category{}, &models.Item{}))

	cfg := &config.Config{}
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	userAuth := service.NewUserAuthService(cfg, userRepo, nil)
	h := New(&provider.Container{
		Config:          cfg,
		UserAuthService: userAuth,
		ItemService: service.NewItemService(
			itemRepo,
			repository.NewCategoryRepository(db),
			repository.NewWishlistRepository(db),
			userAuth,
			nil,
		),
	})

	seller := &models.User{Username: "seller", Email: "seller@ait.ac.th", AITEmail: "seller@ait.ac.th", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(seller).Error)
	item := &models.Item{OwnerID: seller.ID, Title: "Bike", Description: "City bike", Category: "Sports", Condition: "good", IsAvailable: true, ImageURLs: models.StringArray{}}
	require.NoError(t, db.Create(item).Error)

	r := gin.New()
	r.POST("/items/:id/set_featured", func(c *gin.Context) {
		c.Set("user_id", seller.ID)
		h.SetItemFeatured(c)
	})
	path := fmt.Sprintf("/items/%d/set_featured", item.ID)

	w, resp := postJSON(r, path, gin.H{})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, err = userAuth.PurchaseMembership(seller.ID, 1)
	require.NoError(t, err)
	w, resp = postJSON(r, path, gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var featured struct {
		IsFeatured bool `json:"is_featured"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &featured))
	assert.True(t, featured.IsFeatured)
}
