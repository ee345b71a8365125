package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type marketplaceTestEnv struct {
	db       *gorm.DB
	cfg      *config.Config
	users    *repository.GormUserRepository
	items    *repository.GormItemRepository
	notifier *NotificationService
}

func setupMarketplaceServiceTest(t *testing.T, name string) *marketplaceTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "marketplace-test-secret"
	cfg.Marketplace = config.MarketplaceConfig{
		AllowedEmailDomain:     "@ait.ac.th",
		MembershipMonthlyPrice: 199,
		WantedPostingFee:       20,
		WantedFreePosts:        1,
		WantedMemberFreePosts:  5,
	}
	userRepo := repository.NewUserRepository(db)
	notifier := NewNotificationService(cfg, repository.NewNotificationRepository(db), userRepo, nil, nil)
	return &marketplaceTestEnv{
		db:       db,
		cfg:      cfg,
		users:    userRepo,
		items:    repository.NewItemRepository(db),
		notifier: notifier,
	}
}

func (e *marketplaceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		AITEmail:     username + "@ait.ac.th",
		PasswordHash: "hash",
		IsActive:     true,
		IsVerified:   true,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (e *marketplaceTestEnv) createItem(t *testing.T, ownerID uint, title string, price float64, mutate func(item *models.Item)) *models.Item {
	t.Helper()
	amount := models.NewMoneyFromDecimal(decimal.NewFromFloat(price))
	item := &models.Item{
		OwnerID:     ownerID,
		Title:       title,
		Description: title + " description",
		Price:       &amount,
		Category:    "Electronics",
		Condition:   "good",
		IsAvailable: true,
		ImageURLs:   models.StringArray{},
	}
	if mutate != nil {
		mutate(item)
	}
	if err := e.db.Create(item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return item
}

func (e *marketplaceTestEnv) notificationsFor(t *testing.T, userID uint, notificationType string) []models.Notification {
	t.Helper()
	var rows []models.Notification
	if err := e.db.Where("user_id = ? AND notification_type = ?", userID, notificationType).Find(&rows).Error; err != nil {
		t.Fatalf("load notifications failed: %v", err)
	}
	return rows
}

func (e *marketplaceTestEnv) grantMembership(t *testing.T, userID uint) {
	t.Helper()
	now := time.Now()
	membership := &models.UserMembership{
		UserID:    userID,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.AddDate(0, 1, 0),
		IsActive:  true,
		Price:     models.NewMoneyFromDecimal(decimal.NewFromInt(199)),
	}
	if err := e.db.Create(membership).Error; err != nil {
		t.Fatalf("create membership failed: %v", err)
	}
}

func moneyPtr(v float64) *models.Money {
	m := models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
	return &m
}

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }
