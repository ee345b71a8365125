//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.Order{},
		&models.Item{},
		&models.Category{},
		&models.ForumPost{},
		&models.ForumCategory{},
		&models.UserMembership{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserMembership{},
		&models.Category{},
		&models.Item{},
		&models.Order{},
		&models.ForumCategory{},
		&models.ForumPost{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresCaseInsensitiveSearchRepositories(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	userRepo := NewUserRepository(db)
	user := &models.User{
		Username:     "PgSeller",
		Email:        "pg.seller@example.com",
		AITEmail:     "pg.seller@ait.ac.th",
		PasswordHash: "hash",
		FirstName:    "Somchai",
		IsActive:     true,
		IsVerified:   true,
	}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	users, userTotal, err := userRepo.List(UserListFilter{Page: 1, Search: "somchai"})
	if err != nil {
		t.Fatalf("user list search failed: %v", err)
	}
	if userTotal != 1 || len(users) != 1 {
		t.Fatalf("user list search want 1 got total=%d len=%d", userTotal, len(users))
	}

	category := &models.Category{Name: "Electronics", IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	itemRepo := NewItemRepository(db)
	price := models.NewMoneyFromDecimal(decimal.NewFromInt(2500))
	item := &models.Item{
		OwnerID:     user.ID,
		Title:       "Mechanical KEYBOARD",
		Description: "barely used",
		Price:       &price,
		Category:    "Gadgets",
		CategoryID:  &category.ID,
		Condition:   constants.ConditionLikeNew,
		IsAvailable: true,
	}
	if err := itemRepo.Create(item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	itemRows, itemTotal, err := itemRepo.Search(ItemSearchFilter{Page: 1, Query: "keyboard"})
	if err != nil {
		t.Fatalf("item search failed: %v", err)
	}
	if itemTotal != 1 || len(itemRows) != 1 {
		t.Fatalf("item search want 1 got total=%d len=%d", itemTotal, len(itemRows))
	}

	itemRows, itemTotal, err = itemRepo.Search(ItemSearchFilter{Page: 1, Category: "electron"})
	if err != nil {
		t.Fatalf("item category search failed: %v", err)
	}
	if itemTotal != 1 || len(itemRows) != 1 {
		t.Fatalf("item category search want 1 got total=%d len=%d", itemTotal, len(itemRows))
	}

	forumRepo := NewForumRepository(db)
	forumCategory := &models.ForumCategory{Name: "Announcements", Color: constants.ForumCategoryColorDefault, IsActive: true}
	if err := forumRepo.CreateCategory(forumCategory); err != nil {
		t.Fatalf("create forum category failed: %v", err)
	}
	post := &models.ForumPost{
		AuthorID:   user.ID,
		CategoryID: forumCategory.ID,
		Title:      "Semester Book Swap",
		Content:    "Bring your old textbooks",
		PostType:   constants.ForumPostTypeAnnouncement,
		Status:     constants.ForumPostStatusPublished,
	}
	if err := forumRepo.CreatePost(post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	postRows, postTotal, err := forumRepo.ListPosts(ForumPostListFilter{Page: 1, Search: "TEXTBOOKS"})
	if err != nil {
		t.Fatalf("post list search failed: %v", err)
	}
	if postTotal != 1 || len(postRows) != 1 {
		t.Fatalf("post list search want 1 got total=%d len=%d", postTotal, len(postRows))
	}
}

func TestPostgresStatisticsQueries(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewStatisticsRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	seller := &models.User{Username: "pg-stat-seller", Email: "s@example.com", AITEmail: "s@ait.ac.th", PasswordHash: "hash", IsActive: true, IsVerified: true}
	buyer := &models.User{Username: "pg-stat-buyer", Email: "b@example.com", AITEmail: "b@ait.ac.th", PasswordHash: "hash", IsActive: true}
	if err := db.Create(seller).Error; err != nil {
		t.Fatalf("create seller failed: %v", err)
	}
	if err := db.Create(buyer).Error; err != nil {
		t.Fatalf("create buyer failed: %v", err)
	}

	price := models.NewMoneyFromDecimal(decimal.NewFromInt(120))
	item := &models.Item{
		OwnerID:     seller.ID,
		Title:       "Statistics Notes",
		Price:       &price,
		Category:    "Books",
		Condition:   constants.ConditionGood,
		IsAvailable: true,
		CreatedAt:   now,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	order := &models.Order{
		BuyerID:       buyer.ID,
		SellerID:      seller.ID,
		ItemID:        item.ID,
		Quantity:      1,
		TotalPrice:    price,
		Status:        constants.OrderStatusConfirmed,
		PaymentStatus: constants.OrderPaymentStatusPaid,
		CreatedAt:     now,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	topItems, err := repo.TopItemsByOrders(constants.StatsTopItems)
	if err != nil {
		t.Fatalf("top items failed: %v", err)
	}
	if len(topItems) != 1 || topItems[0].Title != "Statistics Notes" {
		t.Fatalf("top items want Statistics Notes got %+v", topItems)
	}

	conditions, err := repo.CountItemsByCondition()
	if err != nil {
		t.Fatalf("count by condition failed: %v", err)
	}
	if len(conditions) != 1 || conditions[0].Condition != constants.ConditionGood {
		t.Fatalf("condition counts want good got %+v", conditions)
	}

	daily, err := repo.DailyCounts(&models.Order{}, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("daily order counts failed: %v", err)
	}
	if len(daily) == 0 || strings.TrimSpace(daily[0].Day) == "" {
		t.Fatalf("daily order counts should carry a day, got %+v", daily)
	}

	averages, err := repo.AveragePriceByCategory()
	if err != nil {
		t.Fatalf("average price failed: %v", err)
	}
	if len(averages) != 1 || averages[0].AvgPrice != 120 {
		t.Fatalf("average price want 120 got %+v", averages)
	}
}
