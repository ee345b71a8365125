package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupMarketplaceRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserMembership{},
		&models.Category{},
		&models.Item{},
		&models.Order{},
		&models.OrderItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.WantToBuy{},
		&models.WantedItem{},
		&models.BarterTransaction{},
		&models.Address{},
		&models.ForumCategory{},
		&models.ForumPost{},
		&models.ForumReply{},
		&models.PostLike{},
		&models.ReplyLike{},
	); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		AITEmail:     username + "@ait.ac.th",
		PasswordHash: "hash",
		IsActive:     true,
		IsVerified:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createTestItem(t *testing.T, db *gorm.DB, ownerID uint, title string, price int64, category string) *models.Item {
	t.Helper()
	amount := models.NewMoneyFromDecimal(decimal.NewFromInt(price))
	item := &models.Item{
		OwnerID:     ownerID,
		Title:       title,
		Description: title + " description",
		Price:       &amount,
		Category:    category,
		Condition:   constants.ConditionGood,
		IsAvailable: true,
	}
	if err := NewItemRepository(db).Create(item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return item
}

func TestAddressClearDefaultKeepsSingleDefault(t *testing.T) {
	db := setupMarketplaceRepositoryTest(t)
	user := createTestUser(t, db, "alice")
	repo := NewAddressRepository(db)

	first := &models.Address{UserID: user.ID, Name: "Dorm", RecipientName: "Alice", PhoneNumber: "0800000000", AddressLine1: "AIT Dorm A", City: "Pathum Thani", Country: "Thailand", IsDefault: true, IsActive: true}
	second := &models.Address{UserID: user.ID, Name: "Office", RecipientName: "Alice", PhoneNumber: "0800000000", AddressLine1: "AIT Office", City: "Pathum Thani", Country: "Thailand", IsActive: true}
	for _, addr := range []*models.Address{first, second} {
		if err := repo.Create(addr); err != nil {
			t.Fatalf("create address failed: %v", err)
		}
	}

	err := repo.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if err := txRepo.ClearDefault(user.ID, second.ID); err != nil {
			return err
		}
		second.IsDefault = true
		return txRepo.Update(second)
	})
	if err != nil {
		t.Fatalf("switch default failed: %v", err)
	}

	def, err := repo.GetDefault(user.ID)
	if err != nil {
		t.Fatalf("get default failed: %v", err)
	}
	if def == nil || def.ID != second.ID {
		t.Fatalf("expected default %d, got %+v", second.ID, def)
	}
	rows, err := repo.ListActive(user.ID)
	if err != nil {
		t.Fatalf("list addresses failed: %v", err)
	}
	defaults := 0
	for _, row := range rows {
		if row.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default, got %d", defaults)
	}
	if rows[0].ID != second.ID {
		t.Fatalf("default address should be listed first")
	}
}

func TestWantedCountFreePostsSince(t *testing.T) {
	db := setupMarketplaceRepositoryTest(t)
	user := createTestUser(t, db, "bob")
	repo := NewWantedRepository(db)

	monthStart := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.WantedItem{
		{UserID: user.ID, Title: "old free", Description: "d", IsActive: true, IsFreePost: true, CreatedAt: monthStart.Add(-time.Hour)},
		{UserID: user.ID, Title: "free", Description: "d", IsActive: true, IsFreePost: true, CreatedAt: monthStart.Add(time.Hour)},
		{UserID: user.ID, Title: "paid", Description: "d", IsActive: true, IsFreePost: false, CreatedAt: monthStart.Add(2 * time.Hour)},
	}
	for i := range rows {
		if err := repo.Create(&rows[i]); err != nil {
			t.Fatalf("create wanted failed: %v", err)
		}
	}

	count, err := repo.CountFreePostsSince(user.ID, monthStart)
	if err != nil {
		t.Fatalf("count free posts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 free post this month, got %d", count)
	}
}

func TestForumTogglePostLike(t *testing.T) {
	db := setupMarketplaceRepositoryTest(t)
	user := createTestUser(t, db, "carol")
	repo := NewForumRepository(db)

	category := &models.ForumCategory{Name: "General", Color: constants.ForumCategoryColorDefault, IsActive: true}
	if err := repo.CreateCategory(category); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	post := &models.ForumPost{AuthorID: user.ID, CategoryID: category.ID, Title: "Hello", Content: "World", PostType: constants.ForumPostTypeDiscussion, Status: constants.ForumPostStatusPublished}
	if err := repo.CreatePost(post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	liked, err := repo.TogglePostLike(user.ID, post.ID)
	if err != nil || !liked {
		t.Fatalf("first toggle should like, liked=%v err=%v", liked, err)
	}
	if err := repo.RefreshPostLikeCount(post.ID); err != nil {
		t.Fatalf("refresh like count failed: %v", err)
	}
	got, err := repo.GetPost(post.ID)
	if err != nil || got == nil {
		t.Fatalf("get post failed: %v", err)
	}
	if got.LikeCount != 1 {
		t.Fatalf("expected like_count 1, got %d", got.LikeCount)
	}

	liked, err = repo.TogglePostLike(user.ID, post.ID)
	if err != nil || liked {
		t.Fatalf("second toggle should unlike, liked=%v err=%v", liked, err)
	}
	if err := repo.RefreshPostLikeCount(post.ID); err != nil {
		t.Fatalf("refresh like count failed: %v", err)
	}
	got, _ = repo.GetPost(post.ID)
	if got.LikeCount != 0 {
		t.Fatalf("expected like_count 0, got %d", got.LikeCount)
	}

	categories, err := repo.ListCategories(true)
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(categories) != 1 || categories[0].PostCount != 1 {
		t.Fatalf("expected one category with one post, got %+v", categories)
	}
}

func TestCartGetOrCreateIsIdempotent(t *testing.T) {
	db := setupMarketplaceRepositoryTest(t)
	buyer := createTestUser(t, db, "dave")
	seller := createTestUser(t, db, "erin")
	item := createTestItem(t, db, seller.ID, "Desk Lamp", 150, "Furniture")
	repo := NewCartRepository(db)

	cart, err := repo.GetOrCreate(buyer.ID)
	if err != nil {
		t.Fatalf("get or create cart failed: %v", err)
	}
	if err := repo.SaveItem(&models.CartItem{CartID: cart.ID, ItemID: item.ID, Quantity: 2}); err != nil {
		t.Fatalf("save cart item failed: %v", err)
	}

	again, err := repo.GetOrCreate(buyer.ID)
	if err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if again.ID != cart.ID {
		t.Fatalf("expected same cart id %d, got %d", cart.ID, again.ID)
	}
	if len(again.Items) != 1 || again.Items[0].Item == nil || again.Items[0].Item.Title != "Desk Lamp" {
		t.Fatalf("expected preloaded cart item, got %+v", again.Items)
	}

	existing, err := repo.GetItem(cart.ID, item.ID)
	if err != nil || existing == nil {
		t.Fatalf("get cart item failed: %v", err)
	}
	existing.Quantity = 5
	if err := repo.SaveItem(existing); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	existing, _ = repo.GetItem(cart.ID, item.ID)
	if existing.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", existing.Quantity)
	}

	affected, err := repo.DeleteItem(cart.ID, item.ID)
	if err != nil || affected != 1 {
		t.Fatalf("delete cart item failed: affected=%d err=%v", affected, err)
	}
}

func TestItemSearchFiltersAndSorts(t *testing.T) {
	db := setupMarketplaceRepositoryTest(t)
	seller := createTestUser(t, db, "frank")
	createTestItem(t, db, seller.ID, "Calculus Textbook", 300, "Books")
	createTestItem(t, db, seller.ID, "Physics Textbook", 500, "Books")
	createTestItem(t, db, seller.ID, "Rice Cooker", 800, "Appliances")
	repo := NewItemRepository(db)

	minPrice := 200.0
	maxPrice := 600.0
	rows, total, err := repo.Search(ItemSearchFilter{
		Page:     1,
		PageSize: 10,
		Query:    "textbook",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		SortBy:   "price",
		SortDesc: true,
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("expected 2 results, got total=%d len=%d", total, len(rows))
	}
	if rows[0].Title != "Physics Textbook" {
		t.Fatalf("expected price desc order, got %s first", rows[0].Title)
	}

	rows, total, err = repo.Search(ItemSearchFilter{Page: 1, PageSize: 10, Category: "appli"})
	if err != nil {
		t.Fatalf("category search failed: %v", err)
	}
	if total != 1 || rows[0].Title != "Rice Cooker" {
		t.Fatalf("expected rice cooker by category, got total=%d", total)
	}
}

func TestStatisticsOverviewAndPriceBuckets(t *testing.T) {
	db := setupMarketplaceRepositoryTest(t)
	seller := createTestUser(t, db, "grace")
	buyer := createTestUser(t, db, "heidi")
	cheap := createTestItem(t, db, seller.ID, "Pen", 50, "Stationery")
	createTestItem(t, db, seller.ID, "Bike", 1500, "Sports")

	order := &models.Order{
		BuyerID:       buyer.ID,
		SellerID:      seller.ID,
		ItemID:        cheap.ID,
		Quantity:      1,
		TotalPrice:    models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		Status:        constants.OrderStatusDelivered,
		PaymentStatus: constants.OrderPaymentStatusPaid,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	repo := NewStatisticsRepository(db)
	overview, err := repo.GetOverview(time.Now().AddDate(0, 0, -constants.StatsRecentDays))
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.TotalItems != 2 || overview.TotalUsers != 2 || overview.TotalOrders != 1 {
		t.Fatalf("unexpected overview: %+v", overview)
	}

	revenue, err := repo.SumPaidRevenue(seller.ID, nil)
	if err != nil {
		t.Fatalf("sum revenue failed: %v", err)
	}
	if revenue != 50 {
		t.Fatalf("expected revenue 50, got %v", revenue)
	}

	upper := 100.0
	count, err := repo.CountItemsInPriceRange(0, &upper)
	if err != nil || count != 1 {
		t.Fatalf("expected one item under 100, count=%d err=%v", count, err)
	}
	count, err = repo.CountItemsInPriceRange(1000, nil)
	if err != nil || count != 1 {
		t.Fatalf("expected one item over 1000, count=%d err=%v", count, err)
	}

	top, err := repo.TopItemsByOrders(constants.StatsTopItems)
	if err != nil {
		t.Fatalf("top items failed: %v", err)
	}
	if len(top) != 1 || top[0].ID != cheap.ID || top[0].TotalRevenue != 50 {
		t.Fatalf("unexpected top items: %+v", top)
	}

	stats, err := repo.GetUserStats(seller.ID)
	if err != nil {
		t.Fatalf("user stats failed: %v", err)
	}
	if stats.ItemsTotal != 2 || stats.SalesCompleted != 1 || stats.Revenue != 50 {
		t.Fatalf("unexpected user stats: %+v", stats)
	}
}
