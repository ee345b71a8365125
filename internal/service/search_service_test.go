package service

import (
	"testing"

	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

func setupSearchServiceTest(t *testing.T) (*SearchService, *marketplaceTestEnv) {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "search_service_test")
	svc := NewSearchService(
		env.items,
		repository.NewWishlistRepository(env.db),
		repository.NewCategoryRepository(env.db),
		repository.NewStatisticsRepository(env.db),
	)
	return svc, env
}

func TestSearchServiceItemsFiltersAndSort(t *testing.T) {
	svc, env := setupSearchServiceTest(t)
	owner := env.createUser(t, "owner")
	env.createItem(t, owner.ID, "Gaming Laptop", 25000, nil)
	env.createItem(t, owner.ID, "Laptop Stand", 450, func(item *models.Item) {
		item.Category = "Accessories"
		item.IsBarter = true
	})
	env.createItem(t, owner.ID, "Old Laptop", 3000, func(item *models.Item) { item.IsAvailable = false })
	env.createItem(t, owner.ID, "Calculus Textbook", 300, func(item *models.Item) { item.Category = "Books" })

	items, total, err := svc.SearchItems(ItemSearchInput{Query: "laptop", SortBy: "price", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 available laptops, got %d", total)
	}
	if items[0].Title != "Laptop Stand" {
		t.Fatalf("expected ascending price order, got %s first", items[0].Title)
	}

	_, total, err = svc.SearchItems(ItemSearchInput{Query: "laptop", MinPrice: "1000", MaxPrice: "not-a-number"})
	if err != nil || total != 1 {
		t.Fatalf("invalid max price should be ignored, total=%d err=%v", total, err)
	}
	_, total, err = svc.SearchItems(ItemSearchInput{IsBarter: "true"})
	if err != nil || total != 1 {
		t.Fatalf("expected one barter item, total=%d err=%v", total, err)
	}
	_, total, err = svc.SearchItems(ItemSearchInput{Category: "book", SortBy: "DROP TABLE"})
	if err != nil || total != 1 {
		t.Fatalf("expected category match with fallback sort, total=%d err=%v", total, err)
	}
}

func TestSearchServiceSuggestionsAndStats(t *testing.T) {
	svc, env := setupSearchServiceTest(t)
	owner := env.createUser(t, "owner")
	env.createItem(t, owner.ID, "Desk Fan", 350, nil)
	env.createItem(t, owner.ID, "Desk Chair", 900, nil)
	if err := env.db.Create(&models.Category{Name: "Desks", IsActive: true}).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	short, err := svc.Suggestions("d")
	if err != nil {
		t.Fatalf("suggestions failed: %v", err)
	}
	if short.Items == nil || len(short.Items) != 0 || len(short.Categories) != 0 {
		t.Fatalf("short keywords should return empty lists: %+v", short)
	}

	suggestions, err := svc.Suggestions("desk")
	if err != nil {
		t.Fatalf("suggestions failed: %v", err)
	}
	if len(suggestions.Items) != 2 || len(suggestions.Categories) != 1 || suggestions.Categories[0] != "Desks" {
		t.Fatalf("unexpected suggestions: %+v", suggestions)
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalItems != 2 || len(stats.TopCategories) != 1 || stats.TopCategories[0].Count != 2 {
		t.Fatalf("unexpected search stats: %+v", stats)
	}
}

func TestSearchServiceIgnoresNonFinitePrices(t *testing.T) {
	svc, env := setupSearchServiceTest(t)
	owner := env.createUser(t, "owner")
	env.createItem(t, owner.ID, "Rice Cooker", 100, nil)

	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity"} {
		_, total, err := svc.SearchItems(ItemSearchInput{Query: "rice", MinPrice: raw, MaxPrice: raw})
		if err != nil || total != 1 {
			t.Fatalf("price %q should be ignored, total=%d err=%v", raw, total, err)
		}
	}
	if parseOptionalFloat("NaN") != nil || parseOptionalFloat("Inf") != nil {
		t.Fatalf("non-finite values must not parse")
	}
	if v := parseOptionalFloat(" 12.5 "); v == nil || *v != 12.5 {
		t.Fatalf("finite value should parse, got %v", v)
	}
}
