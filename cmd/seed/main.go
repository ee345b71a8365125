package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedParameter struct {
	Name     string
	Type     string
	Required bool
	Choices  []string
}

type seedCategory struct {
	Name        string
	Description string
	Parent      string
	SortOrder   int
	Parameters  []seedParameter
}

var seedCategories = []seedCategory{
	{Name: "Electronics", Description: "Phones, laptops and gadgets", SortOrder: 10, Parameters: []seedParameter{
		{Name: "Brand", Type: constants.CategoryParamText, Required: true},
		{Name: "Warranty", Type: constants.CategoryParamBoolean},
	}},
	{Name: "Laptops", Description: "Notebooks and accessories", Parent: "Electronics", SortOrder: 11, Parameters: []seedParameter{
		{Name: "RAM (GB)", Type: constants.CategoryParamNumber},
		{Name: "Operating System", Type: constants.CategoryParamChoice, Choices: []string{"Windows", "macOS", "Linux"}},
	}},
	{Name: "Phones", Description: "Mobile phones", Parent: "Electronics", SortOrder: 12},
	{Name: "Books", Description: "Textbooks and novels", SortOrder: 20, Parameters: []seedParameter{
		{Name: "Course Code", Type: constants.CategoryParamText},
		{Name: "Edition", Type: constants.CategoryParamNumber},
	}},
	{Name: "Furniture", Description: "Dorm and apartment furniture", SortOrder: 30, Parameters: []seedParameter{
		{Name: "Material", Type: constants.CategoryParamMultiChoice, Choices: []string{"Wood", "Metal", "Plastic", "Fabric"}},
	}},
	{Name: "Bicycles", Description: "Bikes for getting around campus", SortOrder: 40},
	{Name: "Clothing", Description: "Clothes, shoes and accessories", SortOrder: 50, Parameters: []seedParameter{
		{Name: "Size", Type: constants.CategoryParamChoice, Required: true, Choices: []string{"XS", "S", "M", "L", "XL"}},
	}},
	{Name: "Other", Description: "Everything else", SortOrder: 99},
}

var seedForumCategories = []models.ForumCategory{
	{Name: "General Discussion", Description: "Talk about anything campus related", Color: "#007bff", Icon: "chat", SortOrder: 1},
	{Name: "Buying Tips", Description: "Advice on buying and selling safely", Color: "#28a745", Icon: "lightbulb", SortOrder: 2},
	{Name: "Housing", Description: "Dorms, apartments and roommates", Color: "#fd7e14", Icon: "home", SortOrder: 3},
	{Name: "Help", Description: "Questions about the marketplace", Color: "#dc3545", Icon: "question", SortOrder: 4},
}

var seedTemplates = []models.NotificationTemplate{
	{NotificationType: constants.NotificationOrderCreated, TitleTemplate: "New order #{{.order_id}}", MessageTemplate: "{{.message}}", EmailSubjectTemplate: "AIT Marketplace: new order #{{.order_id}}", EmailBodyTemplate: "{{.message}}"},
	{NotificationType: constants.NotificationOrderUpdated, TitleTemplate: "Order #{{.order_id}} is now {{.status}}", MessageTemplate: "{{.message}}", EmailSubjectTemplate: "AIT Marketplace: order #{{.order_id}} updated", EmailBodyTemplate: "{{.message}}"},
	{NotificationType: constants.NotificationOrderCancelled, TitleTemplate: "Order #{{.order_id}} cancelled", MessageTemplate: "{{.message}}", EmailSubjectTemplate: "AIT Marketplace: order #{{.order_id}} cancelled", EmailBodyTemplate: "{{.message}}"},
	{NotificationType: constants.NotificationPaymentReceived, TitleTemplate: "Payment received for order #{{.order_id}}", MessageTemplate: "We received {{.amount}} THB. {{.message}}", EmailSubjectTemplate: "AIT Marketplace: payment received", EmailBodyTemplate: "{{.message}}"},
	{NotificationType: constants.NotificationBarterRequest, TitleTemplate: "{{.title}}", MessageTemplate: "{{.message}}"},
	{NotificationType: constants.NotificationMessageReceived, TitleTemplate: "New message from {{.sender}}", MessageTemplate: "{{.message}}"},
	{NotificationType: constants.NotificationForumReply, TitleTemplate: "New reply on \"{{.post_title}}\"", MessageTemplate: "{{.message}}"},
	{NotificationType: constants.NotificationSystemAnnouncement, TitleTemplate: "{{.title}}", MessageTemplate: "{{.message}}", EmailSubjectTemplate: "AIT Marketplace announcement: {{.title}}", EmailBodyTemplate: "{{.message}}"},
	{NotificationType: constants.NotificationWishlistMatch, TitleTemplate: "{{.item_title}} matches your wishlist", MessageTemplate: "{{.message}}"},
}

type seedItem struct {
	Title       string
	Description string
	Price       string
	Category    string
	Condition   string
	IsBarter    bool
	AllowBarter bool
	DesiredItem string
	Location    string
}

var seedItems = []seedItem{
	{Title: "Study desk with drawer", Description: "Solid desk, fits in a dorm room.", Price: "1200.00", Category: "Furniture", Condition: constants.ConditionGood, AllowBarter: true, Location: "AIT Dorm C"},
	{Title: "Calculus textbook 8th edition", Description: "Some highlights, otherwise clean.", Price: "350.00", Category: "Books", Condition: constants.ConditionLikeNew, Location: "AIT Library"},
	{Title: "Mountain bike", Description: "21 speed, new tires.", Price: "2500.00", Category: "Bicycles", Condition: constants.ConditionFair, Location: "AIT Main Gate"},
	{Title: "Rice cooker", Description: "Looking to swap for a desk lamp.", Category: "Other", Condition: constants.ConditionGood, IsBarter: true, DesiredItem: "Desk lamp", Location: "AIT Dorm A"},
}

func main() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Overload(path)
		}
	}

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogLevel, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.DB
	categoryIDs, err := seedCategoryTree(db)
	if err != nil {
		stdLog.Fatalf("Failed to seed categories: %v", err)
	}
	if err := seedForum(db); err != nil {
		stdLog.Fatalf("Failed to seed forum categories: %v", err)
	}
	if err := seedNotificationTemplates(db); err != nil {
		stdLog.Fatalf("Failed to seed notification templates: %v", err)
	}
	demo, err := seedDemoUser(db, cfg.Marketplace.AllowedEmailDomain)
	if err != nil {
		stdLog.Fatalf("Failed to seed demo user: %v", err)
	}
	if err := seedDemoItems(db, demo, categoryIDs); err != nil {
		stdLog.Fatalf("Failed to seed demo items: %v", err)
	}
	stdLog.Printf("Seed completed")
}

func seedCategoryTree(db *gorm.DB) (map[string]uint, error) {
	ids := make(map[string]uint, len(seedCategories))
	for _, seed := range seedCategories {
		var category models.Category
		err := db.Where("name = ?", seed.Name).First(&category).Error
		switch {
		case err == nil:
			logger.Infow("seed_category_exists", "name", seed.Name)
		case errors.Is(err, gorm.ErrRecordNotFound):
			category = models.Category{
				Name:        seed.Name,
				Description: seed.Description,
				IsActive:    true,
				SortOrder:   seed.SortOrder,
			}
			if seed.Parent != "" {
				parentID, ok := ids[seed.Parent]
				if !ok {
					return nil, fmt.Errorf("parent %s must be seeded before %s", seed.Parent, seed.Name)
				}
				category.ParentID = &parentID
			}
			if err := db.Create(&category).Error; err != nil {
				return nil, fmt.Errorf("create category %s: %w", seed.Name, err)
			}
			logger.Infow("seed_category_created", "name", seed.Name, "id", category.ID)
		default:
			return nil, err
		}
		ids[seed.Name] = category.ID

		for i, param := range seed.Parameters {
			var count int64
			if err := db.Model(&models.CategoryParameter{}).
				Where("category_id = ? AND name = ?", category.ID, param.Name).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				continue
			}
			row := models.CategoryParameter{
				CategoryID:    category.ID,
				Name:          param.Name,
				ParameterType: param.Type,
				IsRequired:    param.Required,
				Choices:       strings.Join(param.Choices, "\n"),
				SortOrder:     i,
			}
			if err := db.Create(&row).Error; err != nil {
				return nil, fmt.Errorf("create parameter %s/%s: %w", seed.Name, param.Name, err)
			}
		}
	}
	return ids, nil
}

func seedForum(db *gorm.DB) error {
	for _, seed := range seedForumCategories {
		category := seed
		category.IsActive = true
		result := db.Where("name = ?", category.Name).FirstOrCreate(&category)
		if result.Error != nil {
			return fmt.Errorf("create forum category %s: %w", seed.Name, result.Error)
		}
		if result.RowsAffected > 0 {
			logger.Infow("seed_forum_category_created", "name", category.Name)
		}
	}
	return nil
}

func seedNotificationTemplates(db *gorm.DB) error {
	for _, seed := range seedTemplates {
		tpl := seed
		tpl.IsActive = true
		result := db.Where("notification_type = ?", tpl.NotificationType).FirstOrCreate(&tpl)
		if result.Error != nil {
			return fmt.Errorf("create template %s: %w", seed.NotificationType, result.Error)
		}
		if result.RowsAffected > 0 {
			logger.Infow("seed_notification_template_created", "type", tpl.NotificationType)
		}
	}
	return nil
}

func seedDemoUser(db *gorm.DB, domain string) (*models.User, error) {
	domain = strings.TrimPrefix(strings.TrimSpace(domain), "@")
	if domain == "" {
		domain = "ait.ac.th"
	}
	email := "demo@" + domain

	var user models.User
	err := db.Where("username = ?", "demo").First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Username:     "demo",
		Email:        email,
		AITEmail:     email,
		PasswordHash: string(hash),
		FirstName:    "Demo",
		LastName:     "Student",
		IsVerified:   true,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	logger.Infow("seed_demo_user_created", "username", user.Username, "email", email)
	return &user, nil
}

func seedDemoItems(db *gorm.DB, owner *models.User, categoryIDs map[string]uint) error {
	now := time.Now()
	for i, seed := range seedItems {
		var count int64
		if err := db.Model(&models.Item{}).Where("owner_id = ? AND title = ?", owner.ID, seed.Title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		item := models.Item{
			OwnerID:     owner.ID,
			Title:       seed.Title,
			Description: seed.Description,
			Category:    seed.Category,
			ImageURLs:   models.StringArray{},
			IsAvailable: true,
			IsBarter:    seed.IsBarter,
			AllowBarter: seed.AllowBarter,
			DesiredItem: seed.DesiredItem,
			Condition:   seed.Condition,
			Location:    seed.Location,
			CreatedAt:   now.Add(-time.Duration(len(seedItems)-i) * time.Hour),
		}
		if id, ok := categoryIDs[seed.Category]; ok {
			item.CategoryID = &id
		}
		if seed.Price != "" {
			price := models.NewMoneyFromDecimal(decimal.RequireFromString(seed.Price))
			item.Price = &price
		}
		if err := db.Create(&item).Error; err != nil {
			return fmt.Errorf("create item %s: %w", seed.Title, err)
		}
		logger.Infow("seed_item_created", "title", item.Title, "id", item.ID)
	}
	return nil
}
