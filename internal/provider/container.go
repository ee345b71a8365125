package provider

import (
	"github.com/ait-marketplace/internal/authz"
	"github.com/ait-marketplace/internal/cache"
	"github.com/ait-marketplace/internal/config"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/queue"
	"github.com/ait-marketplace/internal/repository"
	"github.com/ait-marketplace/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	CategoryRepo      repository.CategoryRepository
	ItemRepo          repository.ItemRepository
	NotificationRepo  repository.NotificationRepository
	OrderRepo         repository.OrderRepository
	CartRepo          repository.CartRepository
	WishlistRepo      repository.WishlistRepository
	WantedRepo        repository.WantedRepository
	BarterRepo        repository.BarterRepository
	MessageRepo       repository.MessageRepository
	ForumRepo         repository.ForumRepository
	AdvertisementRepo repository.AdvertisementRepository
	PaymentRepo       repository.PaymentRepository
	AddressRepo       repository.AddressRepository
	StatisticsRepo    repository.StatisticsRepository
	SettingRepo       repository.SettingRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	UserAuthService      *service.UserAuthService
	SettingService       *service.SettingService
	EmailService         *service.EmailService
	CaptchaService       *service.CaptchaService
	UploadService        *service.UploadService
	NotificationService  *service.NotificationService
	CategoryService      *service.CategoryService
	ItemService          *service.ItemService
	OrderService         *service.OrderService
	CartService          *service.CartService
	WishlistService      *service.WishlistService
	WantedService        *service.WantedService
	BarterService        *service.BarterService
	ChatService          *service.ChatService
	ForumService         *service.ForumService
	AdvertisementService *service.AdvertisementService
	PaymentService       *service.PaymentService
	AddressService       *service.AddressService
	SearchService        *service.SearchService
	StatisticsService    *service.StatisticsService
	AdminService         *service.AdminService
	AuthzAuditService    *service.AuthzAuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ItemRepo = repository.NewItemRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.WantedRepo = repository.NewWantedRepository(db)
	c.BarterRepo = repository.NewBarterRepository(db)
	c.MessageRepo = repository.NewMessageRepository(db)
	c.ForumRepo = repository.NewForumRepository(db)
	c.AdvertisementRepo = repository.NewAdvertisementRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.StatisticsRepo = repository.NewStatisticsRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	smtpSetting, err := c.SettingService.GetSMTPSetting(c.Config.Email)
	if err != nil {
		logger.Warnw("provider_load_smtp_setting_failed", "error", err)
	} else {
		c.Config.Email = service.SMTPSettingToConfig(smtpSetting)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.SettingService, c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.SettingService)
	c.UploadService = service.NewUploadService(c.Config)
	c.NotificationService = service.NewNotificationService(c.Config, c.NotificationRepo, c.UserRepo, c.SettingService, c.QueueClient)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ItemService = service.NewItemService(c.ItemRepo, c.CategoryRepo, c.WishlistRepo, c.UserAuthService, c.NotificationService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ItemRepo, c.NotificationService)
	c.CartService = service.NewCartService(c.CartRepo, c.ItemRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ItemRepo)
	c.WantedService = service.NewWantedService(c.Config, c.WantedRepo, c.UserAuthService, c.SettingService)
	c.BarterService = service.NewBarterService(c.BarterRepo, c.ItemRepo, c.NotificationService)
	c.ChatService = service.NewChatService(c.MessageRepo, c.UserRepo, c.ItemRepo, c.NotificationService)
	c.ForumService = service.NewForumService(c.ForumRepo, c.NotificationService)
	c.AdvertisementService = service.NewAdvertisementService(c.AdvertisementRepo)
	c.PaymentService = service.NewPaymentService(c.Config, c.PaymentRepo, c.OrderRepo, c.NotificationService)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.SearchService = service.NewSearchService(c.ItemRepo, c.WishlistRepo, c.CategoryRepo, c.StatisticsRepo)
	c.StatisticsService = service.NewStatisticsService(c.StatisticsRepo)
	c.AdminService = service.NewAdminService(models.DB, c.UserRepo, c.ItemRepo, c.OrderRepo, c.StatisticsRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
}
