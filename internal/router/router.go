package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/ait-marketplace/internal/authz"
	"github.com/ait-marketplace/internal/cache"
	"github.com/ait-marketplace/internal/config"
	adminhandlers "github.com/ait-marketplace/internal/http/handlers/admin"
	panelhandlers "github.com/ait-marketplace/internal/http/handlers/panel"
	publichandlers "github.com/ait-marketplace/internal/http/handlers/public"
	"github.com/ait-marketplace/internal/http/response"
	"github.com/ait-marketplace/internal/logger"
	"github.com/ait-marketplace/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	panelHandler := panelhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ait"
	}
	redisClient := cache.Client()
	loginRule := LoginRateLimitRule(cfg.Security.LoginRateLimit)
	loginRule.Prefix = fmt.Sprintf("%s:rate:login", redisPrefix)
	adminLoginRule := LoginRateLimitRule(cfg.Security.LoginRateLimit)
	adminLoginRule.Prefix = fmt.Sprintf("%s:rate:admin_login", redisPrefix)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	userAuth := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo)
	optionalAuth := OptionalUserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo)

	apiV1 := r.Group("/api/v1")
	{
		// 公开配置与验证码
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/captcha/config", publicHandler.GetCaptchaConfig)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 用户与会员
		users := apiV1.Group("/users")
		{
			users.POST("/register", publicHandler.Register)
			users.POST("/token", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Token)
			users.POST("/token/refresh", publicHandler.RefreshToken)
			users.GET("/profile", userAuth, publicHandler.GetProfile)
			users.PUT("/profile", userAuth, publicHandler.UpdateProfile)
			users.PATCH("/profile", userAuth, publicHandler.UpdateProfile)
			users.PUT("/password", userAuth, publicHandler.ChangePassword)
			users.GET("/membership", userAuth, publicHandler.GetMembership)
			users.POST("/membership", userAuth, publicHandler.PurchaseMembership)
		}

		// 分类
		categories := apiV1.Group("/categories")
		{
			categories.GET("", publicHandler.ListCategories)
			categories.GET("/tree", publicHandler.GetCategoryTree)
			categories.GET("/:id", publicHandler.GetCategory)
			categories.GET("/:id/parameters", publicHandler.ListCategoryParameters)
		}

		// 商品
		items := apiV1.Group("/items")
		{
			items.GET("", optionalAuth, publicHandler.ListItems)
			items.GET("/:id", publicHandler.GetItem)
			items.POST("", userAuth, publicHandler.CreateItem)
			items.PUT("/:id", userAuth, publicHandler.UpdateItem)
			items.PATCH("/:id", userAuth, publicHandler.UpdateItem)
			items.DELETE("/:id", userAuth, publicHandler.DeleteItem)
			items.POST("/:id/set_featured", userAuth, publicHandler.SetItemFeatured)
			items.POST("/:id/unset_featured", userAuth, publicHandler.UnsetItemFeatured)
		}
		apiV1.POST("/uploads/images", userAuth, publicHandler.UploadImage)

		// 通知
		notifications := apiV1.Group("/notifications", userAuth)
		{
			notifications.GET("", publicHandler.ListNotifications)
			notifications.POST("/mark-all-read", publicHandler.MarkAllNotificationsRead)
			notifications.GET("/unread-count", publicHandler.GetUnreadNotificationCount)
			notifications.GET("/stats", publicHandler.GetNotificationStats)
			notifications.POST("/create", publicHandler.CreateNotification)
			notifications.GET("/settings", publicHandler.GetNotificationSettings)
			notifications.PUT("/settings", publicHandler.UpdateNotificationSettings)
			notifications.PATCH("/settings", publicHandler.UpdateNotificationSettings)
			notifications.GET("/:id", publicHandler.GetNotification)
			notifications.PATCH("/:id", publicHandler.PatchNotification)
			notifications.DELETE("/:id", publicHandler.DeleteNotification)
			notifications.POST("/:id/read", publicHandler.MarkNotificationRead)
		}

		// 订单
		orders := apiV1.Group("/orders", userAuth)
		{
			orders.GET("", publicHandler.ListOrders)
			orders.POST("", publicHandler.CreateOrder)
			orders.GET("/seller", publicHandler.ListSellerOrders)
			orders.GET("/:id", publicHandler.GetOrder)
			orders.PUT("/:id", publicHandler.UpdateOrder)
			orders.PATCH("/:id", publicHandler.UpdateOrder)
			orders.DELETE("/:id", publicHandler.DeleteOrder)
			orders.POST("/:id/status", publicHandler.UpdateOrderStatus)
			orders.POST("/:id/cancel", publicHandler.CancelOrder)
		}

		// 购物车
		cart := apiV1.Group("/cart", userAuth)
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/add", publicHandler.AddCartItem)
			cart.PUT("/item/:item_id", publicHandler.UpdateCartItem)
			cart.DELETE("/item/:item_id", publicHandler.RemoveCartItem)
			cart.DELETE("/clear", publicHandler.ClearCart)
		}

		// 收藏与求购
		wishlist := apiV1.Group("/wishlist", userAuth)
		{
			wishlist.GET("", publicHandler.GetWishlist)
			wishlist.POST("/add", publicHandler.AddWishlistItem)
			wishlist.DELETE("/item/:item_id/remove", publicHandler.RemoveWishlistItem)
			wishlist.GET("/want-to-buy", publicHandler.ListWantToBuy)
			wishlist.POST("/want-to-buy", publicHandler.CreateWantToBuy)
			wishlist.GET("/want-to-buy/user/:user_id", publicHandler.ListUserWantToBuy)
			wishlist.GET("/want-to-buy/:id", publicHandler.GetWantToBuy)
			wishlist.PUT("/want-to-buy/:id", publicHandler.UpdateWantToBuy)
			wishlist.PATCH("/want-to-buy/:id", publicHandler.UpdateWantToBuy)
			wishlist.DELETE("/want-to-buy/:id", publicHandler.DeleteWantToBuy)
			wishlist.POST("/want-to-buy/:id/fulfill", publicHandler.FulfillWantToBuy)
		}

		// 求购帖（免费额度 / 付费）
		wanted := apiV1.Group("/wanted")
		{
			wanted.GET("/post-info", userAuth, publicHandler.GetWantedPostInfo)
			wanted.GET("/wanted", optionalAuth, publicHandler.ListWanted)
			wanted.POST("/wanted", userAuth, publicHandler.CreateWanted)
			wanted.GET("/wanted/:id", publicHandler.GetWanted)
			wanted.PUT("/wanted/:id", userAuth, publicHandler.UpdateWanted)
			wanted.PATCH("/wanted/:id", userAuth, publicHandler.UpdateWanted)
			wanted.DELETE("/wanted/:id", userAuth, publicHandler.DeleteWanted)
		}

		// 以物换物
		barter := apiV1.Group("/barter", userAuth)
		{
			barter.GET("", publicHandler.ListBarters)
			barter.POST("", publicHandler.CreateBarter)
			barter.GET("/:id", publicHandler.GetBarter)
			barter.DELETE("/:id", publicHandler.DeleteBarter)
			barter.POST("/:id/accept", publicHandler.AcceptBarter)
			barter.POST("/:id/reject", publicHandler.RejectBarter)
			barter.POST("/:id/complete", publicHandler.CompleteBarter)
		}

		// 私信
		chat := apiV1.Group("/chat", userAuth)
		{
			chat.GET("/messages", publicHandler.ListMessages)
			chat.POST("/messages", publicHandler.SendMessage)
			chat.GET("/messages/:id", publicHandler.GetMessage)
			chat.DELETE("/messages/:id", publicHandler.DeleteMessage)
			chat.GET("/conversations", publicHandler.ListConversations)
		}

		// 论坛
		forum := apiV1.Group("/forum")
		{
			forum.GET("/categories", publicHandler.ListForumCategories)
			forum.GET("/stats", publicHandler.GetForumStats)
			forum.GET("/posts", publicHandler.ListForumPosts)
			forum.POST("/posts", userAuth, publicHandler.CreateForumPost)
			forum.GET("/my-posts", userAuth, publicHandler.ListMyForumPosts)
			forum.GET("/posts/:id", optionalAuth, publicHandler.GetForumPost)
			forum.PUT("/posts/:id", userAuth, publicHandler.UpdateForumPost)
			forum.PATCH("/posts/:id", userAuth, publicHandler.UpdateForumPost)
			forum.DELETE("/posts/:id", userAuth, publicHandler.DeleteForumPost)
			forum.GET("/posts/:id/replies", publicHandler.ListForumReplies)
			forum.POST("/posts/:id/replies", userAuth, publicHandler.CreateForumReply)
			forum.POST("/posts/:id/like", userAuth, publicHandler.ToggleForumPostLike)
			forum.POST("/replies/:id/like", userAuth, publicHandler.ToggleForumReplyLike)
			forum.POST("/replies/:id/solution", userAuth, publicHandler.MarkForumSolution)
		}

		// 广告
		ads := apiV1.Group("/advertisements")
		{
			ads.GET("/public", publicHandler.ListPublicAdvertisements)
			ads.GET("/position/:position", publicHandler.ListPositionAdvertisements)
			ads.GET("/stats", userAuth, publicHandler.GetAdvertisementStats)
			ads.GET("", userAuth, publicHandler.ListMyAdvertisements)
			ads.POST("", userAuth, publicHandler.CreateAdvertisement)
			ads.GET("/:id", userAuth, publicHandler.GetAdvertisement)
			ads.PUT("/:id", userAuth, publicHandler.UpdateAdvertisement)
			ads.PATCH("/:id", userAuth, publicHandler.UpdateAdvertisement)
			ads.DELETE("/:id", userAuth, publicHandler.DeleteAdvertisement)
			ads.POST("/:id/view", optionalAuth, publicHandler.RecordAdvertisementView)
			ads.POST("/:id/click", optionalAuth, publicHandler.RecordAdvertisementClick)
			ads.GET("/:id/analytics", userAuth, publicHandler.GetAdvertisementAnalytics)
		}

		// 支付（webhook 无需鉴权）
		apiV1.POST("/payments/webhook/:provider", publicHandler.PaymentWebhook)
		payments := apiV1.Group("/payments", userAuth)
		{
			payments.GET("/methods", publicHandler.ListPaymentMethods)
			payments.POST("/methods", publicHandler.CreatePaymentMethod)
			payments.GET("/methods/type/:type", publicHandler.ListPaymentMethodsByType)
			payments.GET("/methods/:id", publicHandler.GetPaymentMethod)
			payments.PUT("/methods/:id", publicHandler.UpdatePaymentMethod)
			payments.PATCH("/methods/:id", publicHandler.UpdatePaymentMethod)
			payments.DELETE("/methods/:id", publicHandler.DeletePaymentMethod)
			payments.GET("/refunds", publicHandler.ListRefunds)
			payments.POST("/create-intent", publicHandler.CreatePaymentIntent)
			payments.GET("", publicHandler.ListPayments)
			payments.GET("/:id", publicHandler.GetPayment)
			payments.POST("/:id/refund", publicHandler.RefundPayment)
		}

		// 地址
		addresses := apiV1.Group("/addresses", userAuth)
		{
			addresses.GET("", publicHandler.ListAddresses)
			addresses.POST("", publicHandler.CreateAddress)
			addresses.GET("/default", publicHandler.GetDefaultAddress)
			addresses.GET("/:id", publicHandler.GetAddress)
			addresses.PUT("/:id", publicHandler.UpdateAddress)
			addresses.PATCH("/:id", publicHandler.UpdateAddress)
			addresses.DELETE("/:id", publicHandler.DeleteAddress)
			addresses.POST("/:id/set-default", publicHandler.SetDefaultAddress)
		}

		// 搜索
		search := apiV1.Group("/search")
		{
			search.GET("/items", publicHandler.SearchItems)
			search.GET("/want-to-buy", publicHandler.SearchWantToBuy)
			search.GET("/suggestions", publicHandler.SearchSuggestions)
			search.GET("/stats", publicHandler.SearchStats)
		}

		// 统计
		statistics := apiV1.Group("/statistics", userAuth)
		{
			statistics.GET("/dashboard", publicHandler.GetDashboardStatistics)
			statistics.GET("/user", publicHandler.GetUserStatistics)
			statistics.GET("/sales", publicHandler.GetSalesStatistics)
			statistics.GET("/items", publicHandler.GetItemStatistics)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminMe)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 仪表盘
				authorized.GET("/dashboard", adminHandler.GetDashboard)
				authorized.GET("/system-health", adminHandler.GetSystemHealth)

				// 用户 / 商品 / 订单
				authorized.GET("/users", adminHandler.ListUsers)
				authorized.GET("/items", adminHandler.ListItems)
				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.POST("/bulk-action", adminHandler.BulkAction)

				// 分类与参数
				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.GET("/categories/:id/parameters", adminHandler.ListCategoryParameters)
				authorized.POST("/categories/:id/parameters", adminHandler.CreateCategoryParameter)
				authorized.PUT("/category-parameters/:id", adminHandler.UpdateCategoryParameter)
				authorized.DELETE("/category-parameters/:id", adminHandler.DeleteCategoryParameter)

				// 论坛分类
				authorized.GET("/forum-categories", adminHandler.ListForumCategories)
				authorized.POST("/forum-categories", adminHandler.CreateForumCategory)
				authorized.PUT("/forum-categories/:id", adminHandler.UpdateForumCategory)
				authorized.DELETE("/forum-categories/:id", adminHandler.DeleteForumCategory)

				// 通知模板与公告
				authorized.GET("/notification-templates", adminHandler.ListNotificationTemplates)
				authorized.POST("/notification-templates", adminHandler.CreateNotificationTemplate)
				authorized.PUT("/notification-templates/:id", adminHandler.UpdateNotificationTemplate)
				authorized.DELETE("/notification-templates/:id", adminHandler.DeleteNotificationTemplate)
				authorized.POST("/announcements", adminHandler.CreateAnnouncement)

				// 设置
				authorized.GET("/settings/marketplace", adminHandler.GetMarketplaceSettings)
				authorized.PUT("/settings/marketplace", adminHandler.UpdateMarketplaceSettings)
				authorized.GET("/settings/smtp", adminHandler.GetSMTPSettings)
				authorized.PUT("/settings/smtp", adminHandler.UpdateSMTPSettings)
				authorized.POST("/settings/smtp/test", adminHandler.TestSMTPSettings)
				authorized.GET("/settings/captcha", adminHandler.GetCaptchaSettings)
				authorized.PUT("/settings/captcha", adminHandler.UpdateCaptchaSettings)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadImage)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 管理面板（服务端渲染 + cookie 会话）
	manage := r.Group("/manage", panelhandlers.SessionMiddleware(cfg.Session))
	{
		manage.GET("", func(ctx *gin.Context) { ctx.Redirect(http.StatusSeeOther, "/manage/dashboard") })
		manage.GET("/login", panelHandler.LoginPage)
		manage.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), panelHandler.Login)
		manage.POST("/logout", panelHandler.Logout)

		// 面板页面复用后台 API 的权限点
		pages := manage.Group("", panelHandler.RequireLogin())
		{
			bulkAction := panelHandler.RequirePermission("/admin/bulk-action", http.MethodPost)
			pages.GET("/dashboard", panelHandler.RequirePermission("/admin/dashboard", http.MethodGet), panelHandler.Dashboard)
			pages.GET("/users", panelHandler.RequirePermission("/admin/users", http.MethodGet), panelHandler.Users)
			pages.POST("/users/:id/action", bulkAction, panelHandler.UserAction)
			pages.GET("/items", panelHandler.RequirePermission("/admin/items", http.MethodGet), panelHandler.Items)
			pages.POST("/items/:id/action", bulkAction, panelHandler.ItemAction)
			pages.GET("/orders", panelHandler.RequirePermission("/admin/orders", http.MethodGet), panelHandler.Orders)
			pages.GET("/memberships", panelHandler.RequirePermission("/admin/users", http.MethodGet), panelHandler.Memberships)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
