package router

import (
	"fmt"
	"strings"

	"github.com/muhe-mall/internal/cache"
	"github.com/muhe-mall/internal/config"
	adminhandlers "github.com/muhe-mall/internal/http/handlers/admin"
	publichandlers "github.com/muhe-mall/internal/http/handlers/public"
	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "mh"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/captcha/image", publicHandler.GetCaptcha)
		}

		// 购物车接口（登录用户与游客共用，游客通过购物车令牌识别）
		cart := apiV1.Group("/cart")
		cart.Use(OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PUT("/items/:item_id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:item_id", publicHandler.DeleteCartItem)
			cart.DELETE("", publicHandler.ClearCart)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.POST("/auth/logout", publicHandler.UserLogout)
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.UserChangePassword)
			user.GET("/me/notification-prefs", publicHandler.GetNotificationPrefs)
			user.PUT("/me/notification-prefs", publicHandler.UpdateNotificationPrefs)

			user.GET("/wishlists", publicHandler.GetWishlists)
			user.POST("/wishlists", publicHandler.CreateWishlist)
			user.GET("/wishlists/:id", publicHandler.GetWishlist)
			user.PUT("/wishlists/:id", publicHandler.UpdateWishlist)
			user.DELETE("/wishlists/:id", publicHandler.DeleteWishlist)
			user.POST("/wishlists/:id/items", publicHandler.AddWishlistItem)
			user.DELETE("/wishlists/:id/items/:item_id", publicHandler.DeleteWishlistItem)
			user.POST("/wishlists/:id/transfer", publicHandler.TransferWishlist)
			user.GET("/wishlists/transfers/:transfer_id", publicHandler.GetTransferState)

			user.GET("/addresses", publicHandler.GetAddresses)
			user.GET("/addresses/default", publicHandler.GetDefaultAddress)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.PUT("/addresses/:id/default", publicHandler.SetDefaultAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.GetOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/by-order-no/:order_no", publicHandler.TrackOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 订单管理
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PUT("/users/:id/status", adminHandler.UpdateAdminUserStatus)

				// 设置管理
				authorized.GET("/settings", adminHandler.GetSettings)
				authorized.PUT("/settings", adminHandler.UpdateSettings)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)

				// 权限管理
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
