package provider

import (
	"github.com/muhe-mall/internal/authz"
	"github.com/muhe-mall/internal/cache"
	"github.com/muhe-mall/internal/config"
	"github.com/muhe-mall/internal/logger"
	"github.com/muhe-mall/internal/models"
	"github.com/muhe-mall/internal/queue"
	"github.com/muhe-mall/internal/repository"
	"github.com/muhe-mall/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	WishlistRepo repository.WishlistRepository
	AddressRepo  repository.AddressRepository
	OrderRepo    repository.OrderRepository
	SettingRepo  repository.SettingRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	UserAuthService *service.UserAuthService
	CaptchaService  *service.CaptchaService
	UploadService   *service.UploadService
	ProductService  *service.ProductService
	CategoryService *service.CategoryService
	SettingService  *service.SettingService
	CartService     *service.CartService
	WishlistService *service.WishlistService
	AddressService  *service.AddressService
	OrderService    *service.OrderService
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
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
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
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo, c.CartService, c.QueueClient)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.AddressRepo)
}
