package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/config"
	"vendor_hub_v1_202608/internal/controller"
	"vendor_hub_v1_202608/internal/middleware"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/internal/router"
	"vendor_hub_v1_202608/internal/service"
	"vendor_hub_v1_202608/internal/task"
	"vendor_hub_v1_202608/pkg/database"
	"vendor_hub_v1_202608/pkg/logger"
)

// @title Vendor Hub API
// @version 1.0
// @description 多商家后台：入驻审核、主商品档案、分类与目录管理
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 2. 日志
	zlog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer zlog.Sync()

	// 3. JWT 配置注入
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTTL,
		Issuer:          cfg.JWT.Issuer,
	})

	// 4. 数据库
	db := initDatabase(cfg)

	// 5. 依赖装配
	deps := initDependencies(cfg, db, zlog)

	// 6. 定时任务
	tasks := initTasks(cfg, deps, zlog)
	defer stopTasks(tasks)

	// 7. 路由 & 启动
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers)

	startServer(r, cfg.Port, zlog)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User      repository.UserRepository
	Store     repository.StoreRepository
	Sequence  repository.SequenceRepository
	Product   repository.ProductRepository
	Offering  repository.OfferingRepository
	Category  repository.CategoryRepository
	Brand     repository.BrandRepository
	Attribute repository.AttributeRepository
	Variant   repository.VariantRepository
	Tag       repository.TagRepository
	Policy    repository.PolicyRepository
}

// Services 服务集合
type Services struct {
	Auth         *service.AuthService
	Registration *service.RegistrationService
	Vendor       *service.VendorService
	Product      *service.ProductService
	Offering     *service.OfferingService
	Category     *service.CategoryService
	Brand        *service.BrandService
	Attribute    *service.AttributeService
	Variant      *service.VariantService
	Tag          *service.TagService
	Policy       *service.PolicyService
	Mail         *service.MailService
	AI           *service.AIService
	Storage      service.StorageProvider
}

// ==================== 初始化函数 ====================

func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN(),
		// 账号
		&model.User{},
		// 商家
		&model.Store{}, &model.Sequence{},
		// 商品
		&model.MasterProduct{}, &model.ProductAttributeValue{},
		&model.ProductVariantValue{}, &model.ProductMedia{}, &model.VendorOffering{},
		// 分类
		&model.Category{}, &model.CategoryAttributeMapping{}, &model.CategoryVariantMapping{},
		// 目录
		&model.Brand{}, &model.Attribute{}, &model.Variant{}, &model.Tag{}, &model.Policy{},
	)
}

func initDependencies(cfg *config.Config, db *gorm.DB, zlog *zap.Logger) *Dependencies {
	repos := &Repositories{
		User:      repository.NewUserRepository(db),
		Store:     repository.NewStoreRepository(db),
		Sequence:  repository.NewSequenceRepository(db),
		Product:   repository.NewProductRepository(db),
		Offering:  repository.NewOfferingRepository(db),
		Category:  repository.NewCategoryRepository(db),
		Brand:     repository.NewBrandRepository(db),
		Attribute: repository.NewAttributeRepository(db),
		Variant:   repository.NewVariantRepository(db),
		Tag:       repository.NewTagRepository(db),
		Policy:    repository.NewPolicyRepository(db),
	}

	// -------- 基础服务 --------
	mailSvc := service.NewMailService(cfg.Mail, zlog)
	aiSvc := service.NewAIService(cfg.AI)
	storage, err := service.NewStorageProvider(cfg.Storage)
	if err != nil {
		// 没有存储不挡启动，媒体上传接口会报未配置
		zlog.Warn("存储初始化失败，媒体上传不可用", zap.Error(err))
		storage = nil
	}

	// -------- 业务服务 --------
	svcs := &Services{
		Mail:    mailSvc,
		AI:      aiSvc,
		Storage: storage,
	}
	svcs.Auth = service.NewAuthService(repos.User)
	svcs.Registration = service.NewRegistrationService(repos.Store, repos.User, repos.Sequence, mailSvc, zlog)
	svcs.Vendor = service.NewVendorService(repos.Store, repos.User, repos.Offering, mailSvc, zlog)
	svcs.Product = service.NewProductService(repos.Product, repos.Category, repos.Sequence, storage, cfg.Catalog, zlog)
	svcs.Offering = service.NewOfferingService(repos.Offering, repos.Product, repos.Store, svcs.Product, storage, zlog)
	svcs.Category = service.NewCategoryService(repos.Category, repos.Product, zlog)
	svcs.Brand = service.NewBrandService(repos.Brand)
	svcs.Attribute = service.NewAttributeService(repos.Attribute)
	svcs.Variant = service.NewVariantService(repos.Variant)
	svcs.Tag = service.NewTagService(repos.Tag)
	svcs.Policy = service.NewPolicyService(repos.Policy)

	// -------- Controller 层 --------
	controllers := router.Controllers{
		Auth:        controller.NewAuthController(svcs.Auth),
		Vendor:      controller.NewVendorController(svcs.Registration, svcs.Vendor, svcs.Offering),
		AdminVendor: controller.NewAdminVendorController(svcs.Vendor),
		Product:     controller.NewProductController(svcs.Product, svcs.AI),
		Category:    controller.NewCategoryController(svcs.Category),
		Catalog:     controller.NewCatalogController(svcs.Brand, svcs.Attribute, svcs.Variant, svcs.Tag, svcs.Policy),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    svcs,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

type stoppable interface {
	Stop()
}

func initTasks(cfg *config.Config, deps *Dependencies, zlog *zap.Logger) []stoppable {
	var tasks []stoppable

	if cfg.Tasks.ReconcileEnabled {
		t := task.NewReconcileTask(deps.Repos.Category, deps.Repos.Product, cfg.Tasks.ReconcileSpec, zlog)
		t.Start()
		tasks = append(tasks, t)
	}
	if cfg.Tasks.CleanupEnabled {
		t := task.NewCleanupTask(deps.Repos.Store, cfg.Tasks.CleanupSpec, cfg.Tasks.CleanupAfterDays, zlog)
		t.Start()
		tasks = append(tasks, t)
	}
	return tasks
}

func stopTasks(tasks []stoppable) {
	for _, t := range tasks {
		t.Stop()
	}
}

// ==================== 服务启动 ====================

func startServer(r *gin.Engine, port string, zlog *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		zlog.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("服务强制关闭", zap.Error(err))
	}
	zlog.Info("服务已退出")
}
