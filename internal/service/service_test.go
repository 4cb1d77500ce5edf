package service

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vendor_hub_v1_202608/internal/config"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Store{}, &model.Sequence{},
		&model.MasterProduct{}, &model.ProductAttributeValue{},
		&model.ProductVariantValue{}, &model.ProductMedia{}, &model.VendorOffering{},
		&model.Category{}, &model.CategoryAttributeMapping{}, &model.CategoryVariantMapping{},
		&model.Brand{}, &model.Attribute{}, &model.Variant{}, &model.Tag{}, &model.Policy{},
	); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return db
}

// testEnv 把常用的 repo/service 装配到一起，省得每个测试重复拼
type testEnv struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	storeRepo    repository.StoreRepository
	seqRepo      repository.SequenceRepository
	productRepo  repository.ProductRepository
	offeringRepo repository.OfferingRepository
	categoryRepo repository.CategoryRepository

	registration *RegistrationService
	vendor       *VendorService
	product      *ProductService
	offering     *OfferingService
	category     *CategoryService
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t)
	zlog := zap.NewNop()
	mail := NewMailService(config.MailConfig{}, zlog)

	env := &testEnv{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		storeRepo:    repository.NewStoreRepository(db),
		seqRepo:      repository.NewSequenceRepository(db),
		productRepo:  repository.NewProductRepository(db),
		offeringRepo: repository.NewOfferingRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
	}

	env.registration = NewRegistrationService(env.storeRepo, env.userRepo, env.seqRepo, mail, zlog)
	env.vendor = NewVendorService(env.storeRepo, env.userRepo, env.offeringRepo, mail, zlog)
	env.product = NewProductService(env.productRepo, env.categoryRepo, env.seqRepo, nil,
		config.CatalogConfig{ExposeMissingMapping: true}, zlog)
	env.offering = NewOfferingService(env.offeringRepo, env.productRepo, env.storeRepo, env.product, nil, zlog)
	env.category = NewCategoryService(env.categoryRepo, env.productRepo, zlog)
	return env
}

func (e *testEnv) createUser(t *testing.T, username, role string) *model.User {
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       1,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// createLeafCategory 建一个不带必填映射的叶子分类
func (e *testEnv) createLeafCategory(t *testing.T, name string) *model.Category {
	category := &model.Category{Name: name, Slug: name, IsLeaf: true, Status: "active"}
	if err := e.db.Create(category).Error; err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}
	return category
}
