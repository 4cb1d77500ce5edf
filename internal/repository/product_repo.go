package repository

import (
	"context"

	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 主商品仓储接口
type ProductRepository interface {
	// CreateWithChildren 在单事务内写入商品与其属性值/变体值/媒体/报价
	CreateWithChildren(ctx context.Context, product *model.MasterProduct) error
	GetByID(ctx context.Context, id int64) (*model.MasterProduct, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*model.MasterProduct, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, filter ProductFilter) ([]model.MasterProduct, int64, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)

	// 媒体
	AddMedia(ctx context.Context, media *model.ProductMedia) error
	ClearPrimaryMedia(ctx context.Context, productID int64) error
	DeleteMedia(ctx context.Context, productID, mediaID int64) error
}

// ==================== 过滤条件 ====================

// ProductFilter 商品过滤条件
type ProductFilter struct {
	CategoryID int64  // 0 表示不筛选
	BrandID    int64  // 0 表示不筛选
	Status     string // 空表示不筛选
	Keyword    string // 名称模糊
	StoreID    int64  // 非 0 时只返回该店铺有报价的商品
	Page       int
	PageSize   int
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) CreateWithChildren(ctx context.Context, product *model.MasterProduct) error {
	// gorm 会级联插入关联切片，包在事务里保证要么全有要么全无
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.MasterProduct, error) {
	var product model.MasterProduct
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetByIDWithRelations(ctx context.Context, id int64) (*model.MasterProduct, error) {
	var product model.MasterProduct
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Preload("AttributeValues").
		Preload("VariantValues").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Offerings").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	// Unscoped：slug 唯一索引覆盖软删行，撞上软删商品也要走时间戳后缀
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&model.MasterProduct{}).
		Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.MasterProduct{}).
		Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.MasterProduct{}, id).Error
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.MasterProduct, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.MasterProduct{})

	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.BrandID > 0 {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.StoreID > 0 {
		query = query.Where("id IN (?)",
			r.db.Model(&model.VendorOffering{}).
				Select("master_product_id").
				Where("store_id = ?", filter.StoreID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	var products []model.MasterProduct
	err := query.Preload("Media", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, id ASC")
	}).
		Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MasterProduct{}).
		Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *productRepo) AddMedia(ctx context.Context, media *model.ProductMedia) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *productRepo) ClearPrimaryMedia(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Model(&model.ProductMedia{}).
		Where("product_id = ?", productID).
		Update("is_primary", false).Error
}

func (r *productRepo) DeleteMedia(ctx context.Context, productID, mediaID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.ProductMedia{}, mediaID).Error
}
