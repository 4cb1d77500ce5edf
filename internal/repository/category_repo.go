package repository

import (
	"context"

	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetByIDWithMappings(ctx context.Context, id int64) (*model.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, category *model.Category) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	ListAll(ctx context.Context) ([]model.Category, error)
	ListChildren(ctx context.Context, parentID int64) ([]model.Category, error)
	CountChildren(ctx context.Context, parentID int64) (int64, error)

	// 映射维护
	ReplaceAttributeMappings(ctx context.Context, categoryID int64, mappings []model.CategoryAttributeMapping) error
	ReplaceVariantMappings(ctx context.Context, categoryID int64, mappings []model.CategoryVariantMapping) error

	// 计数维护
	IncrProductCount(ctx context.Context, id int64, delta int) error
	SetProductCount(ctx context.Context, id int64, count int64) error
}

// ==================== 仓储实现 ====================

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) GetByIDWithMappings(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Preload("AttributeMappings").
		Preload("AttributeMappings.Attribute").
		Preload("VariantMappings").
		Preload("VariantMappings.Variant").
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).Updates(fields).Error
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("parent_id ASC, id ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) ListChildren(ctx context.Context, parentID int64) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) CountChildren(ctx context.Context, parentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

func (r *categoryRepo) ReplaceAttributeMappings(ctx context.Context, categoryID int64, mappings []model.CategoryAttributeMapping) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 纯关联行硬删，软删行会占住 idx_cat_attr 唯一索引，导致重提同一映射插不进去
		if err := tx.Unscoped().Where("category_id = ?", categoryID).
			Delete(&model.CategoryAttributeMapping{}).Error; err != nil {
			return err
		}
		if len(mappings) == 0 {
			return nil
		}
		for i := range mappings {
			mappings[i].CategoryID = categoryID
		}
		return tx.Create(&mappings).Error
	})
}

func (r *categoryRepo) ReplaceVariantMappings(ctx context.Context, categoryID int64, mappings []model.CategoryVariantMapping) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 同属性映射：硬删，避免软删行占住 idx_cat_variant
		if err := tx.Unscoped().Where("category_id = ?", categoryID).
			Delete(&model.CategoryVariantMapping{}).Error; err != nil {
			return err
		}
		if len(mappings) == 0 {
			return nil
		}
		for i := range mappings {
			mappings[i].CategoryID = categoryID
		}
		return tx.Create(&mappings).Error
	})
}

func (r *categoryRepo) IncrProductCount(ctx context.Context, id int64, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		Update("product_count", gorm.Expr("product_count + ?", delta)).Error
}

func (r *categoryRepo) SetProductCount(ctx context.Context, id int64, count int64) error {
	return r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", id).
		Update("product_count", count).Error
}
