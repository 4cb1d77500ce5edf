package repository

import (
	"context"

	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/model"
)

// 基础目录实体（品牌/属性/变体/标签/政策）的仓储都是同一套分页 CRUD，
// 集中放在这一个文件里

// PageFilter 通用分页过滤
type PageFilter struct {
	Keyword  string
	Status   string
	Type     string // 仅 Policy 使用
	Page     int
	PageSize int
}

func (f *PageFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
}

// ==================== Brand ====================

type BrandRepository interface {
	Create(ctx context.Context, brand *model.Brand) error
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, brand *model.Brand) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PageFilter) ([]model.Brand, int64, error)
}

type brandRepo struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *brandRepo) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Brand{}).
		Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *brandRepo) Update(ctx context.Context, brand *model.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *brandRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Brand{}, id).Error
}

func (r *brandRepo) List(ctx context.Context, filter PageFilter) ([]model.Brand, int64, error) {
	filter.normalize()
	query := r.db.WithContext(ctx).Model(&model.Brand{})
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var brands []model.Brand
	err := query.Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&brands).Error
	return brands, total, err
}

// ==================== Attribute ====================

type AttributeRepository interface {
	Create(ctx context.Context, attr *model.Attribute) error
	GetByID(ctx context.Context, id int64) (*model.Attribute, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, attr *model.Attribute) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PageFilter) ([]model.Attribute, int64, error)
}

type attributeRepo struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepo{db: db}
}

func (r *attributeRepo) Create(ctx context.Context, attr *model.Attribute) error {
	return r.db.WithContext(ctx).Create(attr).Error
}

func (r *attributeRepo) GetByID(ctx context.Context, id int64) (*model.Attribute, error) {
	var attr model.Attribute
	if err := r.db.WithContext(ctx).First(&attr, id).Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

func (r *attributeRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Attribute{}).
		Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *attributeRepo) Update(ctx context.Context, attr *model.Attribute) error {
	return r.db.WithContext(ctx).Save(attr).Error
}

func (r *attributeRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Attribute{}, id).Error
}

func (r *attributeRepo) List(ctx context.Context, filter PageFilter) ([]model.Attribute, int64, error) {
	filter.normalize()
	query := r.db.WithContext(ctx).Model(&model.Attribute{})
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var attrs []model.Attribute
	err := query.Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&attrs).Error
	return attrs, total, err
}

// ==================== Variant ====================

type VariantRepository interface {
	Create(ctx context.Context, variant *model.Variant) error
	GetByID(ctx context.Context, id int64) (*model.Variant, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, variant *model.Variant) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PageFilter) ([]model.Variant, int64, error)
}

type variantRepo struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepo{db: db}
}

func (r *variantRepo) Create(ctx context.Context, variant *model.Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *variantRepo) GetByID(ctx context.Context, id int64) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.WithContext(ctx).First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Variant{}).
		Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *variantRepo) Update(ctx context.Context, variant *model.Variant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

func (r *variantRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Variant{}, id).Error
}

func (r *variantRepo) List(ctx context.Context, filter PageFilter) ([]model.Variant, int64, error) {
	filter.normalize()
	query := r.db.WithContext(ctx).Model(&model.Variant{})
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var variants []model.Variant
	err := query.Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&variants).Error
	return variants, total, err
}

// ==================== Tag ====================

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	GetByID(ctx context.Context, id int64) (*model.Tag, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PageFilter) ([]model.Tag, int64, error)
}

type tagRepo struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepo{db: db}
}

func (r *tagRepo) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepo) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *tagRepo) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Tag{}, id).Error
}

func (r *tagRepo) List(ctx context.Context, filter PageFilter) ([]model.Tag, int64, error) {
	filter.normalize()
	query := r.db.WithContext(ctx).Model(&model.Tag{})
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var tags []model.Tag
	err := query.Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&tags).Error
	return tags, total, err
}

// ==================== Policy ====================

type PolicyRepository interface {
	Create(ctx context.Context, policy *model.Policy) error
	GetByID(ctx context.Context, id int64) (*model.Policy, error)
	Update(ctx context.Context, policy *model.Policy) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PageFilter) ([]model.Policy, int64, error)
}

type policyRepo struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &policyRepo{db: db}
}

func (r *policyRepo) Create(ctx context.Context, policy *model.Policy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *policyRepo) GetByID(ctx context.Context, id int64) (*model.Policy, error) {
	var policy model.Policy
	if err := r.db.WithContext(ctx).First(&policy, id).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *policyRepo) Update(ctx context.Context, policy *model.Policy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

func (r *policyRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Policy{}, id).Error
}

func (r *policyRepo) List(ctx context.Context, filter PageFilter) ([]model.Policy, int64, error) {
	filter.normalize()
	query := r.db.WithContext(ctx).Model(&model.Policy{})
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var policies []model.Policy
	err := query.Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize).
		Find(&policies).Error
	return policies, total, err
}
