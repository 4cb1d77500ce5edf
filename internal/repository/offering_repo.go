package repository

import (
	"context"

	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/model"
)

// OfferingRepository 商家报价仓储接口
type OfferingRepository interface {
	Create(ctx context.Context, offering *model.VendorOffering) error
	GetByID(ctx context.Context, id int64) (*model.VendorOffering, error)
	GetByProductAndStore(ctx context.Context, productID, storeID int64) (*model.VendorOffering, error)
	ListByStore(ctx context.Context, storeID int64) ([]model.VendorOffering, error)
	Update(ctx context.Context, offering *model.VendorOffering) error
	Delete(ctx context.Context, id int64) error

	// 仪表盘聚合
	CountByStore(ctx context.Context, storeID int64) (int64, error)
	CountActiveByStore(ctx context.Context, storeID int64) (int64, error)
	CountPendingProductsByStore(ctx context.Context, storeID int64) (int64, error)
}

type offeringRepo struct {
	db *gorm.DB
}

func NewOfferingRepository(db *gorm.DB) OfferingRepository {
	return &offeringRepo{db: db}
}

func (r *offeringRepo) Create(ctx context.Context, offering *model.VendorOffering) error {
	return r.db.WithContext(ctx).Create(offering).Error
}

func (r *offeringRepo) GetByID(ctx context.Context, id int64) (*model.VendorOffering, error) {
	var offering model.VendorOffering
	if err := r.db.WithContext(ctx).First(&offering, id).Error; err != nil {
		return nil, err
	}
	return &offering, nil
}

func (r *offeringRepo) GetByProductAndStore(ctx context.Context, productID, storeID int64) (*model.VendorOffering, error) {
	var offering model.VendorOffering
	err := r.db.WithContext(ctx).
		Where("master_product_id = ? AND store_id = ?", productID, storeID).
		First(&offering).Error
	if err != nil {
		return nil, err
	}
	return &offering, nil
}

func (r *offeringRepo) ListByStore(ctx context.Context, storeID int64) ([]model.VendorOffering, error) {
	var offerings []model.VendorOffering
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id DESC").
		Find(&offerings).Error
	return offerings, err
}

func (r *offeringRepo) Update(ctx context.Context, offering *model.VendorOffering) error {
	return r.db.WithContext(ctx).Save(offering).Error
}

func (r *offeringRepo) Delete(ctx context.Context, id int64) error {
	// 硬删：(master_product_id, store_id) 唯一索引覆盖软删行，
	// 软删会让商家删掉报价后无法重新挂接同一商品
	return r.db.WithContext(ctx).Unscoped().Delete(&model.VendorOffering{}, id).Error
}

func (r *offeringRepo) CountByStore(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.VendorOffering{}).
		Where("store_id = ?", storeID).Count(&count).Error
	return count, err
}

func (r *offeringRepo) CountActiveByStore(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.VendorOffering{}).
		Where("store_id = ? AND is_active = ?", storeID, true).Count(&count).Error
	return count, err
}

func (r *offeringRepo) CountPendingProductsByStore(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MasterProduct{}).
		Where("status = ?", model.ProductStatusInactive).
		Where("id IN (?)", r.db.Model(&model.VendorOffering{}).
			Select("master_product_id").
			Where("store_id = ?", storeID)).
		Count(&count).Error
	return count, err
}
