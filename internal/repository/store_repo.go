package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// StoreRepository 店铺仓储接口
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	GetByOwnerUserID(ctx context.Context, userID int64) (*model.Store, error)
	ExistsByStoreName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, store *model.Store) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	// 列表查询
	List(ctx context.Context, filter StoreFilter) ([]model.Store, int64, error)

	// 注册草稿清理：registration_step 未走完且长期未更新的记录
	DeleteStaleDrafts(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 过滤条件 ====================

// StoreFilter 店铺过滤条件
type StoreFilter struct {
	VendorStatus string // 空表示不筛选
	Keyword      string // 店铺名模糊
	Page         int
	PageSize     int
}

// ==================== 仓储实现 ====================

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepo{db: db}
}

func (r *storeRepo) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepo) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Preload("Owner").First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetByOwnerUserID(ctx context.Context, userID int64) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("owner_user_id = ?", userID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) ExistsByStoreName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Store{}).
		Where("store_name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *storeRepo) Update(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *storeRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Store{}).
		Where("id = ?", id).Updates(fields).Error
}

func (r *storeRepo) Delete(ctx context.Context, id int64) error {
	// 硬删：owner_user_id/store_name/slug 都是普通唯一索引，
	// 软删行会永久堵死同一用户或同一店名的再次入驻
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Store{}, id).Error
}

func (r *storeRepo) List(ctx context.Context, filter StoreFilter) ([]model.Store, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Store{})

	if filter.VendorStatus != "" {
		query = query.Where("vendor_status = ?", filter.VendorStatus)
	}
	if filter.Keyword != "" {
		query = query.Where("store_name LIKE ?", "%"+filter.Keyword+"%")
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

	var stores []model.Store
	err := query.Order("id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&stores).Error
	return stores, total, err
}

func (r *storeRepo) DeleteStaleDrafts(ctx context.Context, before time.Time) (int64, error) {
	// 同 Delete：硬删，清掉的草稿不能挡住该用户重新开始入驻
	res := r.db.WithContext(ctx).Unscoped().
		Where("registration_step < ?", 5).
		Where("vendor_status = ?", model.VendorStatusPending).
		Where("updated_at < ?", before).
		Delete(&model.Store{})
	return res.RowsAffected, res.Error
}
