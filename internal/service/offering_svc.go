package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/pkg/errs"
)

// OfferingService 商家报价：挂接已有主商品或提交新品请求
type OfferingService struct {
	offeringRepo repository.OfferingRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
	productSvc   *ProductService
	storage      StorageProvider
	logger       *zap.Logger
}

func NewOfferingService(
	offeringRepo repository.OfferingRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	productSvc *ProductService,
	storage StorageProvider,
	logger *zap.Logger,
) *OfferingService {
	return &OfferingService{
		offeringRepo: offeringRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		productSvc:   productSvc,
		storage:      storage,
		logger:       logger,
	}
}

// resolveApprovedStore 当前用户的店铺，必须已审核通过
func (s *OfferingService) resolveApprovedStore(ctx context.Context, userID int64) (*model.Store, error) {
	store, err := s.storeRepo.GetByOwnerUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Forbiddenf("you do not have a vendor store")
		}
		return nil, err
	}
	if store.VendorStatus != model.VendorStatusApproved {
		return nil, errs.Forbiddenf("your vendor account is not approved yet")
	}
	return store, nil
}

// Submit 商家提交商品，按 master_product_id 区分两种形态
func (s *OfferingService) Submit(ctx context.Context, userID int64, req dto.VendorProductReq, thumbnail []byte, thumbnailName string) (*model.MasterProduct, error) {
	store, err := s.resolveApprovedStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.MasterProductID > 0 {
		return s.link(ctx, store, req)
	}
	return s.submitNewProduct(ctx, store, req, thumbnail, thumbnailName)
}

// link 挂接已有主商品
// (master_product_id, store_id) 唯一，二次挂接直接冲突
func (s *OfferingService) link(ctx context.Context, store *model.Store, req dto.VendorProductReq) (*model.MasterProduct, error) {
	product, err := s.productRepo.GetByID(ctx, req.MasterProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("master product", strconv.FormatInt(req.MasterProductID, 10))
		}
		return nil, err
	}

	if _, err := s.offeringRepo.GetByProductAndStore(ctx, product.ID, store.ID); err == nil {
		return nil, errs.Conflictf("you already have an offering for this product")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	offering := buildOffering(store.ID, product.ID, req)
	if err := s.offeringRepo.Create(ctx, offering); err != nil {
		return nil, err
	}
	return s.productSvc.Get(ctx, product.ID)
}

// submitNewProduct 新品请求：建一条 inactive 主商品 + 唯一一条本店报价
// 等管理员把商品流转成 active 才对外可见
func (s *OfferingService) submitNewProduct(ctx context.Context, store *model.Store, req dto.VendorProductReq, thumbnail []byte, thumbnailName string) (*model.MasterProduct, error) {
	if req.Name == "" || req.CategoryID == 0 {
		return nil, errs.Validationf("name and category_id are required for a new product request")
	}

	attrValues := toAttributeValues(req.AttributeValues)
	variantValues := toVariantValues(req.VariantValues)
	if err := s.productSvc.validateCategorySelections(ctx, req.CategoryID, attrValues, variantValues); err != nil {
		return nil, err
	}

	product, err := s.productSvc.buildProduct(ctx, buildProductInput{
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		BrandID:         req.BrandID,
		Status:          model.ProductStatusInactive,
		About:           req.About,
		AttributeValues: attrValues,
		VariantValues:   variantValues,
	})
	if err != nil {
		return nil, err
	}

	if len(thumbnail) > 0 && s.storage != nil {
		url, err := s.storage.Upload(ctx, thumbnail, thumbnailName, "")
		if err != nil {
			// 缩略图失败不挡提交，商品后续可补图
			s.logger.Warn("新品缩略图上传失败", zap.String("store", store.VendorID), zap.Error(err))
		} else {
			product.Media = append(product.Media, model.ProductMedia{URL: url, IsPrimary: true})
		}
	}

	offering := buildOffering(store.ID, 0, req)
	product.Offerings = []model.VendorOffering{*offering}

	if err := s.productSvc.productRepo.CreateWithChildren(ctx, product); err != nil {
		return nil, err
	}
	if err := s.productSvc.categoryRepo.IncrProductCount(ctx, product.CategoryID, 1); err != nil {
		s.logger.Warn("分类计数递增失败，等定时任务校准",
			zap.Int64("category_id", product.CategoryID), zap.Error(err))
	}
	return product, nil
}

// ListByUser 当前商家的全部报价
func (s *OfferingService) ListByUser(ctx context.Context, userID int64) ([]model.VendorOffering, error) {
	store, err := s.resolveApprovedStore(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.offeringRepo.ListByStore(ctx, store.ID)
}

// resolveOwnOffering 取报价并校验归属本店
func (s *OfferingService) resolveOwnOffering(ctx context.Context, userID, offeringID int64) (*model.VendorOffering, error) {
	store, err := s.resolveApprovedStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	offering, err := s.offeringRepo.GetByID(ctx, offeringID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("offering", strconv.FormatInt(offeringID, 10))
		}
		return nil, err
	}
	if offering.StoreID != store.ID {
		// 别家的报价按不存在处理，不泄露报价归属
		return nil, errs.NotFoundf("offering", strconv.FormatInt(offeringID, 10))
	}
	return offering, nil
}

// Update 商家改价/改库存/上下架，零值字段不动
func (s *OfferingService) Update(ctx context.Context, userID, offeringID int64, req dto.OfferingUpdateReq) (*model.VendorOffering, error) {
	offering, err := s.resolveOwnOffering(ctx, userID, offeringID)
	if err != nil {
		return nil, err
	}

	if req.PriceAmount > 0 {
		offering.PriceAmount = req.PriceAmount
	}
	if req.StockQuantity != nil {
		offering.StockQuantity = *req.StockQuantity
	}
	if req.Condition != "" {
		offering.Condition = req.Condition
	}
	if req.IsActive != nil {
		offering.IsActive = *req.IsActive
	}

	if err := s.offeringRepo.Update(ctx, offering); err != nil {
		return nil, err
	}
	return offering, nil
}

// Delete 商家下架并移除报价，之后可重新挂接同一主商品
func (s *OfferingService) Delete(ctx context.Context, userID, offeringID int64) error {
	offering, err := s.resolveOwnOffering(ctx, userID, offeringID)
	if err != nil {
		return err
	}
	return s.offeringRepo.Delete(ctx, offering.ID)
}

func buildOffering(storeID, productID int64, req dto.VendorProductReq) *model.VendorOffering {
	currency := req.CurrencyCode
	if currency == "" {
		currency = "USD"
	}
	condition := req.Condition
	if condition == "" {
		condition = model.ConditionNew
	}
	return &model.VendorOffering{
		MasterProductID: productID,
		StoreID:         storeID,
		PriceAmount:     req.PriceAmount,
		CurrencyCode:    currency,
		StockQuantity:   req.StockQuantity,
		Condition:       condition,
		IsActive:        true,
	}
}
