package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/config"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/pkg/errs"
	"vendor_hub_v1_202608/pkg/utils"
)

// ProductService 主商品档案维护
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	seqRepo      repository.SequenceRepository
	storage      StorageProvider
	catalogCfg   config.CatalogConfig
	logger       *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	seqRepo repository.SequenceRepository,
	storage StorageProvider,
	catalogCfg config.CatalogConfig,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		seqRepo:      seqRepo,
		storage:      storage,
		catalogCfg:   catalogCfg,
		logger:       logger,
	}
}

// ==================== 查询 ====================

func (s *ProductService) Get(ctx context.Context, id int64) (*model.MasterProduct, error) {
	product, err := s.productRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("master product", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]model.MasterProduct, int64, error) {
	return s.productRepo.List(ctx, filter)
}

// ==================== 创建 ====================

// Create 管理员建品
// 校验通过前不写任何行；UPID 从序列表取号
func (s *ProductService) Create(ctx context.Context, req dto.ProductCreateReq) (*model.MasterProduct, error) {
	attrValues := toAttributeValues(req.AttributeValues)
	variantValues := toVariantValues(req.VariantValues)

	if err := s.validateCategorySelections(ctx, req.CategoryID, attrValues, variantValues); err != nil {
		return nil, err
	}

	product, err := s.buildProduct(ctx, buildProductInput{
		Name:             req.Name,
		CategoryID:       req.CategoryID,
		BrandID:          req.BrandID,
		Status:           req.Status,
		Identifiers:      req.Identifiers,
		About:            req.About,
		Features:         req.Features,
		WarrantyPolicyID: req.WarrantyPolicyID,
		ReturnPolicyID:   req.ReturnPolicyID,
		RefundPolicyID:   req.RefundPolicyID,
		SearchTags:       req.SearchTags,
		AttributeValues:  attrValues,
		VariantValues:    variantValues,
	})
	if err != nil {
		return nil, err
	}

	for _, m := range req.Media {
		product.Media = append(product.Media, model.ProductMedia{
			URL:       m.URL,
			IsPrimary: m.IsPrimary,
			SortOrder: m.SortOrder,
		})
	}
	normalizePrimaryMedia(product.Media)

	if err := s.productRepo.CreateWithChildren(ctx, product); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.IncrProductCount(ctx, product.CategoryID, 1); err != nil {
		s.logger.Warn("分类计数递增失败，等定时任务校准",
			zap.Int64("category_id", product.CategoryID), zap.Error(err))
	}
	return product, nil
}

// buildProductInput 建品参数，管理端和商家新品请求共用
type buildProductInput struct {
	Name             string
	CategoryID       int64
	BrandID          int64
	Status           string
	Identifiers      map[string]string
	About            string
	Features         string
	WarrantyPolicyID int64
	ReturnPolicyID   int64
	RefundPolicyID   int64
	SearchTags       []string
	AttributeValues  []model.ProductAttributeValue
	VariantValues    []model.ProductVariantValue
}

// buildProduct 组装未落库的 MasterProduct（取号、slug 防撞）
func (s *ProductService) buildProduct(ctx context.Context, in buildProductInput) (*model.MasterProduct, error) {
	seq, err := s.seqRepo.Next(ctx, model.SequenceProductCode)
	if err != nil {
		return nil, err
	}

	slug := utils.Slugify(in.Name)
	exists, err := s.productRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		slug = utils.SlugWithTimestamp(slug)
	}

	status := in.Status
	if status == "" {
		status = model.ProductStatusActive
	}

	var identifiers datatypes.JSON
	if len(in.Identifiers) > 0 {
		raw, err := json.Marshal(in.Identifiers)
		if err != nil {
			return nil, err
		}
		identifiers = datatypes.JSON(raw)
	}

	return &model.MasterProduct{
		MasterProductCode: utils.FormatProductCode(seq),
		Name:              in.Name,
		Slug:              slug,
		CategoryID:        in.CategoryID,
		BrandID:           in.BrandID,
		Status:            status,
		Identifiers:       identifiers,
		About:             in.About,
		Features:          in.Features,
		WarrantyPolicyID:  in.WarrantyPolicyID,
		ReturnPolicyID:    in.ReturnPolicyID,
		RefundPolicyID:    in.RefundPolicyID,
		SearchTags:        pq.StringArray(in.SearchTags),
		AttributeValues:   in.AttributeValues,
		VariantValues:     in.VariantValues,
	}, nil
}

// ==================== 更新 / 删除 ====================

// Update 编辑主商品，零值字段不动
func (s *ProductService) Update(ctx context.Context, id int64, req dto.ProductUpdateReq) (*model.MasterProduct, error) {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("master product", strconv.FormatInt(id, 10))
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.BrandID > 0 {
		fields["brand_id"] = req.BrandID
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}
	if req.About != "" {
		fields["about"] = req.About
	}
	if req.Features != "" {
		fields["features"] = req.Features
	}
	if req.WarrantyPolicyID > 0 {
		fields["warranty_policy_id"] = req.WarrantyPolicyID
	}
	if req.ReturnPolicyID > 0 {
		fields["return_policy_id"] = req.ReturnPolicyID
	}
	if req.RefundPolicyID > 0 {
		fields["refund_policy_id"] = req.RefundPolicyID
	}
	if len(req.Identifiers) > 0 {
		identifiers, err := json.Marshal(req.Identifiers)
		if err != nil {
			return nil, err
		}
		fields["identifiers"] = datatypes.JSON(identifiers)
	}
	if len(req.SearchTags) > 0 {
		fields["search_tags"] = pq.StringArray(req.SearchTags)
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Delete 删除主商品，外部媒体清理失败只记日志
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFoundf("master product", strconv.FormatInt(id, 10))
		}
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.categoryRepo.IncrProductCount(ctx, product.CategoryID, -1); err != nil {
		s.logger.Warn("分类计数递减失败，等定时任务校准",
			zap.Int64("category_id", product.CategoryID), zap.Error(err))
	}

	s.cleanupMedia(ctx, product.Media)
	return nil
}

// DeleteBatch 批量删除，返回实际删除数
func (s *ProductService) DeleteBatch(ctx context.Context, ids []int64) (int64, error) {
	var deleted int64
	for _, id := range ids {
		err := s.Delete(ctx, id)
		if err != nil {
			var nf *errs.NotFound
			if errors.As(err, &nf) {
				continue
			}
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (s *ProductService) cleanupMedia(ctx context.Context, media []model.ProductMedia) {
	if s.storage == nil {
		return
	}
	for _, m := range media {
		if err := s.storage.Delete(ctx, m.URL); err != nil {
			s.logger.Warn("外部媒体删除失败，保留孤儿资源",
				zap.String("url", m.URL), zap.Error(err))
		}
	}
}

// ==================== 媒体 ====================

// UploadMedia 上传一张商品图并挂到商品上
func (s *ProductService) UploadMedia(ctx context.Context, productID int64, data []byte, filename string, isPrimary bool) (*model.ProductMedia, error) {
	if s.storage == nil {
		return nil, errs.Validationf("media storage is not configured")
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("master product", strconv.FormatInt(productID, 10))
		}
		return nil, err
	}

	url, err := s.storage.Upload(ctx, data, filename, "")
	if err != nil {
		return nil, err
	}

	if isPrimary {
		if err := s.productRepo.ClearPrimaryMedia(ctx, productID); err != nil {
			return nil, err
		}
	}
	media := &model.ProductMedia{
		ProductID: productID,
		URL:       url,
		IsPrimary: isPrimary,
	}
	if err := s.productRepo.AddMedia(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// DeleteMedia 摘掉一张商品图，外部资源删除失败只记日志
func (s *ProductService) DeleteMedia(ctx context.Context, productID, mediaID int64) error {
	product, err := s.productRepo.GetByIDWithRelations(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFoundf("master product", strconv.FormatInt(productID, 10))
		}
		return err
	}

	var target *model.ProductMedia
	for i := range product.Media {
		if product.Media[i].ID == mediaID {
			target = &product.Media[i]
			break
		}
	}
	if target == nil {
		return errs.NotFoundf("product media", strconv.FormatInt(mediaID, 10))
	}

	if err := s.productRepo.DeleteMedia(ctx, productID, mediaID); err != nil {
		return err
	}
	s.cleanupMedia(ctx, []model.ProductMedia{*target})
	return nil
}

// ==================== 分类约束校验 ====================

// validateCategorySelections 建品前的分类约束
// 1. 分类必须存在且是叶子
// 2. 分类所有必填属性/变体映射必须被提交值覆盖
// 报错是否点名缺失项由配置决定
func (s *ProductService) validateCategorySelections(
	ctx context.Context,
	categoryID int64,
	attrValues []model.ProductAttributeValue,
	variantValues []model.ProductVariantValue,
) error {
	category, err := s.categoryRepo.GetByIDWithMappings(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Validationf("category does not exist")
		}
		return err
	}
	if !category.IsLeaf {
		return errs.Validationf("products can only be created under a leaf category")
	}

	submittedAttrs := map[int64]bool{}
	for _, v := range attrValues {
		submittedAttrs[v.AttributeID] = true
	}
	for _, m := range category.AttributeMappings {
		if m.IsMandatory && !submittedAttrs[m.AttributeID] {
			if s.catalogCfg.ExposeMissingMapping {
				name := strconv.FormatInt(m.AttributeID, 10)
				if m.Attribute != nil {
					name = m.Attribute.Name
				}
				return errs.Validationf("missing mandatory attribute %q", name)
			}
			return errs.Validationf("missing mandatory attribute values for this category")
		}
	}

	submittedVariants := map[int64]bool{}
	for _, v := range variantValues {
		submittedVariants[v.VariantID] = true
	}
	for _, m := range category.VariantMappings {
		if m.IsMandatory && !submittedVariants[m.VariantID] {
			if s.catalogCfg.ExposeMissingMapping {
				name := strconv.FormatInt(m.VariantID, 10)
				if m.Variant != nil {
					name = m.Variant.Name
				}
				return errs.Validationf("missing mandatory variant %q", name)
			}
			return errs.Validationf("missing mandatory variant values for this category")
		}
	}

	return nil
}

// ==================== 辅助转换 ====================

func toAttributeValues(reqs []dto.AttributeValueReq) []model.ProductAttributeValue {
	values := make([]model.ProductAttributeValue, 0, len(reqs))
	for _, r := range reqs {
		values = append(values, model.ProductAttributeValue{
			AttributeID: r.AttributeID,
			Value:       r.Value,
		})
	}
	return values
}

func toVariantValues(reqs []dto.VariantValueReq) []model.ProductVariantValue {
	values := make([]model.ProductVariantValue, 0, len(reqs))
	for _, r := range reqs {
		values = append(values, model.ProductVariantValue{
			VariantID: r.VariantID,
			Value:     r.Value,
		})
	}
	return values
}

// normalizePrimaryMedia 保证至多一条主图：第一条标了主图的生效，其余清掉；
// 都没标时第一条兜底为主图
func normalizePrimaryMedia(media []model.ProductMedia) {
	if len(media) == 0 {
		return
	}
	found := false
	for i := range media {
		if media[i].IsPrimary {
			if found {
				media[i].IsPrimary = false
			}
			found = true
		}
	}
	if !found {
		media[0].IsPrimary = true
	}
}
