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
	"vendor_hub_v1_202608/pkg/utils"
)

// CategoryService 分类树维护
// 树完整性规则：带子分类或挂着商品的分类不能删；移动不能成环
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	logger       *zap.Logger
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// ==================== 查询 ====================

func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByIDWithMappings(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("category", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListAll(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.ListAll(ctx)
}

func (s *CategoryService) ListChildren(ctx context.Context, parentID int64) ([]model.Category, error) {
	return s.categoryRepo.ListChildren(ctx, parentID)
}

// ==================== 创建 / 编辑 ====================

// Create 新建分类，父分类自动变非叶子
func (s *CategoryService) Create(ctx context.Context, req dto.CategoryReq) (*model.Category, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflictf("category %q already exists", req.Name)
	}

	if req.ParentID > 0 {
		if _, err := s.categoryRepo.GetByID(ctx, req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Validationf("parent category does not exist")
			}
			return nil, err
		}
	}

	isLeaf := true
	if req.IsLeaf != nil {
		isLeaf = *req.IsLeaf
	}
	status := req.Status
	if status == "" {
		status = "active"
	}

	category := &model.Category{
		Name:     req.Name,
		Slug:     utils.Slugify(req.Name),
		ParentID: req.ParentID,
		IsLeaf:   isLeaf,
		Status:   status,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	if req.ParentID > 0 {
		if err := s.categoryRepo.UpdateFields(ctx, req.ParentID, map[string]interface{}{"is_leaf": false}); err != nil {
			s.logger.Warn("父分类叶子标记更新失败",
				zap.Int64("parent_id", req.ParentID), zap.Error(err))
		}
	}

	if err := s.saveMappings(ctx, category.ID, req); err != nil {
		return nil, err
	}
	return s.Get(ctx, category.ID)
}

// Update 编辑分类及其映射
func (s *CategoryService) Update(ctx context.Context, id int64, req dto.CategoryReq) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("category", strconv.FormatInt(id, 10))
		}
		return nil, err
	}

	if req.Name != "" && req.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Conflictf("category %q already exists", req.Name)
		}
		category.Name = req.Name
		category.Slug = utils.Slugify(req.Name)
	}
	if req.Status != "" {
		category.Status = req.Status
	}
	if req.IsLeaf != nil {
		category.IsLeaf = *req.IsLeaf
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	if err := s.saveMappings(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CategoryService) saveMappings(ctx context.Context, categoryID int64, req dto.CategoryReq) error {
	if req.AttributeMappings != nil {
		mappings := make([]model.CategoryAttributeMapping, 0, len(req.AttributeMappings))
		for _, m := range req.AttributeMappings {
			mappings = append(mappings, model.CategoryAttributeMapping{
				AttributeID: m.RefID,
				IsMandatory: m.IsMandatory,
			})
		}
		if err := s.categoryRepo.ReplaceAttributeMappings(ctx, categoryID, mappings); err != nil {
			return err
		}
	}
	if req.VariantMappings != nil {
		mappings := make([]model.CategoryVariantMapping, 0, len(req.VariantMappings))
		for _, m := range req.VariantMappings {
			mappings = append(mappings, model.CategoryVariantMapping{
				VariantID:   m.RefID,
				IsMandatory: m.IsMandatory,
			})
		}
		if err := s.categoryRepo.ReplaceVariantMappings(ctx, categoryID, mappings); err != nil {
			return err
		}
	}
	return nil
}

// ==================== 删除 ====================

// Delete 删除分类
// 有子分类或仍有商品（冗余计数和实时计数都查）一律拒绝
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFoundf("category", strconv.FormatInt(id, 10))
		}
		return err
	}

	children, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return errs.Validationf("cannot delete a category that has child categories")
	}

	if category.ProductCount > 0 {
		return errs.Validationf("cannot delete a category that has products")
	}
	// 冗余计数可能漂移，再查一次实表
	live, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if live > 0 {
		return errs.Validationf("cannot delete a category that has products")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.restoreLeafFlag(ctx, category.ParentID)
	return nil
}

// ==================== 移动 ====================

// SetParent 移动分类到新父节点
// 拒绝自挂和挂到自己的后代（成环）
func (s *CategoryService) SetParent(ctx context.Context, id int64, newParentID int64) (*model.Category, error) {
	if id == newParentID {
		return nil, errs.Validationf("a category cannot be its own parent")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("category", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	if category.ParentID == newParentID {
		return category, nil
	}

	if newParentID > 0 {
		if _, err := s.categoryRepo.GetByID(ctx, newParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Validationf("parent category does not exist")
			}
			return nil, err
		}
		descendant, err := s.isDescendant(ctx, id, newParentID)
		if err != nil {
			return nil, err
		}
		if descendant {
			return nil, errs.Validationf("cannot move a category under its own descendant")
		}
	}

	oldParentID := category.ParentID
	if err := s.categoryRepo.UpdateFields(ctx, id, map[string]interface{}{"parent_id": newParentID}); err != nil {
		return nil, err
	}

	if newParentID > 0 {
		if err := s.categoryRepo.UpdateFields(ctx, newParentID, map[string]interface{}{"is_leaf": false}); err != nil {
			s.logger.Warn("新父分类叶子标记更新失败",
				zap.Int64("parent_id", newParentID), zap.Error(err))
		}
	}
	s.restoreLeafFlag(ctx, oldParentID)

	category.ParentID = newParentID
	return category, nil
}

// isDescendant candidate 是否在 rootID 的子树里
func (s *CategoryService) isDescendant(ctx context.Context, rootID, candidate int64) (bool, error) {
	queue := []int64{rootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := s.categoryRepo.ListChildren(ctx, current)
		if err != nil {
			return false, err
		}
		for _, c := range children {
			if c.ID == candidate {
				return true, nil
			}
			queue = append(queue, c.ID)
		}
	}
	return false, nil
}

// restoreLeafFlag 旧父节点没有其它孩子了就恢复成叶子
func (s *CategoryService) restoreLeafFlag(ctx context.Context, parentID int64) {
	if parentID <= 0 {
		return
	}
	count, err := s.categoryRepo.CountChildren(ctx, parentID)
	if err != nil {
		s.logger.Warn("统计父分类子节点失败", zap.Int64("parent_id", parentID), zap.Error(err))
		return
	}
	if count == 0 {
		if err := s.categoryRepo.UpdateFields(ctx, parentID, map[string]interface{}{"is_leaf": true}); err != nil {
			s.logger.Warn("恢复父分类叶子标记失败", zap.Int64("parent_id", parentID), zap.Error(err))
		}
	}
}
