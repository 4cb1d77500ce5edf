package service

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/pkg/errs"
	"vendor_hub_v1_202608/pkg/utils"
)

// 基础目录实体的增删改查，规则一致：
// 名称唯一（Policy 是 名称+类型 唯一），删除前不存在引用校验，由数据库约束兜底

// ==================== Brand ====================

type BrandService struct {
	repo repository.BrandRepository
}

func NewBrandService(repo repository.BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

func (s *BrandService) Create(ctx context.Context, req dto.BrandReq) (*model.Brand, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflictf("brand %q already exists", req.Name)
	}

	status := req.Status
	if status == "" {
		status = "active"
	}
	brand := &model.Brand{
		Name:    req.Name,
		Slug:    utils.Slugify(req.Name),
		LogoURL: req.LogoURL,
		Status:  status,
	}
	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) Get(ctx context.Context, id int64) (*model.Brand, error) {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("brand", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) Update(ctx context.Context, id int64, req dto.BrandReq) (*model.Brand, error) {
	brand, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != brand.Name {
		exists, err := s.repo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Conflictf("brand %q already exists", req.Name)
		}
		brand.Name = req.Name
		brand.Slug = utils.Slugify(req.Name)
	}
	if req.LogoURL != "" {
		brand.LogoURL = req.LogoURL
	}
	if req.Status != "" {
		brand.Status = req.Status
	}
	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *BrandService) List(ctx context.Context, filter repository.PageFilter) ([]model.Brand, int64, error) {
	return s.repo.List(ctx, filter)
}

// ==================== Attribute ====================

type AttributeService struct {
	repo repository.AttributeRepository
}

func NewAttributeService(repo repository.AttributeRepository) *AttributeService {
	return &AttributeService{repo: repo}
}

func (s *AttributeService) Create(ctx context.Context, req dto.AttributeReq) (*model.Attribute, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflictf("attribute %q already exists", req.Name)
	}

	code := req.Code
	if code == "" {
		code = utils.Slugify(req.Name)
	}
	status := req.Status
	if status == "" {
		status = "active"
	}
	attr := &model.Attribute{Name: req.Name, Code: code, Status: status}
	if err := s.repo.Create(ctx, attr); err != nil {
		return nil, err
	}
	return attr, nil
}

func (s *AttributeService) Get(ctx context.Context, id int64) (*model.Attribute, error) {
	attr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("attribute", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return attr, nil
}

func (s *AttributeService) Update(ctx context.Context, id int64, req dto.AttributeReq) (*model.Attribute, error) {
	attr, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != attr.Name {
		exists, err := s.repo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Conflictf("attribute %q already exists", req.Name)
		}
		attr.Name = req.Name
	}
	if req.Code != "" {
		attr.Code = req.Code
	}
	if req.Status != "" {
		attr.Status = req.Status
	}
	if err := s.repo.Update(ctx, attr); err != nil {
		return nil, err
	}
	return attr, nil
}

func (s *AttributeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *AttributeService) List(ctx context.Context, filter repository.PageFilter) ([]model.Attribute, int64, error) {
	return s.repo.List(ctx, filter)
}

// ==================== Variant ====================

type VariantService struct {
	repo repository.VariantRepository
}

func NewVariantService(repo repository.VariantRepository) *VariantService {
	return &VariantService{repo: repo}
}

func (s *VariantService) Create(ctx context.Context, req dto.VariantReq) (*model.Variant, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflictf("variant %q already exists", req.Name)
	}

	code := req.Code
	if code == "" {
		code = utils.Slugify(req.Name)
	}
	status := req.Status
	if status == "" {
		status = "active"
	}
	variant := &model.Variant{Name: req.Name, Code: code, Status: status}
	if err := s.repo.Create(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (s *VariantService) Get(ctx context.Context, id int64) (*model.Variant, error) {
	variant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("variant", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return variant, nil
}

func (s *VariantService) Update(ctx context.Context, id int64, req dto.VariantReq) (*model.Variant, error) {
	variant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != variant.Name {
		exists, err := s.repo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Conflictf("variant %q already exists", req.Name)
		}
		variant.Name = req.Name
	}
	if req.Code != "" {
		variant.Code = req.Code
	}
	if req.Status != "" {
		variant.Status = req.Status
	}
	if err := s.repo.Update(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (s *VariantService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *VariantService) List(ctx context.Context, filter repository.PageFilter) ([]model.Variant, int64, error) {
	return s.repo.List(ctx, filter)
}

// ==================== Tag ====================

type TagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) Create(ctx context.Context, req dto.TagReq) (*model.Tag, error) {
	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflictf("tag %q already exists", req.Name)
	}

	tag := &model.Tag{Name: req.Name, Slug: utils.Slugify(req.Name)}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Get(ctx context.Context, id int64) (*model.Tag, error) {
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("tag", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Update(ctx context.Context, id int64, req dto.TagReq) (*model.Tag, error) {
	tag, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != tag.Name {
		exists, err := s.repo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Conflictf("tag %q already exists", req.Name)
		}
		tag.Name = req.Name
		tag.Slug = utils.Slugify(req.Name)
	}
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TagService) List(ctx context.Context, filter repository.PageFilter) ([]model.Tag, int64, error) {
	return s.repo.List(ctx, filter)
}

// ==================== Policy ====================

type PolicyService struct {
	repo repository.PolicyRepository
}

func NewPolicyService(repo repository.PolicyRepository) *PolicyService {
	return &PolicyService{repo: repo}
}

func (s *PolicyService) Create(ctx context.Context, req dto.PolicyReq) (*model.Policy, error) {
	status := req.Status
	if status == "" {
		status = "active"
	}
	policy := &model.Policy{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Status:      status,
	}
	// 名称+类型 联合唯一由数据库约束保证
	if err := s.repo.Create(ctx, policy); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflictf("policy %q of type %q already exists", req.Name, req.Type)
		}
		return nil, err
	}
	return policy, nil
}

func (s *PolicyService) Get(ctx context.Context, id int64) (*model.Policy, error) {
	policy, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("policy", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return policy, nil
}

func (s *PolicyService) Update(ctx context.Context, id int64, req dto.PolicyReq) (*model.Policy, error) {
	policy, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		policy.Name = req.Name
	}
	if req.Type != "" {
		policy.Type = req.Type
	}
	if req.Description != "" {
		policy.Description = req.Description
	}
	if req.Status != "" {
		policy.Status = req.Status
	}
	if err := s.repo.Update(ctx, policy); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflictf("policy %q of type %q already exists", policy.Name, policy.Type)
		}
		return nil, err
	}
	return policy, nil
}

func (s *PolicyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *PolicyService) List(ctx context.Context, filter repository.PageFilter) ([]model.Policy, int64, error) {
	return s.repo.List(ctx, filter)
}
