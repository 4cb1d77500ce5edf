package controller

import (
	"github.com/gin-gonic/gin"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/internal/service"
)

// CatalogController 基础目录实体（品牌/属性/变体/标签/政策）的增删改查
// 五套路由行为一致，集中在一个控制器里
type CatalogController struct {
	brandSvc     *service.BrandService
	attributeSvc *service.AttributeService
	variantSvc   *service.VariantService
	tagSvc       *service.TagService
	policySvc    *service.PolicyService
}

func NewCatalogController(
	brandSvc *service.BrandService,
	attributeSvc *service.AttributeService,
	variantSvc *service.VariantService,
	tagSvc *service.TagService,
	policySvc *service.PolicyService,
) *CatalogController {
	return &CatalogController{
		brandSvc:     brandSvc,
		attributeSvc: attributeSvc,
		variantSvc:   variantSvc,
		tagSvc:       tagSvc,
		policySvc:    policySvc,
	}
}

func catalogFilter(ctx *gin.Context) repository.PageFilter {
	filter := repository.PageFilter{
		Keyword: ctx.Query("keyword"),
		Status:  ctx.Query("status"),
		Type:    ctx.Query("type"),
	}
	filter.Page, filter.PageSize = pageParams(ctx)
	return filter
}

// ==================== Brand ====================

// ListBrands 品牌列表
// @Summary 品牌列表
// @Tags Catalog (目录)
// @Produce json
// @Success 200 {object} dto.ListResp
// @Router /api/brands [get]
func (c *CatalogController) ListBrands(ctx *gin.Context) {
	filter := catalogFilter(ctx)
	brands, total, err := c.brandSvc.List(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}
	okList(ctx, brands, total, filter.Page, filter.PageSize)
}

// CreateBrand 创建品牌
// @Summary 创建品牌
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BrandReq true "品牌参数"
// @Success 200 {object} dto.Resp
// @Failure 409 {object} dto.Resp "名称已存在"
// @Router /api/brands [post]
func (c *CatalogController) CreateBrand(ctx *gin.Context) {
	var req dto.BrandReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	brand, err := c.brandSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, brand)
}

// UpdateBrand 编辑品牌
// @Summary 编辑品牌
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "品牌ID"
// @Param request body dto.BrandReq true "更新参数"
// @Success 200 {object} dto.Resp
// @Router /api/brands/{id} [put]
func (c *CatalogController) UpdateBrand(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	var req dto.BrandReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	brand, err := c.brandSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, brand)
}

// DeleteBrand 删除品牌
// @Summary 删除品牌
// @Tags Catalog (目录)
// @Produce json
// @Security BearerAuth
// @Param id path int true "品牌ID"
// @Success 200 {object} dto.Resp
// @Router /api/brands/{id} [delete]
func (c *CatalogController) DeleteBrand(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	if err := c.brandSvc.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "brand deleted")
}

// ==================== Attribute ====================

// ListAttributes 属性列表
// @Summary 属性列表
// @Tags Catalog (目录)
// @Produce json
// @Success 200 {object} dto.ListResp
// @Router /api/attributes [get]
func (c *CatalogController) ListAttributes(ctx *gin.Context) {
	filter := catalogFilter(ctx)
	attrs, total, err := c.attributeSvc.List(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}
	okList(ctx, attrs, total, filter.Page, filter.PageSize)
}

// CreateAttribute 创建属性
// @Summary 创建属性
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AttributeReq true "属性参数"
// @Success 200 {object} dto.Resp
// @Failure 409 {object} dto.Resp "名称已存在"
// @Router /api/attributes [post]
func (c *CatalogController) CreateAttribute(ctx *gin.Context) {
	var req dto.AttributeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	attr, err := c.attributeSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, attr)
}

// UpdateAttribute 编辑属性
// @Summary 编辑属性
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "属性ID"
// @Param request body dto.AttributeReq true "更新参数"
// @Success 200 {object} dto.Resp
// @Router /api/attributes/{id} [put]
func (c *CatalogController) UpdateAttribute(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	var req dto.AttributeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	attr, err := c.attributeSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, attr)
}

// DeleteAttribute 删除属性
// @Summary 删除属性
// @Tags Catalog (目录)
// @Produce json
// @Security BearerAuth
// @Param id path int true "属性ID"
// @Success 200 {object} dto.Resp
// @Router /api/attributes/{id} [delete]
func (c *CatalogController) DeleteAttribute(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	if err := c.attributeSvc.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "attribute deleted")
}

// ==================== Variant ====================

// ListVariants 变体维度列表
// @Summary 变体维度列表
// @Tags Catalog (目录)
// @Produce json
// @Success 200 {object} dto.ListResp
// @Router /api/variants [get]
func (c *CatalogController) ListVariants(ctx *gin.Context) {
	filter := catalogFilter(ctx)
	variants, total, err := c.variantSvc.List(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}
	okList(ctx, variants, total, filter.Page, filter.PageSize)
}

// CreateVariant 创建变体维度
// @Summary 创建变体维度
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VariantReq true "变体参数"
// @Success 200 {object} dto.Resp
// @Failure 409 {object} dto.Resp "名称已存在"
// @Router /api/variants [post]
func (c *CatalogController) CreateVariant(ctx *gin.Context) {
	var req dto.VariantReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	variant, err := c.variantSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, variant)
}

// UpdateVariant 编辑变体维度
// @Summary 编辑变体维度
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "变体ID"
// @Param request body dto.VariantReq true "更新参数"
// @Success 200 {object} dto.Resp
// @Router /api/variants/{id} [put]
func (c *CatalogController) UpdateVariant(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	var req dto.VariantReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	variant, err := c.variantSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, variant)
}

// DeleteVariant 删除变体维度
// @Summary 删除变体维度
// @Tags Catalog (目录)
// @Produce json
// @Security BearerAuth
// @Param id path int true "变体ID"
// @Success 200 {object} dto.Resp
// @Router /api/variants/{id} [delete]
func (c *CatalogController) DeleteVariant(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	if err := c.variantSvc.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "variant deleted")
}

// ==================== Tag ====================

// ListTags 标签列表
// @Summary 标签列表
// @Tags Catalog (目录)
// @Produce json
// @Success 200 {object} dto.ListResp
// @Router /api/tags [get]
func (c *CatalogController) ListTags(ctx *gin.Context) {
	filter := catalogFilter(ctx)
	tags, total, err := c.tagSvc.List(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}
	okList(ctx, tags, total, filter.Page, filter.PageSize)
}

// CreateTag 创建标签
// @Summary 创建标签
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TagReq true "标签参数"
// @Success 200 {object} dto.Resp
// @Failure 409 {object} dto.Resp "名称已存在"
// @Router /api/tags [post]
func (c *CatalogController) CreateTag(ctx *gin.Context) {
	var req dto.TagReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	tag, err := c.tagSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, tag)
}

// UpdateTag 编辑标签
// @Summary 编辑标签
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Param request body dto.TagReq true "更新参数"
// @Success 200 {object} dto.Resp
// @Router /api/tags/{id} [put]
func (c *CatalogController) UpdateTag(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	var req dto.TagReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	tag, err := c.tagSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, tag)
}

// DeleteTag 删除标签
// @Summary 删除标签
// @Tags Catalog (目录)
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Success 200 {object} dto.Resp
// @Router /api/tags/{id} [delete]
func (c *CatalogController) DeleteTag(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	if err := c.tagSvc.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "tag deleted")
}

// ==================== Policy ====================

// ListPolicies 政策列表
// @Summary 政策列表
// @Tags Catalog (目录)
// @Produce json
// @Param type query string false "warranty/return/refund"
// @Success 200 {object} dto.ListResp
// @Router /api/policies [get]
func (c *CatalogController) ListPolicies(ctx *gin.Context) {
	filter := catalogFilter(ctx)
	policies, total, err := c.policySvc.List(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}
	okList(ctx, policies, total, filter.Page, filter.PageSize)
}

// CreatePolicy 创建政策
// @Summary 创建政策
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PolicyReq true "政策参数"
// @Success 200 {object} dto.Resp
// @Failure 409 {object} dto.Resp "同类型下名称已存在"
// @Router /api/policies [post]
func (c *CatalogController) CreatePolicy(ctx *gin.Context) {
	var req dto.PolicyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	policy, err := c.policySvc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, policy)
}

// UpdatePolicy 编辑政策
// @Summary 编辑政策
// @Tags Catalog (目录)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "政策ID"
// @Param request body dto.PolicyReq true "更新参数"
// @Success 200 {object} dto.Resp
// @Router /api/policies/{id} [put]
func (c *CatalogController) UpdatePolicy(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	var req dto.PolicyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	policy, err := c.policySvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, policy)
}

// DeletePolicy 删除政策
// @Summary 删除政策
// @Tags Catalog (目录)
// @Produce json
// @Security BearerAuth
// @Param id path int true "政策ID"
// @Success 200 {object} dto.Resp
// @Router /api/policies/{id} [delete]
func (c *CatalogController) DeletePolicy(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	if err := c.policySvc.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "policy deleted")
}
