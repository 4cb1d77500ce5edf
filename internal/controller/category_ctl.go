package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/service"
)

// CategoryController 分类树管理
type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{categorySvc: categorySvc}
}

// ListCategories 分类列表
// @Summary 分类列表
// @Description 不带 parent_id 时返回整棵树的平铺列表
// @Tags Category (分类)
// @Produce json
// @Param parent_id query int false "只看某节点的直接子分类"
// @Success 200 {object} dto.Resp "分类列表"
// @Router /api/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	if parent := ctx.Query("parent_id"); parent != "" {
		parentID, err := strconv.ParseInt(parent, 10, 64)
		if err != nil {
			badRequest(ctx, err)
			return
		}
		categories, err := c.categorySvc.ListChildren(ctx.Request.Context(), parentID)
		if err != nil {
			fail(ctx, err)
			return
		}
		ok(ctx, categories)
		return
	}

	categories, err := c.categorySvc.ListAll(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, categories)
}

// GetCategory 分类详情
// @Summary 分类详情
// @Description 含属性/变体映射
// @Tags Category (分类)
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} dto.Resp "分类详情"
// @Failure 404 {object} dto.Resp "分类不存在"
// @Router /api/categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	category, err := c.categorySvc.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, category)
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags Category (分类)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CategoryReq true "分类参数"
// @Success 200 {object} dto.Resp "新分类"
// @Failure 409 {object} dto.Resp "名称已存在"
// @Router /api/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	category, err := c.categorySvc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, category)
}

// UpdateCategory 编辑分类
// @Summary 编辑分类
// @Tags Category (分类)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Param request body dto.CategoryReq true "更新参数"
// @Success 200 {object} dto.Resp "更新后的分类"
// @Failure 404 {object} dto.Resp "分类不存在"
// @Router /api/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	var req dto.CategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	category, err := c.categorySvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, category)
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Description 有子分类或仍有商品的分类拒绝删除
// @Tags Category (分类)
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Success 200 {object} dto.Resp "删除成功"
// @Failure 400 {object} dto.Resp "存在子分类或商品"
// @Router /api/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	if err := c.categorySvc.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "category deleted")
}

// SetCategoryParent 移动分类
// @Summary 移动分类
// @Description 挂到新父节点，自挂和挂到后代会被拒绝
// @Tags Category (分类)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Param request body dto.SetParentReq true "新父节点"
// @Success 200 {object} dto.Resp "更新后的分类"
// @Failure 400 {object} dto.Resp "会形成环"
// @Router /api/categories/{id}/parent [put]
func (c *CategoryController) SetCategoryParent(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	var req dto.SetParentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	category, err := c.categorySvc.SetParent(ctx.Request.Context(), id, req.ParentID)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, category)
}
