package controller

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/internal/service"
)

// ProductController 管理端主商品档案
type ProductController struct {
	productSvc *service.ProductService
	aiSvc      *service.AIService
}

func NewProductController(productSvc *service.ProductService, aiSvc *service.AIService) *ProductController {
	return &ProductController{productSvc: productSvc, aiSvc: aiSvc}
}

// ListProducts 商品列表
// @Summary 商品列表
// @Description 分页查询主商品，支持分类/品牌/状态/关键词/店铺筛选
// @Tags Product (主商品)
// @Produce json
// @Param category_id query int false "分类ID"
// @Param brand_id query int false "品牌ID"
// @Param status query string false "状态 active/inactive/archived"
// @Param keyword query string false "名称关键词"
// @Param store_id query int false "只看该店铺有报价的商品"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ListResp "商品列表"
// @Router /api/products [get]
func (c *ProductController) ListProducts(ctx *gin.Context) {
	filter := repository.ProductFilter{
		Status:  ctx.Query("status"),
		Keyword: ctx.Query("keyword"),
	}
	filter.CategoryID, _ = strconv.ParseInt(ctx.Query("category_id"), 10, 64)
	filter.BrandID, _ = strconv.ParseInt(ctx.Query("brand_id"), 10, 64)
	filter.StoreID, _ = strconv.ParseInt(ctx.Query("store_id"), 10, 64)
	filter.Page, filter.PageSize = pageParams(ctx)

	products, total, err := c.productSvc.List(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}
	okList(ctx, products, total, filter.Page, filter.PageSize)
}

// GetProduct 商品详情
// @Summary 商品详情
// @Description 含属性值、变体值、媒体与报价
// @Tags Product (主商品)
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} dto.Resp "商品详情"
// @Failure 404 {object} dto.Resp "商品不存在"
// @Router /api/products/{id} [get]
func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	product, err := c.productSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, product)
}

// CreateProduct 创建主商品
// @Summary 创建主商品
// @Description 分类必须是叶子且必填属性/变体映射全部覆盖，否则整单拒绝
// @Tags Product (主商品)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProductCreateReq true "商品参数"
// @Success 200 {object} dto.Resp "新商品"
// @Failure 400 {object} dto.Resp "分类约束不满足"
// @Router /api/products [post]
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var req dto.ProductCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	product, err := c.productSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, product)
}

// UpdateProduct 编辑主商品
// @Summary 编辑主商品
// @Tags Product (主商品)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Param request body dto.ProductUpdateReq true "更新参数"
// @Success 200 {object} dto.Resp "更新后的商品"
// @Failure 404 {object} dto.Resp "商品不存在"
// @Router /api/products/{id} [put]
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	var req dto.ProductUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	product, err := c.productSvc.Update(ctx.Request.Context(), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, product)
}

// DeleteProduct 删除主商品
// @Summary 删除主商品
// @Tags Product (主商品)
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Success 200 {object} dto.Resp "删除成功"
// @Failure 404 {object} dto.Resp "商品不存在"
// @Router /api/products/{id} [delete]
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	if err := c.productSvc.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "product deleted")
}

// DeleteProducts 批量删除，请求体带 ids 列表
// @Summary 批量删除主商品
// @Tags Product (主商品)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.IDsReq true "商品ID列表"
// @Success 200 {object} dto.Resp "删除数量"
// @Router /api/products [delete]
func (c *ProductController) DeleteProducts(ctx *gin.Context) {
	var req dto.IDsReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	deleted, err := c.productSvc.DeleteBatch(ctx.Request.Context(), req.IDs)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, gin.H{"deleted": deleted})
}

// UploadMedia 上传商品媒体
// @Summary 上传商品媒体
// @Description multipart 上传，file 字段为图片，is_primary=true 时挤掉原主图
// @Tags Product (主商品)
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Param file formData file true "图片文件"
// @Param is_primary formData bool false "是否主图"
// @Success 200 {object} dto.Resp "媒体记录"
// @Failure 404 {object} dto.Resp "商品不存在"
// @Router /api/products/{id}/media [post]
func (c *ProductController) UploadMedia(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		badRequest(ctx, err)
		return
	}
	f, err := file.Open()
	if err != nil {
		fail(ctx, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		fail(ctx, err)
		return
	}

	isPrimary := ctx.PostForm("is_primary") == "true"
	media, err := c.productSvc.UploadMedia(ctx.Request.Context(), id, data, file.Filename, isPrimary)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, media)
}

// DeleteMedia 删除商品媒体
// @Summary 删除商品媒体
// @Tags Product (主商品)
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品ID"
// @Param media_id path int true "媒体ID"
// @Success 200 {object} dto.Resp "删除成功"
// @Failure 404 {object} dto.Resp "商品或媒体不存在"
// @Router /api/products/{id}/media/{media_id} [delete]
func (c *ProductController) DeleteMedia(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}
	mediaID, err := strconv.ParseInt(ctx.Param("media_id"), 10, 64)
	if err != nil || mediaID <= 0 {
		badRequest(ctx, errInvalidMediaID)
		return
	}

	if err := c.productSvc.DeleteMedia(ctx.Request.Context(), id, mediaID); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "media deleted")
}

var errInvalidMediaID = errors.New("invalid media id")

// GenerateCopy AI 生成商品文案
// @Summary AI 生成商品文案
// @Description 按商品名、分类、属性生成 about/features/标签建议
// @Tags Product (主商品)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AIDescribeReq true "文案参数"
// @Success 200 {object} dto.Resp "生成的文案"
// @Failure 400 {object} dto.Resp "AI 未配置"
// @Router /api/products/ai-describe [post]
func (c *ProductController) GenerateCopy(ctx *gin.Context) {
	var req dto.AIDescribeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	resp, err := c.aiSvc.GenerateCopy(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, resp)
}
