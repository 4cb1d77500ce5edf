package controller

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/middleware"
	"vendor_hub_v1_202608/internal/service"
)

// VendorController 商家侧：入驻流程 + 仪表盘 + 商品提交
type VendorController struct {
	registrationSvc *service.RegistrationService
	vendorSvc       *service.VendorService
	offeringSvc     *service.OfferingService
}

func NewVendorController(
	registrationSvc *service.RegistrationService,
	vendorSvc *service.VendorService,
	offeringSvc *service.OfferingService,
) *VendorController {
	return &VendorController{
		registrationSvc: registrationSvc,
		vendorSvc:       vendorSvc,
		offeringSvc:     offeringSvc,
	}
}

// GetRegistration 当前入驻进度
// @Summary 查询入驻进度
// @Description 当前用户的店铺与注册进度，没有店铺返回空 data
// @Tags Vendor (商家)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Resp "店铺信息"
// @Router /api/vendor/register [get]
func (c *VendorController) GetRegistration(ctx *gin.Context) {
	store, err := c.registrationSvc.GetCurrent(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	if store == nil {
		ok(ctx, nil)
		return
	}
	resp := dto.ToStoreResp(store)
	ok(ctx, resp)
}

// SubmitRegistrationStep 提交某一步入驻资料
// @Summary 提交入驻步骤
// @Description 分步提交入驻资料，第 5 步提交后进入待审核
// @Tags Vendor (商家)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterStepReq true "步骤与载荷"
// @Success 200 {object} dto.Resp "更新后的店铺"
// @Failure 400 {object} dto.Resp "步骤校验失败"
// @Failure 409 {object} dto.Resp "店铺名已占用"
// @Router /api/vendor/register [post]
func (c *VendorController) SubmitRegistrationStep(ctx *gin.Context) {
	var req dto.RegisterStepReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	store, err := c.registrationSvc.SubmitStep(ctx.Request.Context(), middleware.GetUserID(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	resp := dto.ToStoreResp(store)
	ok(ctx, resp)
}

// Dashboard 商家仪表盘
// @Summary 商家仪表盘
// @Description 报价总数、在售数、待审核新品数等聚合
// @Tags Vendor (商家)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Resp "仪表盘数据"
// @Failure 404 {object} dto.Resp "尚未开店"
// @Router /api/vendor/dashboard [get]
func (c *VendorController) Dashboard(ctx *gin.Context) {
	resp, err := c.vendorSvc.Dashboard(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, resp)
}

// SubmitProduct 商家提交商品
// @Summary 商家提交商品
// @Description master_product_id > 0 时挂接已有主商品，否则提交新品请求（落为 inactive 待审核）。
// @Description 可选 multipart 缩略图字段 thumbnail。
// @Tags Vendor (商家)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VendorProductReq true "报价/新品参数"
// @Success 200 {object} dto.Resp "主商品"
// @Failure 404 {object} dto.Resp "主商品不存在"
// @Failure 409 {object} dto.Resp "重复挂接"
// @Router /api/vendor/products [post]
func (c *VendorController) SubmitProduct(ctx *gin.Context) {
	var req dto.VendorProductReq
	var thumbnail []byte
	var thumbnailName string

	// multipart 时载荷在 payload 字段里，缩略图在 thumbnail 文件里
	if isMultipart(ctx) {
		payload := ctx.PostForm("payload")
		if payload == "" {
			badRequest(ctx, errMissingPayload)
			return
		}
		if err := bindJSONString(payload, &req); err != nil {
			badRequest(ctx, err)
			return
		}
		if file, err := ctx.FormFile("thumbnail"); err == nil {
			f, err := file.Open()
			if err != nil {
				fail(ctx, err)
				return
			}
			defer f.Close()
			thumbnail, err = io.ReadAll(f)
			if err != nil {
				fail(ctx, err)
				return
			}
			thumbnailName = file.Filename
		}
	} else {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, err)
			return
		}
	}

	product, err := c.offeringSvc.Submit(ctx.Request.Context(), middleware.GetUserID(ctx), req, thumbnail, thumbnailName)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, product)
}

// UpdateOffering 商家编辑自己的报价
// @Summary 编辑报价
// @Description 改价/改库存/上下架，零值字段不动；只能操作本店报价
// @Tags Vendor (商家)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "报价ID"
// @Param request body dto.OfferingUpdateReq true "报价字段"
// @Success 200 {object} dto.Resp "更新后的报价"
// @Failure 404 {object} dto.Resp "报价不存在或不属于本店"
// @Router /api/vendor/offerings/{id} [patch]
func (c *VendorController) UpdateOffering(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	var req dto.OfferingUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	offering, err := c.offeringSvc.Update(ctx.Request.Context(), middleware.GetUserID(ctx), id, req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, offering)
}

// DeleteOffering 商家移除自己的报价
// @Summary 删除报价
// @Description 移除后可重新挂接同一主商品
// @Tags Vendor (商家)
// @Produce json
// @Security BearerAuth
// @Param id path int true "报价ID"
// @Success 200 {object} dto.Resp "删除成功"
// @Failure 404 {object} dto.Resp "报价不存在或不属于本店"
// @Router /api/vendor/offerings/{id} [delete]
func (c *VendorController) DeleteOffering(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	if err := c.offeringSvc.Delete(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "offering deleted")
}

// ListOfferings 当前商家的报价列表
// @Summary 商家报价列表
// @Tags Vendor (商家)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Resp "报价列表"
// @Router /api/vendor/offerings [get]
func (c *VendorController) ListOfferings(ctx *gin.Context) {
	offerings, err := c.offeringSvc.ListByUser(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, offerings)
}

func isMultipart(ctx *gin.Context) bool {
	return ctx.ContentType() == "multipart/form-data"
}

var errMissingPayload = errors.New("multipart requests require a payload field")

func bindJSONString(s string, out interface{}) error {
	return json.Unmarshal([]byte(s), out)
}
