package controller

import (
	"github.com/gin-gonic/gin"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/internal/service"
)

// AdminVendorController 管理端商家审核
type AdminVendorController struct {
	vendorSvc *service.VendorService
}

func NewAdminVendorController(vendorSvc *service.VendorService) *AdminVendorController {
	return &AdminVendorController{vendorSvc: vendorSvc}
}

// ListVendors 商家列表
// @Summary 商家列表
// @Description 分页查询商家，支持按审核状态、名称筛选
// @Tags Admin/Vendor (商家审核)
// @Produce json
// @Security BearerAuth
// @Param vendor_status query string false "审核状态 Pending/Approved/Rejected/Resubmission"
// @Param keyword query string false "店铺名关键词"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.ListResp "商家列表"
// @Router /api/admin/vendors [get]
func (c *AdminVendorController) ListVendors(ctx *gin.Context) {
	filter := repository.StoreFilter{
		VendorStatus: ctx.Query("vendor_status"),
		Keyword:      ctx.Query("keyword"),
	}
	filter.Page, filter.PageSize = pageParams(ctx)

	stores, total, err := c.vendorSvc.List(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}

	resps := make([]dto.StoreResp, 0, len(stores))
	for i := range stores {
		resps = append(resps, dto.ToStoreResp(&stores[i]))
	}
	okList(ctx, resps, total, filter.Page, filter.PageSize)
}

// GetVendor 商家详情
// @Summary 商家详情
// @Tags Admin/Vendor (商家审核)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {object} dto.Resp "商家详情"
// @Failure 404 {object} dto.Resp "商家不存在"
// @Router /api/admin/vendors/{id} [get]
func (c *AdminVendorController) GetVendor(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	store, err := c.vendorSvc.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	resp := dto.ToStoreResp(store)
	ok(ctx, resp)
}

// ReviewVendor 审核商家
// @Summary 审核商家
// @Description approve / reject / resubmission 三种动作，一对一映射到审核状态
// @Tags Admin/Vendor (商家审核)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Param request body dto.VendorActionReq true "审核动作"
// @Success 200 {object} dto.Resp "更新后的商家"
// @Failure 400 {object} dto.Resp "未知动作"
// @Failure 404 {object} dto.Resp "商家不存在"
// @Router /api/admin/vendors/{id} [patch]
func (c *AdminVendorController) ReviewVendor(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	var req dto.VendorActionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	store, err := c.vendorSvc.SetVendorStatus(ctx.Request.Context(), id, req.Action, req.Reason)
	if err != nil {
		fail(ctx, err)
		return
	}
	resp := dto.ToStoreResp(store)
	ok(ctx, resp)
}

// DeleteVendor 删除商家
// @Summary 删除商家
// @Tags Admin/Vendor (商家审核)
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺ID"
// @Success 200 {object} dto.Resp "删除成功"
// @Failure 404 {object} dto.Resp "商家不存在"
// @Router /api/admin/vendors/{id} [delete]
func (c *AdminVendorController) DeleteVendor(ctx *gin.Context) {
	id, okID := parseIDParam(ctx)
	if !okID {
		return
	}

	if err := c.vendorSvc.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	okMsg(ctx, "vendor deleted")
}
