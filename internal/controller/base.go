package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/pkg/errs"
)

// 统一响应壳，code=0 表示成功，出错时 code 同 HTTP 状态码

func ok(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Resp{Code: 0, Message: "ok", Data: data})
}

func okMsg(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, dto.Resp{Code: 0, Message: message})
}

func okList(ctx *gin.Context, data interface{}, total int64, page, pageSize int) {
	ctx.JSON(http.StatusOK, dto.ListResp{
		Code:     0,
		Message:  "ok",
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// fail 业务错误出口，HTTP 状态码由错误类型决定
func fail(ctx *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// 内部错误细节不外漏
		message = "internal server error"
	}
	ctx.JSON(status, dto.Resp{Code: status, Message: message})
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.Resp{
		Code:    http.StatusBadRequest,
		Message: "invalid request: " + err.Error(),
	})
}

// pageParams 查询串里的分页参数
func pageParams(ctx *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return page, pageSize
}

// parseIDParam 路径 :id
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.Resp{
			Code:    http.StatusBadRequest,
			Message: "invalid id",
		})
		return 0, false
	}
	return id, true
}
