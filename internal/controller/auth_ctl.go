package controller

import (
	"github.com/gin-gonic/gin"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/service"
)

type AuthController struct {
	authSvc *service.AuthService
}

func NewAuthController(authSvc *service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Register 注册账号
// @Summary 注册账号
// @Description 创建新账号，默认 user 角色，返回 Token 对
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RegisterReq true "注册参数"
// @Success 200 {object} dto.Resp "Token 对"
// @Failure 409 {object} dto.Resp "用户名或邮箱已占用"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	tokens, err := c.authSvc.Register(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, tokens)
}

// Login 登录
// @Summary 登录
// @Description 用户名密码换 Token 对
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginReq true "登录参数"
// @Success 200 {object} dto.Resp "Token 对"
// @Failure 401 {object} dto.Resp "用户名或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	tokens, err := c.authSvc.Login(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, tokens)
}

// Refresh 刷新 Token
// @Summary 刷新 Token
// @Description 用 refresh token 换新 Token 对，角色以当前数据库为准
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RefreshReq true "刷新参数"
// @Success 200 {object} dto.Resp "新 Token 对"
// @Failure 401 {object} dto.Resp "refresh token 无效"
// @Router /api/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}

	tokens, err := c.authSvc.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, tokens)
}
