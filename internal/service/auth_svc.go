package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/middleware"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/pkg/errs"
)

// AuthService 账号注册/登录/续签
type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register 注册账号，默认 user 角色
func (s *AuthService) Register(ctx context.Context, req dto.RegisterReq) (*dto.TokenResp, error) {
	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errs.Conflictf("username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errs.Conflictf("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		Status:       1,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Login 登录
// 用户名不存在和密码错误返回同一个错误，不泄露账号是否存在
func (s *AuthService) Login(ctx context.Context, req dto.LoginReq) (*dto.TokenResp, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Unauthorizedf("invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.Unauthorizedf("invalid username or password")
	}
	if user.Status == 0 {
		return nil, errs.Forbiddenf("account disabled")
	}

	return s.issueTokens(user)
}

// Refresh 用 refresh token 换新 token 对
// 重新查库取角色，避免 step5 升级 vendor 后旧 token 角色滞后
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResp, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh" {
		return nil, errs.Unauthorizedf("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Unauthorizedf("invalid refresh token")
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenResp, error) {
	access, refresh, err := middleware.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
	}, nil
}
