package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/config"
	"vendor_hub_v1_202608/internal/middleware"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试脚手架 ====================

type testServer struct {
	engine    *gin.Engine
	authSvc   *service.AuthService
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
}

// newTestServer 用真实 service/repository 搭一条最小 HTTP 链路
func newTestServer(t *testing.T) *testServer {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "连接测试数据库")
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Store{}, &model.VendorOffering{},
	), "自动建表")

	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	offeringRepo := repository.NewOfferingRepository(db)

	logger := zap.NewNop()
	mail := service.NewMailService(config.MailConfig{}, logger)
	authSvc := service.NewAuthService(userRepo)
	vendorSvc := service.NewVendorService(storeRepo, userRepo, offeringRepo, mail, logger)

	authCtl := NewAuthController(authSvc)
	adminCtl := NewAdminVendorController(vendorSvc)

	engine := gin.New()
	api := engine.Group("/api")
	api.POST("/auth/register", authCtl.Register)
	api.POST("/auth/login", authCtl.Login)

	admin := api.Group("/admin", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/vendors", adminCtl.ListVendors)
	admin.GET("/vendors/:id", adminCtl.GetVendor)
	admin.PATCH("/vendors/:id", adminCtl.ReviewVendor)

	return &testServer{engine: engine, authSvc: authSvc, userRepo: userRepo, storeRepo: storeRepo}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// registerUser 走注册接口拿 token 对
func (s *testServer) registerUser(t *testing.T, username string) dto.TokenResp {
	w := s.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterReq{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-pass-1",
	})
	require.Equal(t, http.StatusOK, w.Code, "注册响应: %s", w.Body.String())

	var resp struct {
		Code int           `json:"code"`
		Data dto.TokenResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)
	return resp.Data
}

// adminToken 注册后直接升级为 admin，再登录拿带 admin 角色的 token
func (s *testServer) adminToken(t *testing.T) string {
	tokens := s.registerUser(t, "boss")
	require.NoError(t, s.userRepo.UpdateRole(context.Background(), tokens.UserID, model.RoleAdmin))

	w := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginReq{
		Username: "boss", Password: "secret-pass-1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.TokenResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, model.RoleAdmin, resp.Data.Role)
	return resp.Data.AccessToken
}

// seedPendingStore 直接落一条待审核店铺
func (s *testServer) seedPendingStore(t *testing.T, ownerID int64) *model.Store {
	store := &model.Store{
		VendorID:         "V00001",
		StoreName:        "Pending Crafts",
		Slug:             "pending-crafts",
		OwnerUserID:      ownerID,
		RegistrationStep: model.RegistrationStepSubmitted,
		VendorStatus:     model.VendorStatusPending,
	}
	require.NoError(t, s.storeRepo.Create(context.Background(), store))
	return store
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ==================== 用例 ====================

func TestAuthAPI_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	tokens := s.registerUser(t, "shopper")
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Equal(t, model.RoleUser, tokens.Role)

	// 重复用户名冲突
	w := s.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterReq{
		Username: "shopper", Email: "other@example.com", Password: "secret-pass-1",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminAPI_RequiresAdminRole(t *testing.T) {
	s := newTestServer(t)
	tokens := s.registerUser(t, "plainuser")

	// 无 token
	w := s.do(t, http.MethodGet, "/api/admin/vendors", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// 普通用户 token
	w = s.do(t, http.MethodGet, "/api/admin/vendors", tokens.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminAPI_ReviewVendor(t *testing.T) {
	s := newTestServer(t)
	owner := s.registerUser(t, "seller")
	store := s.seedPendingStore(t, owner.UserID)
	token := s.adminToken(t)

	w := s.do(t, http.MethodPatch, "/api/admin/vendors/"+itoa(store.ID), token,
		dto.VendorActionReq{Action: "approve"})
	require.Equal(t, http.StatusOK, w.Code, "审核响应: %s", w.Body.String())

	var resp struct {
		Code int           `json:"code"`
		Data dto.StoreResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code)
	require.Equal(t, model.VendorStatusApproved, resp.Data.VendorStatus)
	require.True(t, resp.Data.IsApproved)
}

func TestAdminAPI_ReviewUnknownAction(t *testing.T) {
	s := newTestServer(t)
	owner := s.registerUser(t, "seller2")
	store := s.seedPendingStore(t, owner.UserID)
	token := s.adminToken(t)

	// binding oneof 在进 service 前就挡掉未知动作
	w := s.do(t, http.MethodPatch, "/api/admin/vendors/"+itoa(store.ID), token,
		map[string]string{"action": "banish"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminAPI_ReviewMissingVendor(t *testing.T) {
	s := newTestServer(t)
	token := s.adminToken(t)

	w := s.do(t, http.MethodPatch, "/api/admin/vendors/9999", token,
		dto.VendorActionReq{Action: "reject", Reason: "no docs"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminAPI_ListVendorsFilter(t *testing.T) {
	s := newTestServer(t)
	owner := s.registerUser(t, "seller3")
	s.seedPendingStore(t, owner.UserID)
	token := s.adminToken(t)

	w := s.do(t, http.MethodGet, "/api/admin/vendors?vendor_status=Pending", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code  int             `json:"code"`
		Data  []dto.StoreResp `json:"data"`
		Total int64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "V00001", resp.Data[0].VendorID)

	// 不匹配的状态查不到
	w = s.do(t, http.MethodGet, "/api/admin/vendors?vendor_status=Approved", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(0), resp.Total)
}
