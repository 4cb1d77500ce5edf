package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/pkg/errs"
)

// 审核动作常量
const (
	VendorActionApprove      = "approve"
	VendorActionReject       = "reject"
	VendorActionResubmission = "resubmission"
)

// VendorService 管理端商家审核 + 商家仪表盘
type VendorService struct {
	storeRepo    repository.StoreRepository
	userRepo     repository.UserRepository
	offeringRepo repository.OfferingRepository
	mail         *MailService
	logger       *zap.Logger
}

func NewVendorService(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	offeringRepo repository.OfferingRepository,
	mail *MailService,
	logger *zap.Logger,
) *VendorService {
	return &VendorService{
		storeRepo:    storeRepo,
		userRepo:     userRepo,
		offeringRepo: offeringRepo,
		mail:         mail,
		logger:       logger,
	}
}

// SetVendorStatus 管理员审核动作，一对一映射到 vendor_status
// 状态更新成功后尽力通知店主，店主不存在不算失败
func (s *VendorService) SetVendorStatus(ctx context.Context, storeID int64, action, reason string) (*model.Store, error) {
	var status string
	switch action {
	case VendorActionApprove:
		status = model.VendorStatusApproved
	case VendorActionReject:
		status = model.VendorStatusRejected
	case VendorActionResubmission:
		status = model.VendorStatusResubmission
	default:
		return nil, errs.Validationf("unknown action %q", action)
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("store", strconv.FormatInt(storeID, 10))
		}
		return nil, err
	}

	fields := map[string]interface{}{
		"vendor_status": status,
	}
	if status == model.VendorStatusApproved {
		fields["rejection_reason"] = ""
	} else if reason != "" {
		fields["rejection_reason"] = reason
	}

	if err := s.storeRepo.UpdateFields(ctx, storeID, fields); err != nil {
		return nil, err
	}
	store.VendorStatus = status
	if v, ok := fields["rejection_reason"].(string); ok {
		store.RejectionReason = v
	}

	s.notifyDecision(ctx, store, reason)
	return store, nil
}

// List 管理端分页列表
func (s *VendorService) List(ctx context.Context, filter repository.StoreFilter) ([]model.Store, int64, error) {
	return s.storeRepo.List(ctx, filter)
}

// Get 单个店铺
func (s *VendorService) Get(ctx context.Context, storeID int64) (*model.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("store", strconv.FormatInt(storeID, 10))
		}
		return nil, err
	}
	return store, nil
}

// Delete 管理端删除店铺（软删）
func (s *VendorService) Delete(ctx context.Context, storeID int64) error {
	if _, err := s.Get(ctx, storeID); err != nil {
		return err
	}
	return s.storeRepo.Delete(ctx, storeID)
}

// Dashboard 商家仪表盘聚合
func (s *VendorService) Dashboard(ctx context.Context, userID int64) (*dto.DashboardResp, error) {
	store, err := s.storeRepo.GetByOwnerUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundf("store", "")
		}
		return nil, err
	}

	total, err := s.offeringRepo.CountByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	active, err := s.offeringRepo.CountActiveByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.offeringRepo.CountPendingProductsByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResp{
		StoreID:          store.ID,
		VendorStatus:     store.VendorStatus,
		OfferingCount:    total,
		ActiveOfferings:  active,
		PendingProducts:  pending,
		RegistrationStep: store.RegistrationStep,
	}, nil
}

func (s *VendorService) notifyDecision(ctx context.Context, store *model.Store, reason string) {
	user, err := s.userRepo.GetByID(ctx, store.OwnerUserID)
	if err != nil {
		s.logger.Warn("店主不可达，审核结果不发通知",
			zap.Int64("store_id", store.ID), zap.Error(err))
		return
	}

	subject := fmt.Sprintf("Vendor application update: %s", store.VendorStatus)
	body := fmt.Sprintf("Store %s (%s) status is now %s.", store.StoreName, store.VendorID, store.VendorStatus)
	if reason != "" {
		body += "\nReason: " + reason
	}
	s.mail.SendAsync(user.Email, subject, body)
}
