package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vendor_hub_v1_202608/internal/api/dto"
	"vendor_hub_v1_202608/internal/model"
	"vendor_hub_v1_202608/internal/repository"
	"vendor_hub_v1_202608/pkg/errs"
	"vendor_hub_v1_202608/pkg/utils"
)

// RegistrationService 商家入驻状态机
//
// 状态推进：0 → 1 → 2 → 3 → 4 → 5(提交, step 落到 6, 状态 Pending)
// 之后由管理员流转到 Approved / Rejected / Resubmission；
// 后两者允许商家从第 1 步重新走流程，Approved 后拒绝任何再提交
type RegistrationService struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
	seqRepo   repository.SequenceRepository
	mail      *MailService
	logger    *zap.Logger
}

func NewRegistrationService(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	seqRepo repository.SequenceRepository,
	mail *MailService,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		storeRepo: storeRepo,
		userRepo:  userRepo,
		seqRepo:   seqRepo,
		mail:      mail,
		logger:    logger,
	}
}

// GetCurrent 当前用户的店铺，没有则返回 nil
func (s *RegistrationService) GetCurrent(ctx context.Context, userID int64) (*model.Store, error) {
	store, err := s.storeRepo.GetByOwnerUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return store, nil
}

// SubmitStep 提交某一步的入驻资料
// 校验失败不落任何状态；第 5 步先落库再发通知邮件
func (s *RegistrationService) SubmitStep(ctx context.Context, userID int64, req dto.RegisterStepReq) (*model.Store, error) {
	if req.Step < 1 || req.Step > 5 {
		return nil, errs.Validationf("step must be between 1 and 5")
	}

	store, err := s.GetCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}

	if store != nil && store.VendorStatus == model.VendorStatusApproved {
		return nil, errs.Validationf("you already have an approved vendor account")
	}

	if req.Step > 1 {
		if store == nil || store.RegistrationStep < req.Step-1 {
			return nil, errs.Validationf("please complete the previous steps first")
		}
	}

	switch req.Step {
	case 1:
		store, err = s.applyStep1(ctx, userID, store, req.Data)
	case 2:
		err = s.applyStep2(store, req.Data)
	case 3:
		err = s.applyStep3(store, req.Data)
	case 4:
		err = s.applyStep4(store, req.Data)
	case 5:
		err = s.applyStep5(store, req.Data)
	}
	if err != nil {
		return nil, err
	}

	if err := s.recordStepSnapshot(store, req.Step, req.Data); err != nil {
		return nil, err
	}
	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}

	// 第 5 步：授予 vendor 角色并通知，都在落库之后
	if req.Step == 5 {
		if err := s.grantVendorRole(ctx, userID); err != nil {
			// 角色授予失败不回滚已提交的店铺，下次提交/人工修复
			s.logger.Error("授予 vendor 角色失败",
				zap.Int64("user_id", userID), zap.Error(err))
		}
		s.notifySubmitted(ctx, store)
	}

	return store, nil
}

// ==================== 各步骤处理 ====================

func (s *RegistrationService) applyStep1(ctx context.Context, userID int64, store *model.Store, data json.RawMessage) (*model.Store, error) {
	var d dto.Step1Data
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errs.Validationf("invalid step 1 payload: %v", err)
	}
	if d.StoreName == "" || d.Business.Type == "" || d.Business.Name == "" {
		return nil, errs.Validationf("store_name and business type/name are required")
	}

	// 改名或新建都要查重
	if store == nil || store.StoreName != d.StoreName {
		exists, err := s.storeRepo.ExistsByStoreName(ctx, d.StoreName)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Conflictf("store name %q is already taken", d.StoreName)
		}
	}

	raw, err := json.Marshal(d.Business)
	if err != nil {
		return nil, err
	}
	business := datatypes.JSON(raw)

	if store == nil {
		seq, err := s.seqRepo.Next(ctx, model.SequenceVendorID)
		if err != nil {
			return nil, err
		}
		store = &model.Store{
			VendorID:         utils.FormatVendorID(seq),
			StoreName:        d.StoreName,
			Slug:             utils.Slugify(d.StoreName),
			OwnerUserID:      userID,
			RegistrationStep: 1,
			VendorStatus:     model.VendorStatusPending,
			Business:         business,
		}
		if err := s.storeRepo.Create(ctx, store); err != nil {
			return nil, err
		}
		return store, nil
	}

	store.StoreName = d.StoreName
	store.Slug = utils.Slugify(d.StoreName)
	store.Business = business
	s.advanceStep(store, 1)
	return store, nil
}

func (s *RegistrationService) applyStep2(store *model.Store, data json.RawMessage) error {
	var d dto.Step2Data
	if err := json.Unmarshal(data, &d); err != nil {
		return errs.Validationf("invalid step 2 payload: %v", err)
	}
	if d.Contacts.Primary.Email == "" {
		return errs.Validationf("primary contact email is required")
	}

	contacts, err := json.Marshal(d.Contacts)
	if err != nil {
		return err
	}
	store.Contacts = datatypes.JSON(contacts)
	s.advanceStep(store, 2)
	return nil
}

func (s *RegistrationService) applyStep3(store *model.Store, data json.RawMessage) error {
	var d dto.Step3Data
	if err := json.Unmarshal(data, &d); err != nil {
		return errs.Validationf("invalid step 3 payload: %v", err)
	}
	if len(d.Warehouses) == 0 {
		return errs.Validationf("at least one warehouse is required")
	}
	for i, w := range d.Warehouses {
		if w.Name == "" || w.AddressLine == "" || w.City == "" || w.Country == "" {
			return errs.Validationf("warehouse %d is missing required fields", i+1)
		}
	}

	warehouses, err := json.Marshal(d.Warehouses)
	if err != nil {
		return err
	}
	store.Warehouses = datatypes.JSON(warehouses)
	s.advanceStep(store, 3)
	return nil
}

func (s *RegistrationService) applyStep4(store *model.Store, data json.RawMessage) error {
	var d dto.Step4Data
	if err := json.Unmarshal(data, &d); err != nil {
		return errs.Validationf("invalid step 4 payload: %v", err)
	}
	if len(d.Channels) == 0 {
		return errs.Validationf("at least one sales channel is required")
	}

	store.Channels = pq.StringArray(d.Channels)
	s.advanceStep(store, 4)
	return nil
}

func (s *RegistrationService) applyStep5(store *model.Store, data json.RawMessage) error {
	var d dto.Step5Data
	if err := json.Unmarshal(data, &d); err != nil {
		return errs.Validationf("invalid step 5 payload: %v", err)
	}
	if !d.AgreementSigned {
		return errs.Validationf("the vendor agreement must be signed")
	}
	if d.Payout.BankName == "" || d.Payout.AccountName == "" || d.Payout.AccountNumber == "" {
		return errs.Validationf("payout bank details are required")
	}

	payout, err := json.Marshal(d.Payout)
	if err != nil {
		return err
	}
	store.Payout = datatypes.JSON(payout)

	// 最终提交：step 落到 6，状态回到 Pending 等审核
	store.RegistrationStep = model.RegistrationStepSubmitted
	store.VendorStatus = model.VendorStatusPending
	store.RejectionReason = ""
	return nil
}

// ==================== 内部辅助 ====================

// advanceStep 只进不退
func (s *RegistrationService) advanceStep(store *model.Store, step int) {
	if store.RegistrationStep < step {
		store.RegistrationStep = step
	}
}

// recordStepSnapshot 把原始提交按 step1..step5 存进 registration_data
func (s *RegistrationService) recordStepSnapshot(store *model.Store, step int, data json.RawMessage) error {
	snapshots := map[string]json.RawMessage{}
	if len(store.RegistrationData) > 0 {
		if err := json.Unmarshal(store.RegistrationData, &snapshots); err != nil {
			// 历史快照损坏就重建，快照不是状态机的事实来源
			snapshots = map[string]json.RawMessage{}
		}
	}
	snapshots[fmt.Sprintf("step%d", step)] = data

	merged, err := json.Marshal(snapshots)
	if err != nil {
		return err
	}
	store.RegistrationData = datatypes.JSON(merged)
	return nil
}

func (s *RegistrationService) grantVendorRole(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	// 管理员自己开店不降级
	if user.Role == model.RoleAdmin || user.Role == model.RoleVendor {
		return nil
	}
	return s.userRepo.UpdateRole(ctx, userID, model.RoleVendor)
}

func (s *RegistrationService) notifySubmitted(ctx context.Context, store *model.Store) {
	user, err := s.userRepo.GetByID(ctx, store.OwnerUserID)
	if err != nil {
		s.logger.Warn("找不到店铺归属用户，跳过提交通知",
			zap.Int64("store_id", store.ID), zap.Error(err))
		return
	}
	s.mail.SendAsync(user.Email,
		"Your vendor application has been submitted",
		fmt.Sprintf("Store %s (%s) is now pending review.", store.StoreName, store.VendorID))
}
