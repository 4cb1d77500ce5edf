package model

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// 入驻审核状态常量
const (
	VendorStatusPending      = "Pending"      // 待审核（含未提交完的草稿）
	VendorStatusApproved     = "Approved"     // 已通过
	VendorStatusRejected     = "Rejected"     // 已拒绝
	VendorStatusResubmission = "Resubmission" // 退回重新提交
)

// 注册步骤边界
const (
	RegistrationStepNone      = 0
	RegistrationStepSubmitted = 6 // 第 5 步提交成功后落到 6
)

// Store 商家店铺
// vendor_status 是审核状态的唯一事实来源，is_approved 只在响应里派生，不落库
type Store struct {
	BaseModel
	// 1. 身份
	VendorID  string `gorm:"size:20;uniqueIndex" json:"vendor_id"` // 形如 V00001 的序列号
	StoreName string `gorm:"size:100;uniqueIndex" json:"store_name"`
	Slug      string `gorm:"size:120;uniqueIndex" json:"slug"`

	// 2. 归属
	// uniqueIndex 保证一个用户只能有一家店，堵掉并发重复建店
	OwnerUserID int64 `gorm:"uniqueIndex;not null" json:"owner_user_id"`
	Owner       *User `gorm:"foreignKey:OwnerUserID" json:"-"`

	// 3. 生命周期
	RegistrationStep int    `gorm:"default:0;comment:注册进度 0-6" json:"registration_step"`
	VendorStatus     string `gorm:"size:20;index;default:'Pending'" json:"vendor_status"`
	RejectionReason  string `gorm:"type:text" json:"rejection_reason,omitempty"`

	// 4. 分步资料块（提交前均可为空）
	Business   datatypes.JSON `gorm:"type:jsonb" json:"business,omitempty"`
	Contacts   datatypes.JSON `gorm:"type:jsonb" json:"contacts,omitempty"`
	Warehouses datatypes.JSON `gorm:"type:jsonb" json:"warehouses,omitempty"`
	Channels   pq.StringArray `gorm:"type:text[]" json:"channels,omitempty"`
	Payout     datatypes.JSON `gorm:"type:jsonb" json:"payout,omitempty"`

	// 5. 各步原始提交快照，键为 step1..step5
	RegistrationData datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}

// IsApproved 派生字段，见 DTO 层
func (s *Store) IsApproved() bool {
	return s.VendorStatus == VendorStatusApproved
}
