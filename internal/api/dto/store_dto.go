package dto

import (
	"encoding/json"

	"vendor_hub_v1_202608/internal/model"
)

// ==================== 注册步骤请求 ====================

// RegisterStepReq 入驻分步提交的外壳，Data 按 Step 再解码
type RegisterStepReq struct {
	Step int             `json:"step" binding:"required,min=1,max=5"`
	Data json.RawMessage `json:"data" binding:"required"`
}

// 每一步的强类型载荷，替代原系统的 duck-typed 任意 JSON

// Step1Data 店铺与主体信息
type Step1Data struct {
	StoreName string       `json:"store_name" binding:"required,min=2,max=100"`
	Business  BusinessInfo `json:"business" binding:"required"`
}

type BusinessInfo struct {
	Type           string `json:"type" binding:"required"` // LLC / SoleProprietor / ...
	Name           string `json:"name" binding:"required"`
	RegistrationNo string `json:"registration_no"`
	TaxID          string `json:"tax_id"`
}

// Step2Data 联系人
type Step2Data struct {
	Contacts ContactSet `json:"contacts" binding:"required"`
}

type ContactSet struct {
	Primary ContactInfo `json:"primary" binding:"required"`
	Orders  ContactInfo `json:"orders"`
	Payout  ContactInfo `json:"payout"`
}

type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Step3Data 仓库
type Step3Data struct {
	Warehouses []WarehouseInfo `json:"warehouses" binding:"required,min=1,dive"`
}

type WarehouseInfo struct {
	Name        string `json:"name" binding:"required"`
	AddressLine string `json:"address_line" binding:"required"`
	City        string `json:"city" binding:"required"`
	Country     string `json:"country" binding:"required"`
	PostalCode  string `json:"postal_code"`
}

// Step4Data 销售渠道
type Step4Data struct {
	Channels []string `json:"channels" binding:"required,min=1"`
}

// Step5Data 收款信息 + 最终提交
type Step5Data struct {
	Payout          PayoutInfo `json:"payout" binding:"required"`
	AgreementSigned bool       `json:"agreement_signed" binding:"required"`
}

type PayoutInfo struct {
	BankName      string `json:"bank_name" binding:"required"`
	AccountName   string `json:"account_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
	RoutingCode   string `json:"routing_code"`
}

// ==================== 管理端请求 ====================

// VendorActionReq 管理员审核动作
type VendorActionReq struct {
	Action string `json:"action" binding:"required,oneof=approve reject resubmission"`
	Reason string `json:"reason"`
}

// ==================== 响应 ====================

// StoreResp 店铺响应，is_approved 从 vendor_status 派生
type StoreResp struct {
	ID               int64           `json:"id"`
	VendorID         string          `json:"vendor_id"`
	StoreName        string          `json:"store_name"`
	Slug             string          `json:"slug"`
	OwnerUserID      int64           `json:"owner_user_id"`
	RegistrationStep int             `json:"registration_step"`
	VendorStatus     string          `json:"vendor_status"`
	IsApproved       bool            `json:"is_approved"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	Business         json.RawMessage `json:"business,omitempty"`
	Contacts         json.RawMessage `json:"contacts,omitempty"`
	Warehouses       json.RawMessage `json:"warehouses,omitempty"`
	Channels         []string        `json:"channels,omitempty"`
	Payout           json.RawMessage `json:"payout,omitempty"`
}

// ToStoreResp model -> DTO
func ToStoreResp(s *model.Store) StoreResp {
	return StoreResp{
		ID:               s.ID,
		VendorID:         s.VendorID,
		StoreName:        s.StoreName,
		Slug:             s.Slug,
		OwnerUserID:      s.OwnerUserID,
		RegistrationStep: s.RegistrationStep,
		VendorStatus:     s.VendorStatus,
		IsApproved:       s.IsApproved(),
		RejectionReason:  s.RejectionReason,
		Business:         json.RawMessage(s.Business),
		Contacts:         json.RawMessage(s.Contacts),
		Warehouses:       json.RawMessage(s.Warehouses),
		Channels:         []string(s.Channels),
		Payout:           json.RawMessage(s.Payout),
	}
}

// DashboardResp 商家仪表盘聚合
type DashboardResp struct {
	StoreID          int64  `json:"store_id"`
	VendorStatus     string `json:"vendor_status"`
	OfferingCount    int64  `json:"offering_count"`
	ActiveOfferings  int64  `json:"active_offerings"`
	PendingProducts  int64  `json:"pending_products"`
	RegistrationStep int    `json:"registration_step"`
}
