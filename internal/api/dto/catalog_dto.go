package dto

// ==================== Category ====================

// CategoryReq 创建/编辑分类
type CategoryReq struct {
	Name              string        `json:"name" binding:"required,min=2,max=100"`
	ParentID          int64         `json:"parent_id"`
	IsLeaf            *bool         `json:"is_leaf"`
	Status            string        `json:"status"`
	AttributeMappings []MappingReq  `json:"attribute_mappings" binding:"dive"`
	VariantMappings   []MappingReq  `json:"variant_mappings" binding:"dive"`
}

// MappingReq 分类到属性/变体的映射项
type MappingReq struct {
	RefID       int64 `json:"ref_id" binding:"required"`
	IsMandatory bool  `json:"is_mandatory"`
}

// SetParentReq 移动分类
type SetParentReq struct {
	ParentID int64 `json:"parent_id"`
}

// ==================== Brand / Attribute / Variant / Tag ====================

type BrandReq struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	LogoURL string `json:"logo_url"`
	Status  string `json:"status"`
}

type AttributeReq struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

type VariantReq struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

type TagReq struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// ==================== Policy ====================

type PolicyReq struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Type        string `json:"type" binding:"required,oneof=warranty return refund"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
