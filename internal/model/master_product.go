package model

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// 商品状态常量
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive" // 商家新品请求默认落在这里，等管理员审核
	ProductStatusArchived = "archived"
)

// 报价成色常量
const (
	ConditionNew         = "new"
	ConditionUsed        = "used"
	ConditionRefurbished = "refurbished"
)

// MasterProduct 主商品档案
// 商家不直接建商品，只能挂报价（VendorOffering）或提交新品请求
type MasterProduct struct {
	BaseModel
	// --- 身份 ---
	MasterProductCode string `gorm:"size:20;uniqueIndex;not null" json:"master_product_code"` // UPID-NNNNNN，序列表取号
	Name              string `gorm:"size:255;not null" json:"name"`
	Slug              string `gorm:"size:300;uniqueIndex" json:"slug"`

	// --- 归类 ---
	CategoryID int64     `gorm:"index;not null" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	BrandID    int64     `gorm:"index;default:0" json:"brand_id"`
	Brand      *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`

	Status string `gorm:"size:20;index;default:'inactive'" json:"status"`

	// --- 商品标识 (GTIN/MPN 等) ---
	Identifiers datatypes.JSON `gorm:"type:jsonb" json:"identifiers,omitempty"`

	// --- 描述与政策 ---
	About            string `gorm:"type:text" json:"about"`
	Features         string `gorm:"type:text" json:"features"`
	WarrantyPolicyID int64  `gorm:"default:0" json:"warranty_policy_id"`
	ReturnPolicyID   int64  `gorm:"default:0" json:"return_policy_id"`
	RefundPolicyID   int64  `gorm:"default:0" json:"refund_policy_id"`

	// --- 搜索标签 (Postgres Array) ---
	SearchTags pq.StringArray `gorm:"type:text[]" json:"search_tags,omitempty"`

	// --- 关联关系 ---
	AttributeValues []ProductAttributeValue `gorm:"foreignKey:ProductID" json:"attribute_values,omitempty"`
	VariantValues   []ProductVariantValue   `gorm:"foreignKey:ProductID" json:"variant_values,omitempty"`
	Media           []ProductMedia          `gorm:"foreignKey:ProductID" json:"media,omitempty"`
	Offerings       []VendorOffering        `gorm:"foreignKey:MasterProductID" json:"offerings,omitempty"`
}

func (MasterProduct) TableName() string {
	return "master_products"
}

// ProductAttributeValue 商品在某个属性上的取值
// 创建时必须覆盖所属分类的全部必填属性映射
type ProductAttributeValue struct {
	BaseModel
	ProductID   int64      `gorm:"index:idx_product_attr,unique;not null" json:"product_id"`
	AttributeID int64      `gorm:"index:idx_product_attr,unique;not null" json:"attribute_id"`
	Attribute   *Attribute `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"`
	Value       string     `gorm:"size:255" json:"value"`
}

func (ProductAttributeValue) TableName() string {
	return "product_attribute_values"
}

// ProductVariantValue 商品在某个变体维度上的取值
type ProductVariantValue struct {
	BaseModel
	ProductID int64    `gorm:"index:idx_product_variant,unique;not null" json:"product_id"`
	VariantID int64    `gorm:"index:idx_product_variant,unique;not null" json:"variant_id"`
	Variant   *Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Value     string   `gorm:"size:255" json:"value"`
}

func (ProductVariantValue) TableName() string {
	return "product_variant_values"
}

// ProductMedia 商品媒体
// is_primary 在写入路径上保证至多一条，见 ProductService
type ProductMedia struct {
	BaseModel
	ProductID int64  `gorm:"index;not null" json:"product_id"`
	URL       string `gorm:"size:512;not null" json:"url"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

func (ProductMedia) TableName() string {
	return "product_media"
}

// VendorOffering 商家对主商品的报价
// (master_product_id, store_id) 联合唯一，同一商家重复挂接直接 409
type VendorOffering struct {
	BaseModel
	MasterProductID int64  `gorm:"uniqueIndex:idx_offering_product_store;not null" json:"master_product_id"`
	StoreID         int64  `gorm:"uniqueIndex:idx_offering_product_store;index;not null" json:"store_id"`
	Store           *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`

	PriceAmount   int64  `gorm:"default:0;comment:最小货币单位计价" json:"price_amount"`
	CurrencyCode  string `gorm:"size:5;default:'USD'" json:"currency_code"`
	StockQuantity int    `gorm:"default:0" json:"stock_quantity"`
	Condition     string `gorm:"size:20;default:'new'" json:"condition"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}

func (VendorOffering) TableName() string {
	return "vendor_offerings"
}
