package dto

// ==================== 管理端商品请求 ====================

// ProductCreateReq 管理员创建主商品
type ProductCreateReq struct {
	Name        string            `json:"name" binding:"required,min=2,max=255"`
	CategoryID  int64             `json:"category_id" binding:"required"`
	BrandID     int64             `json:"brand_id"`
	Status      string            `json:"status" binding:"omitempty,oneof=active inactive archived"`
	Identifiers map[string]string `json:"identifiers"`

	About            string `json:"about"`
	Features         string `json:"features"`
	WarrantyPolicyID int64  `json:"warranty_policy_id"`
	ReturnPolicyID   int64  `json:"return_policy_id"`
	RefundPolicyID   int64  `json:"refund_policy_id"`

	SearchTags      []string            `json:"search_tags"`
	AttributeValues []AttributeValueReq `json:"attribute_values" binding:"dive"`
	VariantValues   []VariantValueReq   `json:"variant_values" binding:"dive"`
	Media           []MediaReq          `json:"media" binding:"dive"`
}

type AttributeValueReq struct {
	AttributeID int64  `json:"attribute_id" binding:"required"`
	Value       string `json:"value" binding:"required"`
}

type VariantValueReq struct {
	VariantID int64  `json:"variant_id" binding:"required"`
	Value     string `json:"value" binding:"required"`
}

type MediaReq struct {
	URL       string `json:"url" binding:"required"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

// ProductUpdateReq 编辑主商品，零值字段不更新
type ProductUpdateReq struct {
	Name             string            `json:"name"`
	BrandID          int64             `json:"brand_id"`
	Status           string            `json:"status" binding:"omitempty,oneof=active inactive archived"`
	Identifiers      map[string]string `json:"identifiers"`
	About            string            `json:"about"`
	Features         string            `json:"features"`
	WarrantyPolicyID int64             `json:"warranty_policy_id"`
	ReturnPolicyID   int64             `json:"return_policy_id"`
	RefundPolicyID   int64             `json:"refund_policy_id"`
	SearchTags       []string          `json:"search_tags"`
}

// ==================== 商家端请求 ====================

// VendorProductReq 商家提交，两种形态二选一：
// master_product_id > 0 时是挂接已有主商品，否则是新品请求
type VendorProductReq struct {
	MasterProductID int64 `json:"master_product_id"`

	// 报价字段（两种形态都需要）
	PriceAmount   int64  `json:"price_amount" binding:"required,min=1"`
	CurrencyCode  string `json:"currency_code"`
	StockQuantity int    `json:"stock_quantity" binding:"min=0"`
	Condition     string `json:"condition" binding:"omitempty,oneof=new used refurbished"`

	// 新品请求字段（挂接形态下忽略）
	Name            string              `json:"name"`
	CategoryID      int64               `json:"category_id"`
	BrandID         int64               `json:"brand_id"`
	About           string              `json:"about"`
	AttributeValues []AttributeValueReq `json:"attribute_values" binding:"dive"`
	VariantValues   []VariantValueReq   `json:"variant_values" binding:"dive"`
}

// OfferingUpdateReq 商家编辑报价，nil/零值字段不更新
type OfferingUpdateReq struct {
	PriceAmount   int64  `json:"price_amount" binding:"omitempty,min=1"`
	StockQuantity *int   `json:"stock_quantity" binding:"omitempty"`
	Condition     string `json:"condition" binding:"omitempty,oneof=new used refurbished"`
	IsActive      *bool  `json:"is_active"`
}

// ==================== AI ====================

// AIDescribeReq 生成商品文案
type AIDescribeReq struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category"`
	Attributes  []string `json:"attributes"`
	Instruction string   `json:"instruction"`
}

// AIDescribeResp AI 文案结果
type AIDescribeResp struct {
	About    string   `json:"about"`
	Features string   `json:"features"`
	Tags     []string `json:"tags"`
}
