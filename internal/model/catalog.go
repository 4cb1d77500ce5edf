package model

// 政策类型常量
const (
	PolicyTypeWarranty = "warranty"
	PolicyTypeReturn   = "return"
	PolicyTypeRefund   = "refund"
)

// Brand 品牌
type Brand struct {
	BaseModel
	Name    string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug    string `gorm:"size:120;uniqueIndex" json:"slug"`
	LogoURL string `gorm:"size:512" json:"logo_url"`
	Status  string `gorm:"size:20;default:'active'" json:"status"`
}

func (Brand) TableName() string {
	return "brands"
}

// Attribute 商品属性定义（颜色、材质等）
type Attribute struct {
	BaseModel
	Name   string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Code   string `gorm:"size:100;uniqueIndex" json:"code"`
	Status string `gorm:"size:20;default:'active'" json:"status"`
}

func (Attribute) TableName() string {
	return "attributes"
}

// Variant 变体维度定义（尺码、容量等）
type Variant struct {
	BaseModel
	Name   string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Code   string `gorm:"size:100;uniqueIndex" json:"code"`
	Status string `gorm:"size:20;default:'active'" json:"status"`
}

func (Variant) TableName() string {
	return "variants"
}

// Tag 运营标签
type Tag struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug string `gorm:"size:120;uniqueIndex" json:"slug"`
}

func (Tag) TableName() string {
	return "tags"
}

// Policy 售后政策文档，商品通过 id 引用
type Policy struct {
	BaseModel
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_policy_name_type" json:"name"`
	Type        string `gorm:"size:20;not null;uniqueIndex:idx_policy_name_type;comment:warranty/return/refund" json:"type"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;default:'active'" json:"status"`
}

func (Policy) TableName() string {
	return "policies"
}
