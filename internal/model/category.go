package model

// Category 分类树
// parent_id=0 为根；商品只允许挂在叶子分类上
type Category struct {
	BaseModel
	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug     string `gorm:"size:120;uniqueIndex" json:"slug"`
	ParentID int64  `gorm:"index;default:0" json:"parent_id"`
	IsLeaf   bool   `gorm:"default:true" json:"is_leaf"`
	Status   string `gorm:"size:20;default:'active'" json:"status"`

	// 冗余计数，由挂载/删除商品时增减，定时任务兜底校准
	ProductCount int `gorm:"default:0" json:"product_count"`

	AttributeMappings []CategoryAttributeMapping `gorm:"foreignKey:CategoryID" json:"attribute_mappings,omitempty"`
	VariantMappings   []CategoryVariantMapping   `gorm:"foreignKey:CategoryID" json:"variant_mappings,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryAttributeMapping 分类与属性的映射，is_mandatory 在建品时强校验
type CategoryAttributeMapping struct {
	BaseModel
	CategoryID  int64      `gorm:"index:idx_cat_attr,unique;not null" json:"category_id"`
	AttributeID int64      `gorm:"index:idx_cat_attr,unique;not null" json:"attribute_id"`
	Attribute   *Attribute `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"`
	IsMandatory bool       `gorm:"default:false" json:"is_mandatory"`
}

func (CategoryAttributeMapping) TableName() string {
	return "category_attribute_mappings"
}

// CategoryVariantMapping 分类与变体维度的映射
type CategoryVariantMapping struct {
	BaseModel
	CategoryID  int64    `gorm:"index:idx_cat_variant,unique;not null" json:"category_id"`
	VariantID   int64    `gorm:"index:idx_cat_variant,unique;not null" json:"variant_id"`
	Variant     *Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	IsMandatory bool     `gorm:"default:false" json:"is_mandatory"`
}

func (CategoryVariantMapping) TableName() string {
	return "category_variant_mappings"
}
