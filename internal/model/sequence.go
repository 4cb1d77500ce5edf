package model

// 序列名常量
const (
	SequenceVendorID    = "vendor_id"
	SequenceProductCode = "master_product_code"
)

// Sequence 单行计数器
// vendor_id / master_product_code 都从这里原子递增取号，
// 不做"读最后一条记录再解析"的生成方式
type Sequence struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null;default:0"`
}

func (Sequence) TableName() string {
	return "sequences"
}
