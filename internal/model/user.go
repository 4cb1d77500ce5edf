package model

// 用户角色常量
const (
	RoleUser   = "user"   // 普通用户
	RoleVendor = "vendor" // 已提交入驻的商家
	RoleAdmin  = "admin"  // 平台管理员
)

// User 平台账号
// 角色只在两处变化：注册时默认 user，入驻第 5 步提交后升级为 vendor
type User struct {
	BaseModel
	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;index;default:'user'" json:"role"`
	Status       int    `gorm:"default:1;comment:状态 0-停用 1-正常" json:"status"`
}

func (User) TableName() string {
	return "users"
}
