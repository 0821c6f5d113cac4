package model

// UserRole 用户角色表，对应 user_roles（一个用户可持有多个角色）
// 用户主数据由外部认证服务维护，本服务只保存角色授予关系
type UserRole struct {
	UserID string `gorm:"type:uuid;primaryKey"        json:"user_id"`
	Role   string `gorm:"type:varchar(20);primaryKey" json:"role"` // student | advisor | admin
	BaseModel
}

// TableName 指定表名
func (UserRole) TableName() string { return "user_roles" }
