package dto

// ── 认证模块 DTO ──

// CurrentUserResponse 当前调用者身份与实时角色
type CurrentUserResponse struct {
	UserID  string   `json:"user_id"`
	Roles   []string `json:"roles"`
	IsStaff bool     `json:"is_staff"`
	IsAdmin bool     `json:"is_admin"`
}
