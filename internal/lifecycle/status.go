package lifecycle

// Status 项目运营状态（唯一权威字段）
type Status string

const (
	StatusActive         Status = "active"
	StatusPendingArchive Status = "pending_archive"
	StatusArchived       Status = "archived"
	StatusDeleted        Status = "deleted"
)

// Valid 是否为合法状态
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPendingArchive, StatusArchived, StatusDeleted:
		return true
	}
	return false
}

// Terminal Deleted 为终态，不存在任何出边
func (s Status) Terminal() bool { return s == StatusDeleted }

// Public 是否出现在公开展示列表
func (s Status) Public() bool { return s == StatusActive }

// RequestStatus 归档申请状态
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)

// Valid 是否为合法申请状态
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestDenied:
		return true
	}
	return false
}

// Resolved 是否已处理（已处理的申请不可再变更）
func (s RequestStatus) Resolved() bool {
	return s == RequestApproved || s == RequestDenied
}

// Event 生命周期事件
type Event string

const (
	EventRequestArchive  Event = "request_archive"
	EventApprove         Event = "approve"
	EventDeny            Event = "deny"
	EventAdminDeactivate Event = "admin_deactivate"
	EventAdminDelete     Event = "admin_delete"
)
