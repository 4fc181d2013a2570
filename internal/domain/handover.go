package domain

import "time"

// 交接班备注优先级
const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgent"
)

// HandoverNote 交接班备注（只追加，不修改不删除，保留审计痕迹）
// id 和 timestamp 由服务端在创建时分配，调用方不可指定
type HandoverNote struct {
	NoteID    string    `json:"note_id" db:"note_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Priority  string    `json:"priority" db:"priority"` // normal / urgent
	Content   string    `json:"content" db:"content"`
	Author    string    `json:"author" db:"author"`
}
