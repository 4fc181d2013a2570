package domain

// Resident 住户花名册条目
// 花名册由外部目录服务维护，本服务只读引用，不拥有住户数据
type Resident struct {
	ResidentID string `json:"resident_id" db:"resident_id"`
	Name       string `json:"name" db:"name"`
	Room       string `json:"room" db:"room"` // 展示用房间标签，如 "201-A"
}
