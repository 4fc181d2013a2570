package domain

import "time"

// TodoItem 护理任务条目（当日/当周任务台账）
type TodoItem struct {
	TodoID    string     `json:"todo_id" db:"todo_id"`
	Title     string     `json:"title" db:"title"`
	Completed bool       `json:"completed" db:"completed"`
	Assignee  string     `json:"assignee,omitempty" db:"assignee"`   // 负责人（可选）
	DueAt     *time.Time `json:"due_at,omitempty" db:"due_at"`       // 截止时间（可选）
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// TodoUpdate 任务部分更新字段（nil 表示不修改）
type TodoUpdate struct {
	Title     *string    `json:"title,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	Assignee  *string    `json:"assignee,omitempty"`
	DueAt     *time.Time `json:"due_at,omitempty"`
}
