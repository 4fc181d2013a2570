package vitals

import (
	"iter"
	"time"

	"carewatch/internal/domain"
)

// Store 生命体征观测存储（按住户追加）
// 每个住户的观测按时间戳非递减顺序保存，"最新"即末尾元素，O(1) 读取
// 写入不加锁：同一住户范围内由调用方（service 层）串行化写操作，
// 读操作是纯投影，可与写操作交错执行
type Store struct {
	byResident map[string][]domain.VitalObservation
}

// NewStore 创建观测存储
func NewStore() *Store {
	return &Store{
		byResident: make(map[string][]domain.VitalObservation),
	}
}

// Record 追加一条观测记录
// 校验失败返回 ValidationError，存储保持不变：
//   - 所有指标均为空
//   - 时间戳早于该住户已有的最新观测（不允许回填历史数据）
func (s *Store) Record(obs domain.VitalObservation) error {
	if obs.ResidentID == "" {
		return domain.NewValidationError("resident_id is required")
	}
	if !obs.HasVitals() {
		return domain.NewValidationError("observation has no vital fields")
	}

	history := s.byResident[obs.ResidentID]
	if n := len(history); n > 0 && obs.Timestamp.Before(history[n-1].Timestamp) {
		return domain.NewValidationError(
			"observation timestamp %s is earlier than latest %s",
			obs.Timestamp.Format(time.RFC3339), history[n-1].Timestamp.Format(time.RFC3339),
		)
	}

	s.byResident[obs.ResidentID] = append(history, obs)
	return nil
}

// Latest 返回住户最新的观测记录，从未测量过时 ok 为 false
func (s *Store) Latest(residentID string) (domain.VitalObservation, bool) {
	history := s.byResident[residentID]
	if len(history) == 0 {
		return domain.VitalObservation{}, false
	}
	return history[len(history)-1], true
}

// History 返回住户观测历史的惰性序列（从旧到新），可选时间范围过滤
// from/to 为 nil 表示不限制；序列可重复遍历
func (s *Store) History(residentID string, from, to *time.Time) iter.Seq[domain.VitalObservation] {
	return func(yield func(domain.VitalObservation) bool) {
		for _, obs := range s.byResident[residentID] {
			if from != nil && obs.Timestamp.Before(*from) {
				continue
			}
			if to != nil && obs.Timestamp.After(*to) {
				return
			}
			if !yield(obs) {
				return
			}
		}
	}
}
