package evaluator

import (
	"carewatch/internal/domain"

	"go.uber.org/zap"
)

// LatestSource 最新观测数据来源（由 vitals.Store 实现）
type LatestSource interface {
	Latest(residentID string) (domain.VitalObservation, bool)
}

// Evaluator 紧急状态评估器
// 每次调用基于住户最新观测和阈值配置重新计算，不缓存评估结果，
// 新观测写入后下一次读取立即反映
type Evaluator struct {
	source     LatestSource
	thresholds domain.UrgencyThresholds
	logger     *zap.Logger
}

// NewEvaluator 创建评估器
// 阈值通过显式参数传入，支持按机构配置和确定性测试
func NewEvaluator(source LatestSource, thresholds domain.UrgencyThresholds, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		source:     source,
		thresholds: thresholds,
		logger:     logger,
	}
}

// IsUrgent 评估住户是否处于紧急状态
// 规则：最新观测中任意一项存在的指标严格超出配置的 [low, high] 范围即为紧急
// 从未测量过的住户不视为紧急（无数据本身不是告警，避免入住初期误报）
func (e *Evaluator) IsUrgent(residentID string) bool {
	latest, ok := e.source.Latest(residentID)
	if !ok {
		return false
	}

	for metric, value := range latest.Metrics() {
		bound, configured := e.thresholds[metric]
		if !configured {
			continue
		}
		if bound.Outside(value) {
			e.logger.Debug("Vital metric outside threshold",
				zap.String("resident_id", residentID),
				zap.String("metric", metric),
				zap.Float64("value", value),
				zap.Float64("low", bound.Low),
				zap.Float64("high", bound.High),
			)
			return true
		}
	}
	return false
}

// UrgentResidents 返回花名册中处于紧急状态的住户子集，保持花名册顺序
func (e *Evaluator) UrgentResidents(roster []domain.Resident) []domain.Resident {
	var urgent []domain.Resident
	for _, r := range roster {
		if e.IsUrgent(r.ResidentID) {
			urgent = append(urgent, r)
		}
	}
	return urgent
}
