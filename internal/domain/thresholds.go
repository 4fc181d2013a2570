package domain

// Range 阈值范围 [Low, High]，闭区间
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// UrgencyThresholds 紧急阈值配置（指标名 -> 范围）
// 全机构共享一套配置，通过显式参数传入评估器，不使用全局单例
// 未配置的指标不参与紧急判断
type UrgencyThresholds map[string]Range

// Validate 校验每个指标满足 low <= high
func (t UrgencyThresholds) Validate() error {
	for metric, r := range t {
		if r.Low > r.High {
			return NewValidationError("threshold for %s: low %.1f > high %.1f", metric, r.Low, r.High)
		}
	}
	return nil
}

// Outside 判断数值是否严格超出范围
func (r Range) Outside(value float64) bool {
	return value < r.Low || value > r.High
}
