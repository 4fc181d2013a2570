package domain

import "time"

// 生命体征指标名称（与阈值配置、缓存 JSON 字段保持一致）
const (
	MetricSystolicBP       = "systolic_bp"
	MetricDiastolicBP      = "diastolic_bp"
	MetricHeartRate        = "heart_rate"
	MetricTemperature      = "temperature"
	MetricOxygenSaturation = "oxygen_saturation"
)

// VitalObservation 生命体征观测记录
// 所有指标均为可选（允许部分测量），用指针区分"未测量"和零值
// 一旦记录不可修改，只能追加新观测
type VitalObservation struct {
	ResidentID string    `json:"resident_id" db:"resident_id"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`

	SystolicBP       *int     `json:"systolic_bp,omitempty" db:"systolic_bp"`             // 收缩压（mmHg）
	DiastolicBP      *int     `json:"diastolic_bp,omitempty" db:"diastolic_bp"`           // 舒张压（mmHg）
	HeartRate        *int     `json:"heart_rate,omitempty" db:"heart_rate"`               // 心率（bpm）
	Temperature      *float64 `json:"temperature,omitempty" db:"temperature"`             // 体温（℃）
	OxygenSaturation *int     `json:"oxygen_saturation,omitempty" db:"oxygen_saturation"` // 血氧饱和度（%）
}

// HasVitals 是否至少包含一项指标
func (o *VitalObservation) HasVitals() bool {
	return o.SystolicBP != nil || o.DiastolicBP != nil || o.HeartRate != nil ||
		o.Temperature != nil || o.OxygenSaturation != nil
}

// Metrics 返回本次观测中实际存在的指标值（指标名 -> 数值）
// 未测量的指标不出现在结果中
func (o *VitalObservation) Metrics() map[string]float64 {
	m := make(map[string]float64)
	if o.SystolicBP != nil {
		m[MetricSystolicBP] = float64(*o.SystolicBP)
	}
	if o.DiastolicBP != nil {
		m[MetricDiastolicBP] = float64(*o.DiastolicBP)
	}
	if o.HeartRate != nil {
		m[MetricHeartRate] = float64(*o.HeartRate)
	}
	if o.Temperature != nil {
		m[MetricTemperature] = *o.Temperature
	}
	if o.OxygenSaturation != nil {
		m[MetricOxygenSaturation] = float64(*o.OxygenSaturation)
	}
	return m
}
