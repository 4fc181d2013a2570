package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"carewatch/internal/domain"
	"carewatch/pkg/mqtt"

	"go.uber.org/zap"
)

// 观测上报主题：carewatch/vitals/{resident_id}
const vitalsTopicPrefix = "carewatch/vitals/"

// Recorder 观测写入方（由 service.MonitorService 实现）
type Recorder interface {
	RecordObservation(ctx context.Context, obs domain.VitalObservation) error
}

// vitalsPayload 设备/录入端上报的观测消息
type vitalsPayload struct {
	Timestamp        int64    `json:"timestamp"` // Unix 秒，0 表示用接收时间
	SystolicBP       *int     `json:"systolic_bp,omitempty"`
	DiastolicBP      *int     `json:"diastolic_bp,omitempty"`
	HeartRate        *int     `json:"heart_rate,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	OxygenSaturation *int     `json:"oxygen_saturation,omitempty"`
}

// VitalsConsumer MQTT 观测数据消费者
// 订阅录入端上报的生命体征消息并写入监护服务；
// 单条消息解析或校验失败只记录日志，不中断订阅
type VitalsConsumer struct {
	client   *mqtt.Client
	recorder Recorder
	qos      byte
	logger   *zap.Logger
}

// NewVitalsConsumer 创建观测消费者
func NewVitalsConsumer(client *mqtt.Client, recorder Recorder, qos byte, logger *zap.Logger) *VitalsConsumer {
	return &VitalsConsumer{
		client:   client,
		recorder: recorder,
		qos:      qos,
		logger:   logger,
	}
}

// Start 订阅观测主题
func (c *VitalsConsumer) Start() error {
	topic := vitalsTopicPrefix + "+"
	if err := c.client.Subscribe(topic, c.qos, c.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe vitals topic: %w", err)
	}

	c.logger.Info("Vitals consumer started", zap.String("topic", topic))
	return nil
}

// Stop 取消订阅
func (c *VitalsConsumer) Stop() {
	if err := c.client.Unsubscribe(vitalsTopicPrefix + "+"); err != nil {
		c.logger.Warn("Failed to unsubscribe vitals topic", zap.Error(err))
	}
}

// handleMessage 处理单条观测消息
func (c *VitalsConsumer) handleMessage(topic string, payload []byte) error {
	residentID := strings.TrimPrefix(topic, vitalsTopicPrefix)
	if residentID == "" || strings.Contains(residentID, "/") {
		return fmt.Errorf("unexpected vitals topic: %s", topic)
	}

	var msg vitalsPayload
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal vitals payload: %w", err)
	}

	obs := domain.VitalObservation{
		ResidentID:       residentID,
		SystolicBP:       msg.SystolicBP,
		DiastolicBP:      msg.DiastolicBP,
		HeartRate:        msg.HeartRate,
		Temperature:      msg.Temperature,
		OxygenSaturation: msg.OxygenSaturation,
	}
	if msg.Timestamp > 0 {
		obs.Timestamp = time.Unix(msg.Timestamp, 0)
	}

	if err := c.recorder.RecordObservation(context.Background(), obs); err != nil {
		if domain.IsValidation(err) {
			// 乱序或空观测：丢弃并记录，不算消费失败
			c.logger.Warn("Dropped invalid vitals message",
				zap.String("resident_id", residentID),
				zap.Error(err),
			)
			return nil
		}
		return fmt.Errorf("failed to record observation for %s: %w", residentID, err)
	}

	return nil
}
