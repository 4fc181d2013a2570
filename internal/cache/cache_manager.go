package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"carewatch/internal/config"
	"carewatch/internal/domain"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Manager Redis 缓存管理器
// 写穿缓存：每次观测写入后刷新住户最新数据和紧急列表，
// 供看板类调用方低成本轮询，核心评估逻辑不依赖缓存
type Manager struct {
	config      *config.Config
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewManager 创建缓存管理器
func NewManager(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) *Manager {
	return &Manager{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

// latestKey 最新观测缓存键
func (m *Manager) latestKey(residentID string) string {
	return fmt.Sprintf("%s%s%s",
		m.config.Monitor.Cache.LatestKeyPrefix,
		residentID,
		m.config.Monitor.Cache.LatestSuffix,
	)
}

// SetLatest 写入住户最新观测缓存
func (m *Manager) SetLatest(ctx context.Context, obs *domain.VitalObservation) error {
	jsonData, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("failed to marshal observation: %w", err)
	}

	key := m.latestKey(obs.ResidentID)
	ttl := time.Duration(m.config.Monitor.Cache.TTL) * time.Second
	if err := m.redisClient.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set latest cache: %w", err)
	}

	m.logger.Debug("Updated latest observation cache",
		zap.String("resident_id", obs.ResidentID),
		zap.String("key", key),
	)

	return nil
}

// GetLatest 读取住户最新观测缓存，未命中返回 ErrNotFound
func (m *Manager) GetLatest(ctx context.Context, residentID string) (*domain.VitalObservation, error) {
	val, err := m.redisClient.Get(ctx, m.latestKey(residentID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("latest cache for resident %s: %w", residentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest cache: %w", err)
	}

	var obs domain.VitalObservation
	if err := json.Unmarshal([]byte(val), &obs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal observation: %w", err)
	}

	return &obs, nil
}

// SetUrgentList 写入当前紧急住户 id 列表
func (m *Manager) SetUrgentList(ctx context.Context, residentIDs []string) error {
	jsonData, err := json.Marshal(residentIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal urgent list: %w", err)
	}

	ttl := time.Duration(m.config.Monitor.Cache.TTL) * time.Second
	if err := m.redisClient.Set(ctx, m.config.Monitor.Cache.UrgentKey, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set urgent list cache: %w", err)
	}

	m.logger.Debug("Updated urgent list cache",
		zap.Int("urgent_count", len(residentIDs)),
	)

	return nil
}

// GetUrgentList 读取紧急住户 id 列表，未命中返回 ErrNotFound
func (m *Manager) GetUrgentList(ctx context.Context) ([]string, error) {
	val, err := m.redisClient.Get(ctx, m.config.Monitor.Cache.UrgentKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("urgent list cache: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get urgent list cache: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal urgent list: %w", err)
	}

	return ids, nil
}
