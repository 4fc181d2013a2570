package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"carewatch/internal/cache"
	"carewatch/internal/config"
	"carewatch/internal/domain"
	"carewatch/internal/evaluator"
	"carewatch/internal/handover"
	"carewatch/internal/ledger"
	"carewatch/internal/repository"
	"carewatch/internal/vitals"

	"go.uber.org/zap"
)

// RosterSource 花名册来源（数据库Repository或外部目录服务客户端）
type RosterSource interface {
	ListRoster(ctx context.Context) ([]domain.Resident, error)
}

// MonitorService 监护服务
// 组合观测存储、紧急评估、测量排程、任务台账和交接备注，
// 并承担写操作的串行化（核心组件本身不加锁）
// 观测/任务/备注的持久化是写穿的：先写内存核心，再写 PostgreSQL 和 Redis 缓存
type MonitorService struct {
	mu     sync.RWMutex
	config *config.Config
	logger *zap.Logger

	store     *vitals.Store
	evaluator *evaluator.Evaluator
	scheduler *evaluator.Scheduler
	ledger    *ledger.Ledger
	handover  *handover.Log

	roster RosterSource

	// 持久化与缓存协作方（可为 nil，如 memory 模式）
	observationsRepo repository.ObservationsRepository
	todosRepo        repository.TodosRepository
	notesRepo        repository.NotesRepository
	cacheManager     *cache.Manager
}

// NewMonitorService 创建监护服务
func NewMonitorService(
	cfg *config.Config,
	roster RosterSource,
	observationsRepo repository.ObservationsRepository,
	todosRepo repository.TodosRepository,
	notesRepo repository.NotesRepository,
	cacheManager *cache.Manager,
	logger *zap.Logger,
) (*MonitorService, error) {
	if err := cfg.Monitor.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}

	store := vitals.NewStore()
	return &MonitorService{
		config:           cfg,
		logger:           logger,
		store:            store,
		evaluator:        evaluator.NewEvaluator(store, cfg.Monitor.Thresholds, logger),
		scheduler:        evaluator.NewScheduler(store),
		ledger:           ledger.NewLedger(),
		handover:         handover.NewLog(),
		roster:           roster,
		observationsRepo: observationsRepo,
		todosRepo:        todosRepo,
		notesRepo:        notesRepo,
		cacheManager:     cacheManager,
	}, nil
}

// Bootstrap 从持久化层回放当班任务和交接备注（服务启动时调用一次）
func (s *MonitorService) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.todosRepo != nil {
		todos, err := s.todosRepo.ListTodos(ctx, shiftDate(time.Now()))
		if err != nil {
			return fmt.Errorf("failed to load todos: %w", err)
		}
		s.ledger.Replace(todos)
		s.logger.Info("Restored task ledger", zap.Int("todo_count", len(todos)))
	}

	if s.notesRepo != nil {
		notes, err := s.notesRepo.ListNotes(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to load handover notes: %w", err)
		}
		s.handover.Replace(notes)
		s.logger.Info("Restored handover log", zap.Int("note_count", len(notes)))
	}

	return nil
}

// Roster 获取当前花名册（顺序即排程顺序）
func (s *MonitorService) Roster(ctx context.Context) ([]domain.Resident, error) {
	roster, err := s.roster.ListRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	return roster, nil
}

// RecordObservation 记录一条生命体征观测
// 校验失败返回 ValidationError 且状态不变；核心写入成功后
// 持久化和缓存刷新失败会向上传播（调用方可区分"数据无效"和"存储失败"）
func (s *MonitorService) RecordObservation(ctx context.Context, obs domain.VitalObservation) error {
	if obs.Timestamp.IsZero() {
		obs.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Record(obs); err != nil {
		return err
	}

	if s.observationsRepo != nil {
		if _, err := s.observationsRepo.InsertObservation(ctx, &obs); err != nil {
			s.logger.Error("Failed to persist observation",
				zap.String("resident_id", obs.ResidentID),
				zap.Error(err),
			)
			return fmt.Errorf("observation recorded but not persisted: %w", err)
		}
	}

	s.refreshCache(ctx, &obs)

	s.logger.Info("Vital observation recorded",
		zap.String("resident_id", obs.ResidentID),
		zap.Time("timestamp", obs.Timestamp),
		zap.Bool("urgent", s.evaluator.IsUrgent(obs.ResidentID)),
	)

	return nil
}

// refreshCache 观测写入后刷新 Redis 缓存（失败只记录日志，不影响主流程）
func (s *MonitorService) refreshCache(ctx context.Context, obs *domain.VitalObservation) {
	if s.cacheManager == nil {
		return
	}

	if err := s.cacheManager.SetLatest(ctx, obs); err != nil {
		s.logger.Warn("Failed to refresh latest cache", zap.Error(err))
	}

	roster, err := s.roster.ListRoster(ctx)
	if err != nil {
		s.logger.Warn("Failed to fetch roster for urgent cache", zap.Error(err))
		return
	}

	urgent := s.evaluator.UrgentResidents(roster)
	ids := make([]string, 0, len(urgent))
	for _, r := range urgent {
		ids = append(ids, r.ResidentID)
	}
	if err := s.cacheManager.SetUrgentList(ctx, ids); err != nil {
		s.logger.Warn("Failed to refresh urgent cache", zap.Error(err))
	}
}

// Latest 获取住户最新观测
func (s *MonitorService) Latest(residentID string) (domain.VitalObservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Latest(residentID)
}

// History 获取住户观测历史（从旧到新），可选时间范围
func (s *MonitorService) History(residentID string, from, to *time.Time) []domain.VitalObservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.VitalObservation
	for obs := range s.store.History(residentID, from, to) {
		out = append(out, obs)
	}
	return out
}

// IsUrgent 评估住户是否紧急
func (s *MonitorService) IsUrgent(residentID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evaluator.IsUrgent(residentID)
}

// shiftDate 归一化到班次日期（UTC 零点）
func shiftDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
