package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carewatch/internal/cache"
	"carewatch/internal/config"
	"carewatch/internal/consumer"
	"carewatch/internal/directory"
	"carewatch/internal/httpapi"
	"carewatch/internal/repository"
	"carewatch/internal/service"
	"carewatch/pkg/database"
	"carewatch/pkg/logger"
	"carewatch/pkg/mqtt"
	pkgredis "carewatch/pkg/redis"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "carewatch")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	// 3. 存储层：postgres 模式连接数据库，memory 模式用内存花名册（开发/演示）
	var db *sql.DB
	var observationsRepo repository.ObservationsRepository
	var todosRepo repository.TodosRepository
	var notesRepo repository.NotesRepository
	var roster service.RosterSource

	if cfg.StoreDriver == "postgres" {
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		observationsRepo = repository.NewPostgresObservationsRepository(db)
		todosRepo = repository.NewPostgresTodosRepository(db)
		notesRepo = repository.NewPostgresNotesRepository(db)
		roster = repository.NewPostgresResidentsRepository(db)
		log.Info("Connected to PostgreSQL", zap.String("database", cfg.Database.Database))
	} else {
		roster = repository.NewMemoryResidentsRepository()
		log.Info("Running with in-memory roster, persistence disabled")
	}

	// 4. 花名册来源：配置了目录服务时覆盖数据库花名册
	if cfg.Directory.BaseURL != "" {
		roster = directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.Timeout, log)
		log.Info("Using directory service roster", zap.String("base_url", cfg.Directory.BaseURL))
	}

	// 5. Redis 缓存（连接失败降级为无缓存运行）
	var cacheManager *cache.Manager
	redisClient := pkgredis.NewRedisClient(&cfg.Redis)
	if err := pkgredis.Ping(context.Background(), redisClient); err != nil {
		log.Warn("Redis unavailable, running without cache", zap.Error(err))
		_ = redisClient.Close()
		redisClient = nil
	} else {
		cacheManager = cache.NewManager(cfg, redisClient, log)
	}

	// 6. 创建监护服务并回放持久化状态
	monitorService, err := service.NewMonitorService(
		cfg, roster, observationsRepo, todosRepo, notesRepo, cacheManager, log,
	)
	if err != nil {
		log.Fatal("Failed to create monitor service", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := monitorService.Bootstrap(ctx); err != nil {
		log.Fatal("Failed to bootstrap monitor service", zap.Error(err))
	}

	// 7. MQTT 观测消费者（连接失败降级为仅 HTTP 录入）
	var vitalsConsumer *consumer.VitalsConsumer
	mqttClient, err := mqtt.NewClient(&cfg.MQTT, log)
	if err != nil {
		log.Warn("MQTT unavailable, vitals ingestion limited to HTTP", zap.Error(err))
	} else {
		vitalsConsumer = consumer.NewVitalsConsumer(mqttClient, monitorService, cfg.MQTT.QoS, log)
		if err := vitalsConsumer.Start(); err != nil {
			log.Fatal("Failed to start vitals consumer", zap.Error(err))
		}
	}

	// 8. HTTP 路由
	router := httpapi.NewRouter(log)
	router.RegisterCareRoutes(
		httpapi.NewOverviewHandler(monitorService, log),
		httpapi.NewVitalsHandler(monitorService, log),
		httpapi.NewTodosHandler(monitorService, log),
		httpapi.NewHandoverHandler(monitorService, log),
	)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// 9. 等待信号（优雅关闭）
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		log.Error("HTTP server error", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)

	if vitalsConsumer != nil {
		vitalsConsumer.Stop()
	}
	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}

	log.Info("Carewatch service stopped")
}
