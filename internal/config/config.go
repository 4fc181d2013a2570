package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"carewatch/internal/domain"
	"carewatch/pkg/database"
	"carewatch/pkg/mqtt"
	"carewatch/pkg/redis"
)

// Config 监护服务配置
type Config struct {
	Database database.Config
	Redis    redis.Config
	MQTT     mqtt.Config

	// HTTP 服务配置
	HTTP struct {
		Addr string
	}

	// 外部目录服务（花名册来源，可选；未配置时从数据库读取）
	Directory struct {
		BaseURL string
		Timeout time.Duration
	}

	// 监护核心配置
	Monitor struct {
		// 测量周期（按花名册位置错开）
		Cadence time.Duration

		// 周任务目标数
		WeeklyGoal int

		// 紧急阈值（指标 -> [low, high]）
		Thresholds domain.UrgencyThresholds

		// Redis 缓存配置
		Cache struct {
			LatestKeyPrefix string // 最新观测缓存键前缀，如 "carewatch:resident:"
			LatestSuffix    string // 最新观测缓存键后缀，如 ":latest"
			UrgentKey       string // 紧急住户列表缓存键
			TTL             int    // 缓存 TTL（秒）
		}
	}

	// 存储模式："postgres" 或 "memory"（开发/演示环境无数据库时用内存花名册）
	StoreDriver string

	Log struct {
		Level  string
		Format string
	}
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "carewatch")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 10)
	cfg.Database.MaxIdle = getEnvInt("DB_MAX_IDLE", 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "carewatch")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.QoS = 1

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Directory.BaseURL = getEnv("DIRECTORY_BASE_URL", "")
	cfg.Directory.Timeout = time.Duration(getEnvInt("DIRECTORY_TIMEOUT_SEC", 10)) * time.Second

	cfg.Monitor.Cadence = time.Duration(getEnvInt("MONITOR_CADENCE_MIN", 120)) * time.Minute
	cfg.Monitor.WeeklyGoal = getEnvInt("MONITOR_WEEKLY_GOAL", 35)

	thresholds, err := loadThresholds()
	if err != nil {
		return nil, err
	}
	cfg.Monitor.Thresholds = thresholds

	cfg.Monitor.Cache.LatestKeyPrefix = getEnv("CACHE_LATEST_PREFIX", "carewatch:resident:")
	cfg.Monitor.Cache.LatestSuffix = ":latest"
	cfg.Monitor.Cache.UrgentKey = getEnv("CACHE_URGENT_KEY", "carewatch:urgent")
	cfg.Monitor.Cache.TTL = getEnvInt("CACHE_TTL_SEC", 300)

	cfg.StoreDriver = getEnv("STORE_DRIVER", "postgres")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

// loadThresholds 从环境变量加载阈值，格式 "low:high"（如 THRESHOLD_HEART_RATE=60:100）
// 未设置的指标使用默认阈值
func loadThresholds() (domain.UrgencyThresholds, error) {
	thresholds := domain.UrgencyThresholds{
		domain.MetricSystolicBP:       {Low: 90, High: 140},
		domain.MetricDiastolicBP:      {Low: 60, High: 90},
		domain.MetricHeartRate:        {Low: 60, High: 100},
		domain.MetricTemperature:      {Low: 35.5, High: 37.5},
		domain.MetricOxygenSaturation: {Low: 94, High: 100},
	}

	envKeys := map[string]string{
		domain.MetricSystolicBP:       "THRESHOLD_SYSTOLIC_BP",
		domain.MetricDiastolicBP:      "THRESHOLD_DIASTOLIC_BP",
		domain.MetricHeartRate:        "THRESHOLD_HEART_RATE",
		domain.MetricTemperature:      "THRESHOLD_TEMPERATURE",
		domain.MetricOxygenSaturation: "THRESHOLD_OXYGEN_SATURATION",
	}

	for metric, key := range envKeys {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		r, err := parseRange(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		thresholds[metric] = r
	}

	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return thresholds, nil
}

// parseRange 解析 "low:high" 格式阈值
func parseRange(raw string) (domain.Range, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return domain.Range{}, fmt.Errorf("expected low:high, got %q", raw)
	}
	low, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Range{}, fmt.Errorf("invalid low bound %q", parts[0])
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Range{}, fmt.Errorf("invalid high bound %q", parts[1])
	}
	return domain.Range{Low: low, High: high}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
