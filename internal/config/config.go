package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全量运行配置，统一从环境变量/.env 读取
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Mail     MailConfig
	AI       AIConfig
	Catalog  CatalogConfig
	Tasks    TaskConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN 拼接 gorm postgres 连接串
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	CDNDomain string
	BasePath  string
	LocalDir  string // provider=local 时的落盘目录
	LocalURL  string // provider=local 时返回 URL 的前缀
}

// MailConfig 邮件网关配置，GatewayURL 为空则跳过所有通知
type MailConfig struct {
	GatewayURL string
	APIKey     string
	From       string
}

type AIConfig struct {
	GeminiAPIKey string
	ModelVersion string
}

// CatalogConfig 目录校验行为开关
type CatalogConfig struct {
	// 必填属性/变体缺失时，报错是否点名缺失项
	ExposeMissingMapping bool
}

type TaskConfig struct {
	ReconcileEnabled bool
	ReconcileSpec    string
	CleanupEnabled   bool
	CleanupSpec      string
	CleanupAfterDays int
}

// Load 读取配置
// 优先级：环境变量 > .env 文件 > 默认值
func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "vendor_hub")
	viper.SetDefault("DB_NAME", "vendor_hub")
	viper.SetDefault("DB_SSLMODE", "disable")

	viper.SetDefault("JWT_SECRET", "vendor-hub-secret-change-in-production")
	viper.SetDefault("JWT_ACCESS_TTL_MINUTES", 120)
	viper.SetDefault("JWT_REFRESH_TTL_HOURS", 168)
	viper.SetDefault("JWT_ISSUER", "vendor-hub")

	viper.SetDefault("STORAGE_PROVIDER", "local")
	viper.SetDefault("STORAGE_BASE_PATH", "vendor-hub")
	viper.SetDefault("STORAGE_LOCAL_DIR", "./uploads")
	viper.SetDefault("STORAGE_LOCAL_URL", "/static")

	viper.SetDefault("GEMINI_MODEL_VERSION", "gemini-1.5-flash")

	viper.SetDefault("CATALOG_EXPOSE_MISSING_MAPPING", true)

	viper.SetDefault("TASK_RECONCILE_ENABLED", true)
	// 每天凌晨 3 点校准分类计数
	viper.SetDefault("TASK_RECONCILE_SPEC", "0 0 3 * * *")
	viper.SetDefault("TASK_CLEANUP_ENABLED", false)
	// 每小时清一次过期注册草稿
	viper.SetDefault("TASK_CLEANUP_SPEC", "0 0 * * * *")
	viper.SetDefault("TASK_CLEANUP_AFTER_DAYS", 30)

	viper.AutomaticEnv()

	// .env 不存在不算错误，环境变量足够
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg := &Config{
		Port:        viper.GetString("PORT"),
		Environment: viper.GetString("ENVIRONMENT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("JWT_SECRET"),
			AccessTTL:  time.Duration(viper.GetInt("JWT_ACCESS_TTL_MINUTES")) * time.Minute,
			RefreshTTL: time.Duration(viper.GetInt("JWT_REFRESH_TTL_HOURS")) * time.Hour,
			Issuer:     viper.GetString("JWT_ISSUER"),
		},
		Storage: StorageConfig{
			Provider:  viper.GetString("STORAGE_PROVIDER"),
			Bucket:    viper.GetString("AWS_BUCKET"),
			Region:    viper.GetString("AWS_REGION"),
			AccessKey: viper.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey: viper.GetString("AWS_SECRET_ACCESS_KEY"),
			CDNDomain: viper.GetString("AWS_CDN_DOMAIN"),
			BasePath:  viper.GetString("STORAGE_BASE_PATH"),
			LocalDir:  viper.GetString("STORAGE_LOCAL_DIR"),
			LocalURL:  viper.GetString("STORAGE_LOCAL_URL"),
		},
		Mail: MailConfig{
			GatewayURL: viper.GetString("MAIL_GATEWAY_URL"),
			APIKey:     viper.GetString("MAIL_API_KEY"),
			From:       viper.GetString("MAIL_FROM"),
		},
		AI: AIConfig{
			GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
			ModelVersion: viper.GetString("GEMINI_MODEL_VERSION"),
		},
		Catalog: CatalogConfig{
			ExposeMissingMapping: viper.GetBool("CATALOG_EXPOSE_MISSING_MAPPING"),
		},
		Tasks: TaskConfig{
			ReconcileEnabled: viper.GetBool("TASK_RECONCILE_ENABLED"),
			ReconcileSpec:    viper.GetString("TASK_RECONCILE_SPEC"),
			CleanupEnabled:   viper.GetBool("TASK_CLEANUP_ENABLED"),
			CleanupSpec:      viper.GetString("TASK_CLEANUP_SPEC"),
			CleanupAfterDays: viper.GetInt("TASK_CLEANUP_AFTER_DAYS"),
		},
	}

	if cfg.Environment == "production" && cfg.JWT.Secret == "vendor-hub-secret-change-in-production" {
		return nil, fmt.Errorf("生产环境必须配置 JWT_SECRET")
	}

	return cfg, nil
}
