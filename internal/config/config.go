package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Source     SourceConfig
	Kubernetes KubernetesConfig
	S3         S3Config
	Database   DatabaseConfig
	Validation ValidationConfig
	Strings    StringsConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

// Source kinds
const (
	SourceNone      = "none"
	SourceFile      = "file"
	SourceConfigMap = "configmap"
	SourceS3        = "s3"
	SourceHTTP      = "http"
)

type SourceConfig struct {
	Kind         string
	Path         string
	Watch        bool
	PollInterval time.Duration
	URL          string
	Timeout      time.Duration
}

type KubernetesConfig struct {
	InCluster      bool
	KubeConfigPath string
	Namespace      string
	ConfigMap      string
	Key            string
}

type S3Config struct {
	URL       string
	Region    string
	Bucket    string
	Key       string
	AccessKey string
	SecretKey string
	PathStyle bool
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type ValidationConfig struct {
	AllowPartial bool
}

type StringsConfig struct {
	DefaultLocale string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("SOURCE_KIND", SourceFile)
	v.SetDefault("SOURCE_PATH", "models.yaml")
	v.SetDefault("SOURCE_WATCH", true)
	v.SetDefault("SOURCE_POLL_INTERVAL", "0s")
	v.SetDefault("SOURCE_URL", "http://localhost:5000/api/settings/models")
	v.SetDefault("SOURCE_TIMEOUT", "30s")
	v.SetDefault("KUBERNETES_IN_CLUSTER", false)
	v.SetDefault("KUBERNETES_KUBECONFIG", "")
	v.SetDefault("KUBERNETES_NAMESPACE", "default")
	v.SetDefault("KUBERNETES_CONFIGMAP", "onnx-web-models")
	v.SetDefault("KUBERNETES_KEY", "models.yaml")
	v.SetDefault("S3_URL", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_KEY", "models.yaml")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_PATH_STYLE", true)
	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_NAME", "model_config")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("VALIDATION_ALLOW_PARTIAL", false)
	v.SetDefault("STRINGS_DEFAULT_LOCALE", "en")

	// Env
	v.AutomaticEnv()

	pollInterval, err := time.ParseDuration(v.GetString("SOURCE_POLL_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("parse SOURCE_POLL_INTERVAL: %w", err)
	}
	timeout, err := time.ParseDuration(v.GetString("SOURCE_TIMEOUT"))
	if err != nil {
		timeout = 30 * time.Second
	}
	connMaxLifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		connMaxLifetime = 5 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Source: SourceConfig{
			Kind:         v.GetString("SOURCE_KIND"),
			Path:         v.GetString("SOURCE_PATH"),
			Watch:        v.GetBool("SOURCE_WATCH"),
			PollInterval: pollInterval,
			URL:          v.GetString("SOURCE_URL"),
			Timeout:      timeout,
		},
		Kubernetes: KubernetesConfig{
			InCluster:      v.GetBool("KUBERNETES_IN_CLUSTER"),
			KubeConfigPath: v.GetString("KUBERNETES_KUBECONFIG"),
			Namespace:      v.GetString("KUBERNETES_NAMESPACE"),
			ConfigMap:      v.GetString("KUBERNETES_CONFIGMAP"),
			Key:            v.GetString("KUBERNETES_KEY"),
		},
		S3: S3Config{
			URL:       v.GetString("S3_URL"),
			Region:    v.GetString("S3_REGION"),
			Bucket:    v.GetString("S3_BUCKET"),
			Key:       v.GetString("S3_KEY"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			PathStyle: v.GetBool("S3_PATH_STYLE"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Validation: ValidationConfig{
			AllowPartial: v.GetBool("VALIDATION_ALLOW_PARTIAL"),
		},
		Strings: StringsConfig{
			DefaultLocale: v.GetString("STRINGS_DEFAULT_LOCALE"),
		},
	}

	switch cfg.Source.Kind {
	case SourceNone, SourceFile, SourceConfigMap, SourceS3, SourceHTTP:
	default:
		return nil, fmt.Errorf("unknown SOURCE_KIND %q", cfg.Source.Kind)
	}
	// HTTP sources cannot push changes
	if cfg.Source.Kind == SourceHTTP && cfg.Source.PollInterval == 0 {
		cfg.Source.PollInterval = time.Minute
	}

	return cfg, nil
}
