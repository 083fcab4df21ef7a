// Package configs 管理应用程序配置，包括服务器、数据库、对象存储、上传策略和队列的配置信息.
// configs 包支持多种配置格式（YAML、JSON、TOML、dotenv），支持环境变量覆盖并可启用热重载.
//
// Example:
//
//	cfg, v, err := configs.Load("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(cfg.Server.Port, v.ConfigFileUsed())
//
// Example accessing DB config:
//
//	dsn := cfg.DB.GetDSN()
//	fmt.Println("DSN:", dsn)
//
// Example accessing upload policy:
//
//	fmt.Println("max file size:", cfg.Upload.MaxFileSize)
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/yeisme/genomeinsight/pkg/rule"
)

// AppVersion 应用版本号，构建时可通过 -ldflags 覆盖.
var AppVersion = "0.1.0"

// EnvPrefix 环境变量前缀，例如 GENOMEINSIGHT_SERVER_PORT.
const EnvPrefix = "GENOMEINSIGHT"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server         ServerConfig         `mapstructure:"server"`          // 服务器配置，端口、调试模式等
		Log            LogConfig            `mapstructure:"log"`             // 日志相关配置
		DB             DBConfig             `mapstructure:"db"`              // 元数据数据库配置
		Storage        StorageConfig        `mapstructure:"storage"`         // 文件内容存储配置
		Upload         UploadConfig         `mapstructure:"upload"`          // 上传校验策略
		KV             KVConfig             `mapstructure:"kv"`              // 详情缓存
		MQ             MQConfig             `mapstructure:"mq"`              // 生命周期事件
		Metrics        MetricsConfig        `mapstructure:"metrics"`         // Prometheus 指标
		Tracing        TracingConfig        `mapstructure:"tracing"`         // OpenTelemetry 追踪
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`      // 限流
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"` // 熔断
		Janitor        JanitorConfig        `mapstructure:"janitor"`         // 孤儿文件清理任务
	}
)

// ReloadFunc 配置热重载后的回调，参数为新配置的副本.
type ReloadFunc func(cfg AppConfig)

var (
	// reloadMu 保护热重载时对配置结构体的并发写入与回调列表.
	reloadMu    sync.Mutex
	reloadHooks []ReloadFunc
)

// OnReload 注册热重载回调，用于把新配置推给启动时已构建的组件.
func OnReload(fn ReloadFunc) {
	reloadMu.Lock()
	defer reloadMu.Unlock()

	reloadHooks = append(reloadHooks, fn)
}

// Load 加载应用程序配置，支持多种格式(yaml、json、toml、dotenv)并可启用热重载.
// path 可以是配置文件，也可以是包含 config.* 的目录；找不到配置文件时仅使用默认值与环境变量.
func Load(path string) (*AppConfig, *viper.Viper, error) {
	v := viper.New()
	// 设置默认值
	setAllDefaults(v)

	if path != "" {
		// 检查path是否是文件
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			// 是文件，使用SetConfigFile，Viper会自动检测类型
			v.SetConfigFile(path)
		} else {
			// 是目录，设置配置名和路径
			v.SetConfigName("config")
			v.AddConfigPath(path)
			v.AddConfigPath(filepath.Join(path, "configs"))

			for _, ext := range []string{"yaml", "yml", "json", "toml", "env", "dotenv"} {
				cfg := filepath.Join(path, "config."+ext)
				if _, err := os.Stat(cfg); err == nil {
					v.SetConfigFile(cfg)

					break
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 读取配置，配置文件不存在时退回默认值
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	watchConfig(v, cfg)

	return cfg, v, nil
}

// Validate 按 rule 标签校验配置.
func (c *AppConfig) Validate() error {
	if err := rule.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig  ServerConfig
		logConfig     LogConfig
		dbConfig      DBConfig
		storageConfig StorageConfig
		uploadConfig  UploadConfig
		kvConfig      KVConfig
		mqConfig      MQConfig
		metricsConfig MetricsConfig
		tracingConfig TracingConfig
		rateLimit     RateLimitConfig
		breaker       CircuitBreakerConfig
		janitor       JanitorConfig
	)

	serverConfig.setDefaults(v)
	logConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	storageConfig.setDefaults(v)
	uploadConfig.setDefaults(v)
	kvConfig.setDefaults(v)
	mqConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
	rateLimit.setDefaults(v)
	breaker.setDefaults(v)
	janitor.setDefaults(v)
}

// watchConfig 启用配置热重载，只在 server.reload_config 打开且存在配置文件时生效.
func watchConfig(v *viper.Viper, cfg *AppConfig) {
	if !cfg.Server.ReloadConfig || v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)

		next := &AppConfig{}
		if err := v.Unmarshal(next); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
			return
		}

		if err := next.Validate(); err != nil {
			fmt.Printf("Ignoring invalid config: %v\n", err)
			return
		}

		applyReload(cfg, next)
	})
	v.WatchConfig()
}

// applyReload 替换配置并依次调用回调.
func applyReload(cfg, next *AppConfig) {
	reloadMu.Lock()
	*cfg = *next
	hooks := append([]ReloadFunc(nil), reloadHooks...)
	reloadMu.Unlock()

	for _, fn := range hooks {
		fn(*next)
	}
}
