// Package db 处理元数据数据库连接.
package db

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormPrometheus "gorm.io/plugin/prometheus"

	"github.com/yeisme/genomeinsight/pkg/configs"
	nlog "github.com/yeisme/genomeinsight/pkg/log"
)

// DialectorFactory 定义创建 dialector 的函数类型.
type DialectorFactory func(dsn string) gorm.Dialector

var (
	factoriesMu sync.RWMutex
	// dialectorFactories 存储数据库类型到 dialector 工厂的映射.
	dialectorFactories = map[configs.DBType]DialectorFactory{}
)

// RegisterDialectorFactory 注册数据库 dialector 工厂函数.
func RegisterDialectorFactory(dbType configs.DBType, factory DialectorFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	dialectorFactories[dbType] = factory
}

// GetRegisteredDBTypes 返回已注册的数据库类型列表.
func GetRegisteredDBTypes() []configs.DBType {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	types := make([]configs.DBType, 0, len(dialectorFactories))
	for dbType := range dialectorFactories {
		types = append(types, dbType)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// Options 连接选项.
type Options struct {
	Metrics        bool   // 注册 gorm prometheus 插件
	MetricsRefresh uint32 // 插件刷新间隔（秒）
	Debug          bool   // 打印所有 SQL
}

// Client 包装 GORM DB 客户端.
type Client struct {
	*gorm.DB
	cfg configs.DBConfig
}

// New 根据配置打开数据库连接并检查连通性.
func New(ctx context.Context, cfg configs.DBConfig, opts Options) (*Client, error) {
	dsn := cfg.GetDSN()
	if dsn == "" {
		return nil, fmt.Errorf("failed to generate DSN for database type: %s", cfg.Type)
	}

	factoriesMu.RLock()
	factory, exists := dialectorFactories[cfg.Driver()]
	factoriesMu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	client, err := Open(ctx, factory(dsn), opts)
	if err != nil {
		return nil, err
	}

	client.cfg = cfg

	sqlDB, err := client.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// 配置连接池
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if opts.Metrics {
		if err := client.RegisterGORMMetrics(cfg.Database, opts.MetricsRefresh); err != nil {
			return nil, fmt.Errorf("failed to register GORM metrics: %w", err)
		}

		nlog.Logger().Info().Msg("GORM metrics registered")
	}

	nlog.Logger().Info().
		Str("type", cfg.GetDBType()).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("database connected")

	return client, nil
}

// Open 使用给定 dialector 打开连接，测试中可直接传入内存数据库.
func Open(ctx context.Context, dialector gorm.Dialector, opts Options) (*Client, error) {
	level := logger.Warn
	if opts.Debug {
		level = logger.Info
	}

	// gorm 日志写入 zerolog
	gormLogger := logger.New(
		nlog.Logger(),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// 测试连接
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{DB: db}, nil
}

// Migrate 自动迁移给定模型.
func (c *Client) Migrate(ctx context.Context, models ...any) error {
	if err := c.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}

// Ping 检查数据库连通性.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// Close 关闭底层连接.
func (c *Client) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Config 返回连接配置.
func (c *Client) Config() configs.DBConfig { return c.cfg }

// RegisterGORMMetrics 注册GORM指标到默认注册表.
func (c *Client) RegisterGORMMetrics(dbName string, refresh uint32) error {
	promConfig := gormPrometheus.Config{
		DBName:          dbName,
		RefreshInterval: refresh,
		StartServer:     false, // 指标由 /metrics 路由统一暴露
	}

	if err := c.Use(gormPrometheus.New(promConfig)); err != nil {
		return fmt.Errorf("failed to register GORM prometheus plugin: %w", err)
	}

	return nil
}
