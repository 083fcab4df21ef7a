// Package storage 聚合服务依赖的存储资源：元数据库、文件内容存储、详情缓存与事件总线.
//
// Manager 由调用方显式创建并注入到各个服务中：
//
//	mgr, err := storage.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
//
//	repo := repository.NewFileRepository(mgr.DB)
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/model"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/blob"
	dbc "github.com/yeisme/genomeinsight/pkg/internal/storage/db"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/kv"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/mq"
	nlog "github.com/yeisme/genomeinsight/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	DB   *dbc.Client
	Blob blob.Store
	KV   kv.KVStore
	MQ   *mq.Client
}

// New 按配置初始化全部存储资源；任意一步失败会关闭已创建的资源.
func New(ctx context.Context, cfg *configs.AppConfig) (_ *Manager, err error) {
	m := &Manager{}

	defer func() {
		if err != nil {
			_ = m.Close()
		}
	}()

	if m.DB, err = dbc.New(ctx, cfg.DB, dbc.Options{
		Metrics:        cfg.Metrics.Enabled && cfg.Metrics.DBMetrics,
		MetricsRefresh: cfg.Metrics.DBRefresh,
		Debug:          cfg.Server.Debug,
	}); err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if cfg.DB.AutoMigrate {
		if err = m.DB.Migrate(ctx, model.AllModels()...); err != nil {
			return nil, err
		}
	}

	if m.Blob, err = blob.New(ctx, cfg.Storage); err != nil {
		return nil, fmt.Errorf("init blob storage: %w", err)
	}

	if m.KV, err = kv.New(ctx, cfg.KV); err != nil {
		return nil, fmt.Errorf("init kv: %w", err)
	}

	if m.MQ, err = mq.New(ctx, cfg.MQ, mq.Options{Metrics: cfg.Metrics.Enabled}); err != nil {
		return nil, fmt.Errorf("init mq: %w", err)
	}

	nlog.Logger().Info().
		Str("db", cfg.DB.GetDBType()).
		Str("blob", m.Blob.Kind()).
		Str("kv", string(cfg.KV.Type)).
		Str("mq", string(m.MQ.Kind())).
		Msg("storage manager initialized")

	return m, nil
}

// Close 释放所有资源.
func (m *Manager) Close() error {
	var errs []error

	if m.MQ != nil {
		errs = append(errs, m.MQ.Close())
	}

	if m.KV != nil {
		errs = append(errs, m.KV.Close())
	}

	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}

	return errors.Join(errs...)
}

// HealthCheck 检查数据库连通性，远程缓存与 S3 后端支持时一并检查.
func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.DB == nil {
		return errors.New("database not initialized")
	}

	if err := m.DB.Ping(ctx); err != nil {
		return err
	}

	if p, ok := m.KV.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("kv: %w", err)
		}
	}

	if hc, ok := m.Blob.(interface{ HealthCheck(context.Context) error }); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("blob: %w", err)
		}
	}

	return nil
}
