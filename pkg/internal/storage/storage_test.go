package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/model"
	"github.com/yeisme/genomeinsight/pkg/internal/storage"
)

func TestNewLocalStack(t *testing.T) {
	dir := t.TempDir()

	cfg := &configs.AppConfig{
		DB: configs.DBConfig{
			Type:         configs.SQLite,
			DSN:          "file:" + filepath.Join(dir, "meta.db"),
			MaxIdleConns: 1,
			AutoMigrate:  true,
		},
		Storage: configs.StorageConfig{
			Type:  configs.StorageLocal,
			Local: configs.LocalStorageConfig{Root: filepath.Join(dir, "uploads")},
		},
		KV: configs.KVConfig{Type: configs.KVMemory},
		MQ: configs.MQConfig{Type: configs.MQTypeGoChannel},
	}

	mgr, err := storage.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })

	assert.Equal(t, "local", mgr.Blob.Kind())
	assert.True(t, mgr.DB.Migrator().HasTable(&model.UploadedFile{}))
	require.NoError(t, mgr.HealthCheck(context.Background()))
}

func TestNewFailsOnUnknownStorage(t *testing.T) {
	cfg := &configs.AppConfig{
		DB: configs.DBConfig{
			Type:         configs.SQLite,
			DSN:          "file:" + filepath.Join(t.TempDir(), "meta.db"),
			MaxIdleConns: 1,
		},
		Storage: configs.StorageConfig{Type: "ftp"},
	}

	_, err := storage.New(context.Background(), cfg)
	assert.Error(t, err)
}
