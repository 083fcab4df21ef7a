package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/db"
)

func TestRegisteredDBTypes(t *testing.T) {
	types := db.GetRegisteredDBTypes()
	assert.Contains(t, types, configs.SQLite)
	assert.Contains(t, types, configs.PostgreSQL)
	assert.Contains(t, types, configs.MySQL)
}

func TestOpenInMemory(t *testing.T) {
	ctx := context.Background()

	client, err := db.OpenMemory(ctx, db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	type scratchTable struct {
		ID   uint
		Name string
	}

	require.NoError(t, client.Migrate(ctx, &scratchTable{}))
	require.NoError(t, client.Ping(ctx))
	assert.True(t, client.Migrator().HasTable(&scratchTable{}))
}

func TestNewRejectsUnknownType(t *testing.T) {
	_, err := db.New(context.Background(), configs.DBConfig{Type: "oracle", Database: "x"}, db.Options{})
	assert.Error(t, err)
}

func TestNewSQLiteFile(t *testing.T) {
	cfg := configs.DBConfig{
		Type:         configs.SQLite,
		DSN:          "file:" + t.TempDir() + "/meta.db",
		MaxIdleConns: 1,
	}

	client, err := db.New(context.Background(), cfg, db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.Equal(t, "SQLite", client.Config().GetDBType())
}
