package db

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
)

// OpenMemory 打开纯 Go 的内存 SQLite，所有查询共用同一连接.
func OpenMemory(ctx context.Context, opts Options) (*Client, error) {
	client, err := Open(ctx, sqlite.Open(":memory:"), opts)
	if err != nil {
		return nil, err
	}

	sqlDB, err := client.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// 每个连接都是独立的内存库
	sqlDB.SetMaxOpenConns(1)

	return client, nil
}
