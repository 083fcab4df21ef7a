//go:build !no_sqlite && !cgo

package db

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

// 纯 Go SQLite，无需 CGo.
func init() {
	RegisterDialectorFactory(configs.SQLite, func(dsn string) gorm.Dialector {
		return sqlite.Open(dsn)
	})
}
