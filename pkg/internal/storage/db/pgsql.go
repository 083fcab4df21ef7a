//go:build !no_postgres

package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

func init() {
	RegisterDialectorFactory(configs.PostgreSQL, func(dsn string) gorm.Dialector {
		return postgres.Open(dsn)
	})
}
