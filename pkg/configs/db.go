package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

type (
	DBType string
)

const (
	// PostgreSQL 协议.
	PostgreSQL DBType = "postgresql"
	Postgres   DBType = "postgres"
	Pg         DBType = "pg"

	// MySQL 协议.
	MySQL   DBType = "mysql"
	MariaDB DBType = "mariadb"
	// SQLite 协议.
	SQLite DBType = "sqlite"
)

const (
	DefaultDatabaseType     = SQLite          // 默认使用 SQLite，便于本地开发
	DefaultDatabaseHost     = "localhost"     // 默认数据库主机
	DefaultDatabasePort     = 5432            // 默认数据库端口
	DefaultDatabaseUser     = "genomeinsight" // 默认数据库用户
	DefaultDatabasePassword = ""              // 默认数据库密码
	DefaultDatabaseName     = "genomeinsight" // 默认数据库名称
	DefaultDatabaseSSLMode  = "disable"       // 默认数据库SSL模式
	DefaultMaxOpenConns     = 0               // 默认不限制打开连接数
	DefaultMaxIdleConns     = 5               // 默认最大空闲连接数
	DefaultConnMaxLifetime  = 300             // 连接最大存活时间（秒）
	DefaultAutoMigrate      = true            // 启动时自动迁移
)

// DBConfig 数据库配置.
type DBConfig struct {
	Type            DBType `mapstructure:"type"              rule:"oneof=postgresql postgres pg mysql mariadb sqlite"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"              rule:"min=0,max=65535"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"          json:"-"`
	Database        string `mapstructure:"database"          rule:"required"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"    rule:"min=0"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"    rule:"min=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" rule:"min=0"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	// DSN 直接指定连接串时忽略上面的主机、端口等字段
	DSN string `mapstructure:"dsn" json:"-"`
}

// GetDBType 返回数据库类型的字符串表示.
func (c *DBConfig) GetDBType() string {
	switch c.Type {
	case PostgreSQL, Postgres, Pg:
		return "PostgreSQL"
	case MySQL, MariaDB:
		return "MySQL"
	case SQLite:
		return "SQLite"
	default:
		return "Unknown"
	}
}

// Driver 返回用于查找 dialector 工厂的规范化类型.
func (c *DBConfig) Driver() DBType {
	switch c.Type {
	case PostgreSQL, Postgres, Pg:
		return PostgreSQL
	case MySQL, MariaDB:
		return MySQL
	default:
		return c.Type
	}
}

// GetDSN 获取数据库的连接字符串，根据不同的数据库类型返回不同格式的DSN.
func (c *DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}

	dsnMap := map[DBType]func() string{
		PostgreSQL: c.getPgSQLDSN,
		MySQL:      c.getMySQLDSN,
		SQLite:     c.getSQLiteDSN,
	}

	if fn, ok := dsnMap[c.Driver()]; ok {
		return fn()
	}

	return ""
}

// getPgSQLDSN 获取PostgreSQL的DSN.
func (c *DBConfig) getPgSQLDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// getMySQLDSN 获取MySQL的DSN.
func (c *DBConfig) getMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// getSQLiteDSN 获取SQLite的DSN.
func (c *DBConfig) getSQLiteDSN() string {
	return fmt.Sprintf("file:%s.db", c.Database)
}

// setDefaults 设置数据库配置的默认值.
func (c *DBConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("db.type", DefaultDatabaseType)
	v.SetDefault("db.host", DefaultDatabaseHost)
	v.SetDefault("db.port", DefaultDatabasePort)
	v.SetDefault("db.user", DefaultDatabaseUser)
	v.SetDefault("db.password", DefaultDatabasePassword)
	v.SetDefault("db.database", DefaultDatabaseName)
	v.SetDefault("db.sslmode", DefaultDatabaseSSLMode)
	v.SetDefault("db.max_open_conns", DefaultMaxOpenConns)
	v.SetDefault("db.max_idle_conns", DefaultMaxIdleConns)
	v.SetDefault("db.conn_max_lifetime", DefaultConnMaxLifetime)
	v.SetDefault("db.auto_migrate", DefaultAutoMigrate)
	v.SetDefault("db.dsn", "")
}
