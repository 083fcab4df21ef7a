package configs

import (
	"time"

	"github.com/spf13/viper"
)

// KVType 键值缓存类型.
type KVType string

const (
	KVMemory KVType = "memory"
	KVRedis  KVType = "redis"
	KVNATS   KVType = "nats"

	DefaultKVTTL = 5 * time.Minute // 记录详情缓存时长
)

// KVConfig 键值存储配置，用于缓存文件记录详情.
type KVConfig struct {
	Type  KVType        `mapstructure:"type"  rule:"oneof=memory redis nats"`
	TTL   time.Duration `mapstructure:"ttl"   rule:"min=0"`
	Redis RedisKVConfig `mapstructure:"redis"`
	NATS  NATSKVConfig  `mapstructure:"nats"`
}

// NATSKVConfig NATS JetStream KV 配置，bucket 级 TTL 取 kv.ttl.
type NATSKVConfig struct {
	URL      string `mapstructure:"url"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password" json:"-"`
	Bucket   string `mapstructure:"bucket"`
}

// RedisKVConfig Redis KV 配置.
type RedisKVConfig struct {
	Addr     string `mapstructure:"addr"     rule:"hostname_port"`
	Password string `mapstructure:"password" json:"-"`
	DB       int    `mapstructure:"db"       rule:"min=0,max=15"`
	Prefix   string `mapstructure:"prefix"`
}

// setDefaults 设置 KV 配置的默认值.
func (c *KVConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("kv.type", KVMemory)
	v.SetDefault("kv.ttl", DefaultKVTTL)

	// Redis 默认值
	v.SetDefault("kv.redis.addr", "localhost:6379")
	v.SetDefault("kv.redis.password", "")
	v.SetDefault("kv.redis.db", 0)
	v.SetDefault("kv.redis.prefix", "genomeinsight:")

	// NATS KV 默认值
	v.SetDefault("kv.nats.url", DefaultMQURL)
	v.SetDefault("kv.nats.bucket", "genomeinsight_files")
}
