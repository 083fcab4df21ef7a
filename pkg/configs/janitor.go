package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultJanitorCron        = "*/30 * * * *"   // 每30分钟扫描一次
	DefaultJanitorGracePeriod = 10 * time.Minute // 新写入的文件在宽限期内不视为孤儿，需大于最长上传耗时
)

// JanitorConfig 孤儿文件清理任务配置.
type JanitorConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Cron        string        `mapstructure:"cron"         rule:"required"`
	GracePeriod time.Duration `mapstructure:"grace_period" rule:"min=0"`
	DryRun      bool          `mapstructure:"dry_run"`
}

func (c *JanitorConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("janitor.enabled", true)
	v.SetDefault("janitor.cron", DefaultJanitorCron)
	v.SetDefault("janitor.grace_period", DefaultJanitorGracePeriod)
	v.SetDefault("janitor.dry_run", false)
}
