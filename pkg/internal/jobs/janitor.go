// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/blob"
	"github.com/yeisme/genomeinsight/pkg/log"
	"github.com/yeisme/genomeinsight/pkg/metrics"
	"github.com/yeisme/genomeinsight/pkg/scheduler"
)

// PathIndex 判断存储路径是否仍被元数据记录引用.
type PathIndex interface {
	ExistsByStoragePath(ctx context.Context, path string) (bool, error)
}

// Report 一次清理的结果.
type Report struct {
	Scanned int      `json:"scanned"`
	Skipped int      `json:"skipped"` // 宽限期内的新文件
	Orphans []string `json:"orphans"`
	Claimed int      `json:"claimed"` // 扫描后、删除前被记录引用
	Removed int      `json:"removed"`
	Failed  int      `json:"failed"`
	DryRun  bool     `json:"dry_run"`
}

// Janitor 删除没有任何记录引用的存储内容.
// 补偿删除失败或进程在写入与记录之间崩溃都会留下这类文件.
type Janitor struct {
	blobs blob.Store
	index PathIndex
	cfg   configs.JanitorConfig
	now   func() time.Time
}

// NewJanitor 创建清理任务.
func NewJanitor(blobs blob.Store, index PathIndex, cfg configs.JanitorConfig) *Janitor {
	return &Janitor{blobs: blobs, index: index, cfg: cfg, now: time.Now}
}

// Run 执行一次清理.
// 修改时间晚于 now-GracePeriod 的文件可能属于仍在进行的上传，不做处理.
// S3 分片上传的修改时间是上传开始的时间，宽限期需要大于最长的上传耗时.
// 删除前再查一次索引，跳过扫描之后才写入记录的文件.
func (j *Janitor) Run(ctx context.Context) (Report, error) {
	l := log.Logger().With().Str("job", JobOrphanJanitor).Logger()
	report := Report{Orphans: []string{}, DryRun: j.cfg.DryRun}
	cutoff := j.now().Add(-j.cfg.GracePeriod)

	err := j.blobs.Walk(ctx, func(obj blob.ObjectInfo) error {
		report.Scanned++

		if obj.ModTime.After(cutoff) {
			report.Skipped++
			return nil
		}

		referenced, err := j.index.ExistsByStoragePath(ctx, obj.Path)
		if err != nil {
			return err
		}

		if !referenced {
			report.Orphans = append(report.Orphans, obj.Path)
		}

		return nil
	})
	if err != nil {
		return report, fmt.Errorf("scan blobs: %w", err)
	}

	if j.cfg.DryRun {
		for _, p := range report.Orphans {
			l.Info().Str("path", p).Msg("orphan blob (dry run)")
		}

		return report, nil
	}

	for _, p := range report.Orphans {
		referenced, err := j.index.ExistsByStoragePath(ctx, p)
		if err != nil {
			report.Failed++
			l.Error().Err(err).Str("path", p).Msg("recheck orphan blob failed")

			continue
		}

		if referenced {
			report.Claimed++
			continue
		}

		if err := j.blobs.Delete(ctx, p); err != nil {
			report.Failed++
			l.Error().Err(err).Str("path", p).Msg("remove orphan blob failed")

			continue
		}

		report.Removed++
		metrics.JanitorRemoved.Inc()
	}

	if report.Removed > 0 || report.Failed > 0 {
		l.Info().Int("scanned", report.Scanned).Int("removed", report.Removed).Int("failed", report.Failed).Msg("orphan blobs cleaned")
	}

	if report.Failed > 0 {
		return report, fmt.Errorf("failed to remove %d orphan blobs", report.Failed)
	}

	return report, nil
}

// RegisterCronJobs 按配置注册业务定时任务：
//   - 孤儿文件清理，默认每 30 分钟一次
func RegisterCronJobs(sched *scheduler.Scheduler, janitor *Janitor, cfg configs.JanitorConfig) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if !cfg.Enabled {
		log.Logger().Info().Msg("orphan janitor disabled")
		return nil
	}

	if janitor == nil {
		return fmt.Errorf("janitor is nil")
	}

	return sched.AddCron(JobOrphanJanitor, cfg.Cron, func(ctx context.Context) error {
		_, err := janitor.Run(ctx)
		return err
	})
}
