package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/blob"
	"github.com/yeisme/genomeinsight/pkg/metrics"
	"github.com/yeisme/genomeinsight/pkg/scheduler"
)

// pathSet 内存中的路径索引.
type pathSet map[string]bool

func (s pathSet) ExistsByStoragePath(_ context.Context, p string) (bool, error) {
	return s[p], nil
}

type brokenIndex struct{}

func (brokenIndex) ExistsByStoragePath(context.Context, string) (bool, error) {
	return false, errors.New("database is locked")
}

// lateIndex 第一次查询时路径未被引用，之后被引用，模拟扫描与删除之间写入的记录.
type lateIndex struct {
	calls map[string]int
}

func (l *lateIndex) ExistsByStoragePath(_ context.Context, p string) (bool, error) {
	l.calls[p]++
	return l.calls[p] > 1, nil
}

// stubbornStore 删除总是失败.
type stubbornStore struct {
	blob.Store
}

func (stubbornStore) Delete(context.Context, string) error { return errors.New("permission denied") }

func seed(t *testing.T, paths ...string) *blob.Local {
	t.Helper()

	store, err := blob.NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, p := range paths {
		_, err := store.Write(context.Background(), p, strings.NewReader("##fileformat=VCFv4.2\n"), -1)
		require.NoError(t, err)
	}

	return store
}

// newJanitor 时钟拨快一小时，使已写入的文件都超过宽限期.
func newJanitor(store blob.Store, index PathIndex, dryRun bool) *Janitor {
	j := NewJanitor(store, index, configs.JanitorConfig{
		Enabled:     true,
		Cron:        configs.DefaultJanitorCron,
		GracePeriod: 10 * time.Minute,
		DryRun:      dryRun,
	})
	now := time.Now().Add(time.Hour)
	j.now = func() time.Time { return now }

	return j
}

func TestJanitorRemovesOrphans(t *testing.T) {
	store := seed(t, "2025/01/kept.vcf", "2025/01/orphan.vcf", "2025/02/deleted.bam")
	index := pathSet{"2025/01/kept.vcf": true, "2025/02/deleted.bam": true}

	before := testutil.ToFloat64(metrics.JanitorRemoved)

	report, err := newJanitor(store, index, false).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, []string{"2025/01/orphan.vcf"}, report.Orphans)
	assert.Equal(t, 1, report.Removed)
	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.JanitorRemoved), 0.001)

	ok, err := store.Exists(context.Background(), "2025/01/orphan.vcf")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Exists(context.Background(), "2025/01/kept.vcf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestJanitorDryRunKeepsFiles(t *testing.T) {
	store := seed(t, "2025/01/orphan.vcf")

	report, err := newJanitor(store, pathSet{}, true).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, []string{"2025/01/orphan.vcf"}, report.Orphans)
	assert.Zero(t, report.Removed)

	ok, err := store.Exists(context.Background(), "2025/01/orphan.vcf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestJanitorSkipsFreshFiles(t *testing.T) {
	store := seed(t, "2025/01/uploading.vcf")
	j := newJanitor(store, pathSet{}, false)

	fresh := j.now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(store.Root(), "2025", "01", "uploading.vcf"), fresh, fresh))

	report, err := j.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Orphans)
}

func TestJanitorIndexFailureAborts(t *testing.T) {
	store := seed(t, "2025/01/a.vcf")

	_, err := newJanitor(store, brokenIndex{}, false).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")

	ok, _ := store.Exists(context.Background(), "2025/01/a.vcf")
	assert.True(t, ok)
}

func TestJanitorDeleteFailureReported(t *testing.T) {
	store := seed(t, "2025/01/a.vcf")

	report, err := newJanitor(stubbornStore{store}, pathSet{}, false).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Removed)
}

func TestRegisterCronJobs(t *testing.T) {
	sched, err := scheduler.NewScheduler()
	require.NoError(t, err)

	t.Cleanup(func() { _ = sched.Shutdown() })

	cfg := configs.JanitorConfig{Enabled: false, Cron: configs.DefaultJanitorCron}
	require.NoError(t, RegisterCronJobs(sched, nil, cfg))
	assert.Empty(t, sched.GetJobInfos())

	cfg.Enabled = true
	assert.Error(t, RegisterCronJobs(sched, nil, cfg))
	assert.Error(t, RegisterCronJobs(nil, nil, cfg))

	require.NoError(t, RegisterCronJobs(sched, newJanitor(seed(t), pathSet{}, false), cfg))

	infos := sched.GetJobInfos()
	require.Len(t, infos, 1)
	assert.Equal(t, JobOrphanJanitor, infos[0].Name)
}

func TestJanitorSkipsBlobsClaimedAfterScan(t *testing.T) {
	store := seed(t, "2025/01/late.vcf")
	index := &lateIndex{calls: map[string]int{}}

	report, err := newJanitor(store, index, false).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"2025/01/late.vcf"}, report.Orphans)
	assert.Equal(t, 1, report.Claimed)
	assert.Zero(t, report.Removed)
	assert.Equal(t, 2, index.calls["2025/01/late.vcf"])

	ok, err := store.Exists(context.Background(), "2025/01/late.vcf")
	require.NoError(t, err)
	assert.True(t, ok)
}
