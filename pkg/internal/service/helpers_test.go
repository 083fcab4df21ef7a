package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/internal/model"
	"github.com/yeisme/genomeinsight/pkg/internal/repository"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/blob"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/db"
)

// mockStore 可注入失败的元数据存储.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Create(ctx context.Context, f *model.UploadedFile) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockStore) Get(ctx context.Context, id string) (*model.UploadedFile, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*model.UploadedFile)

	return rec, args.Error(1)
}

func (m *mockStore) Query(ctx context.Context, filter repository.Filter, limit, offset int) ([]model.UploadedFile, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	files, _ := args.Get(0).([]model.UploadedFile)

	return files, args.Get(1).(int64), args.Error(2)
}

func (m *mockStore) UpdateStatus(ctx context.Context, id string, status model.Status, errMsg *string) error {
	return m.Called(ctx, id, status, errMsg).Error(0)
}

func (m *mockStore) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) ExistsByStoragePath(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)

	return args.Bool(0), args.Error(1)
}

var errWriteFailed = errors.New("disk full")

// failingBlobs 写入总是失败，并记录删除调用.
type failingBlobs struct {
	blob.Store

	mu      sync.Mutex
	deleted []string
}

func (f *failingBlobs) Write(context.Context, string, io.Reader, int64) (int64, error) {
	return 0, errWriteFailed
}

func (f *failingBlobs) Delete(ctx context.Context, p string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, p)
	f.mu.Unlock()

	return f.Store.Delete(ctx, p)
}

var errDeleteFailed = errors.New("permission denied")

// undeletableBlobs 删除总是失败，其余操作委托给内部存储.
type undeletableBlobs struct {
	blob.Store
}

func (undeletableBlobs) Delete(context.Context, string) error { return errDeleteFailed }

// hintRecorder 记录传给存储的 sizeHint.
type hintRecorder struct {
	blob.Store

	hints []int64
}

func (h *hintRecorder) Write(ctx context.Context, p string, r io.Reader, sizeHint int64) (int64, error) {
	h.hints = append(h.hints, sizeHint)
	return h.Store.Write(ctx, p, r, sizeHint)
}

func newLocal(t *testing.T) *blob.Local {
	t.Helper()

	store, err := blob.NewLocal(t.TempDir())
	require.NoError(t, err)

	return store
}

// blobPaths 列出存储中的全部对象.
func blobPaths(t *testing.T, store blob.Store) []string {
	t.Helper()

	var paths []string

	require.NoError(t, store.Walk(context.Background(), func(o blob.ObjectInfo) error {
		paths = append(paths, o.Path)
		return nil
	}))

	return paths
}

func newRepo(t *testing.T) *repository.FileRepository {
	t.Helper()

	ctx := context.Background()
	client, err := db.OpenMemory(ctx, db.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Migrate(ctx, model.AllModels()...))

	return repository.NewFileRepository(client.DB)
}

func assignID(args mock.Arguments) {
	f := args.Get(1).(*model.UploadedFile)
	f.ID = model.NewID(time.Now())
	f.UploadedAt = time.Now()
}
