package blob_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/internal/storage/blob"
)

func newLocal(t *testing.T) *blob.Local {
	t.Helper()

	store, err := blob.NewLocal(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	return store
}

func TestLocalWriteOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := newLocal(t)

	n, err := store.Write(ctx, "a/sample.vcf", strings.NewReader("##fileformat=VCFv4.2\n"), -1)
	require.NoError(t, err)
	assert.Equal(t, int64(21), n)

	ok, err := store.Exists(ctx, "a/sample.vcf")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := store.Open(ctx, "a/sample.vcf")
	require.NoError(t, err)

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "##fileformat=VCFv4.2\n", string(body))

	require.NoError(t, store.Delete(ctx, "a/sample.vcf"))
	// 删除不存在的路径不是错误
	require.NoError(t, store.Delete(ctx, "a/sample.vcf"))

	ok, err = store.Exists(ctx, "a/sample.vcf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Open(ctx, "a/sample.vcf")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestLocalRejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	store := newLocal(t)

	for _, p := range []string{"", "/etc/passwd", "../outside", "a/../../x", `a\b`} {
		_, err := store.Write(ctx, p, strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, blob.ErrInvalidPath, p)
	}
}

func TestLocalWriteCancelledLeavesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := newLocal(t)

	_, err := store.Write(ctx, "cancelled.vcf", strings.NewReader("data"), -1)
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalWalk(t *testing.T) {
	ctx := context.Background()
	store := newLocal(t)

	for _, p := range []string{"one.vcf", "nested/two.bam"} {
		_, err := store.Write(ctx, p, bytes.NewReader([]byte("xx")), 2)
		require.NoError(t, err)
	}

	// 未完成的临时文件不参与遍历
	require.NoError(t, os.WriteFile(filepath.Join(store.Root(), "three.vcf.123.tmp"), []byte("x"), 0o600))

	var seen []string

	err := store.Walk(ctx, func(o blob.ObjectInfo) error {
		seen = append(seen, o.Path)
		assert.Equal(t, int64(2), o.Size)
		assert.False(t, o.ModTime.IsZero())

		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one.vcf", "nested/two.bam"}, seen)

	stop := errors.New("stop")
	assert.ErrorIs(t, store.Walk(ctx, func(blob.ObjectInfo) error { return stop }), stop)
}

func TestNewLocalEmptyRoot(t *testing.T) {
	_, err := blob.NewLocal("")
	assert.Error(t, err)
}
