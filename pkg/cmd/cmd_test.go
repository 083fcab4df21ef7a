package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", t.TempDir()))

	err := rootCmd.Execute()

	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, "classify", "sample.vcf.gz", "README")
	require.NoError(t, err)

	assert.Contains(t, out, "sample.vcf.gz\t.vcf.gz\tvariant_call")
	assert.Contains(t, out, "README\t(none)\tunknown")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "sample.vcf")
	require.NoError(t, os.WriteFile(good, []byte("##fileformat=VCFv4.2\n"), 0o600))

	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, `"is_valid": true`)

	bad := filepath.Join(dir, "tool.exe")
	require.NoError(t, os.WriteFile(bad, []byte("MZ"), 0o600))

	out, err = run(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, out, "unsupported file extension")
}

func TestConfigPathWithoutFile(t *testing.T) {
	out, err := run(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "no config file used")
}

func TestStorageList(t *testing.T) {
	out, err := run(t, "storage", "ls")
	require.NoError(t, err)

	assert.Contains(t, out, "memory")
	assert.Contains(t, out, "gochannel")
	assert.Contains(t, out, "s3")
}
