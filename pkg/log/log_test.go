package log_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/log"
)

func TestLoggerFallback(t *testing.T) {
	require.NotNil(t, log.Logger())
}

func TestInitEmptyLevelIsInfo(t *testing.T) {
	log.Init(configs.LogConfig{}, false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	log.Init(configs.LogConfig{Level: "debug"}, false)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	log.Init(configs.LogConfig{Level: "info"}, false)
}

func TestGinWriter(t *testing.T) {
	var buf bytes.Buffer

	l := zerolog.New(&buf)
	w := log.NewGinWriter(&l, zerolog.WarnLevel)

	n, err := w.Write([]byte("[GIN-debug] route registered\n"))
	require.NoError(t, err)
	assert.Equal(t, len("[GIN-debug] route registered\n"), n)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "route registered")
}
