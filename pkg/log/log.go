// Package log 提供基于 zerolog 的日志工具，支持 stderr 和文件输出（lumberjack 轮转）.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yeisme/genomeinsight/pkg/configs"
)

var (
	mu     sync.RWMutex
	logger *zerolog.Logger
)

// Init 按配置初始化全局 logger，可重复调用（例如配置热重载后）.
func Init(cfg configs.LogConfig, debug bool) {
	l := build(cfg, debug)

	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	mu.Lock()
	logger = &l
	log.Logger = l
	mu.Unlock()
}

// build 根据配置构建 logger.
func build(cfg configs.LogConfig, debug bool) zerolog.Logger {
	// 空级别视为 info，zerolog 会把 "" 解析为 NoLevel
	level := strings.ToLower(strings.TrimSpace(cfg.Level))
	if level == "" {
		level = zerolog.InfoLevel.String()
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q, defaulting to info\n", cfg.Level)

		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)

	// outputs
	var writers []io.Writer

	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = time.Kitchen
	})
	writers = append(writers, console)

	if cfg.EnableFile {
		lj := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writers = append(writers, lj)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With()
	if debug {
		ctx = ctx.Caller().Stack()
	}

	return ctx.Timestamp().Logger()
}

// Logger 返回全局 logger，未初始化时使用 info 级别的控制台输出.
func Logger() *zerolog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()

	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		fallback := build(configs.LogConfig{Level: "info"}, false)
		logger = &fallback
	}

	return logger
}

// GinWriter 把 Gin 文本行转发为 zerolog 事件.
type GinWriter struct {
	logger *zerolog.Logger
	level  zerolog.Level
}

func NewGinWriter(logger *zerolog.Logger, level zerolog.Level) *GinWriter {
	return &GinWriter{logger: logger, level: level}
}

func (w *GinWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg == "" {
		return len(p), nil
	}

	switch w.level {
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		w.logger.Error().Msg(msg)
	case zerolog.WarnLevel:
		w.logger.Warn().Msg(msg)
	default:
		w.logger.Info().Msg(msg)
	}

	return len(p), nil
}
