// Package app 提供应用程序的初始化和运行功能，所有依赖在这里显式创建并注入.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/genomeinsight/pkg/api"
	"github.com/yeisme/genomeinsight/pkg/cache"
	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/handle"
	"github.com/yeisme/genomeinsight/pkg/internal/jobs"
	"github.com/yeisme/genomeinsight/pkg/internal/repository"
	"github.com/yeisme/genomeinsight/pkg/internal/service"
	"github.com/yeisme/genomeinsight/pkg/internal/storage"
	"github.com/yeisme/genomeinsight/pkg/internal/validate"
	"github.com/yeisme/genomeinsight/pkg/log"
	"github.com/yeisme/genomeinsight/pkg/metrics"
	"github.com/yeisme/genomeinsight/pkg/scheduler"
	"github.com/yeisme/genomeinsight/pkg/tracing"
)

// detailCachePrefix 文件详情缓存键前缀.
const detailCachePrefix = "file:"

// shutdownTimeout 优雅退出时等待进行中请求的最长时间.
const shutdownTimeout = 30 * time.Second

// App 持有运行期的全部组件.
type App struct {
	Engine *gin.Engine

	config  *configs.AppConfig
	viper   *viper.Viper
	manager *storage.Manager
	sched   *scheduler.Scheduler
	server  *http.Server
}

// Bootstrap 加载配置并初始化日志、追踪与指标，供需要配置但不启动服务的命令复用.
func Bootstrap(ctx context.Context, configPath string) (*configs.AppConfig, *viper.Viper, error) {
	cfg, v, err := configs.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log.Init(cfg.Log, cfg.Server.Debug)

	if err := tracing.InitTracer(ctx, cfg.Tracing); err != nil {
		return nil, nil, fmt.Errorf("init tracing: %w", err)
	}

	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
		return nil, nil, fmt.Errorf("init metrics: %w", err)
	}

	return cfg, v, nil
}

// NewApp 创建应用，任意一步失败都会释放已创建的资源.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	cfg, v, err := Bootstrap(ctx, configPath)
	if err != nil {
		return nil, err
	}

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	manager, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	repo := repository.NewFileRepository(manager.DB.DB)
	publisher := manager.MQ.Publisher()

	intake := service.NewIntakeService(manager.Blob, validate.NewFromConfig(cfg.Upload), repo, publisher)
	// 上传策略随配置热重载更新
	configs.OnReload(func(next configs.AppConfig) {
		intake.SetValidator(validate.NewFromConfig(next.Upload))
		l.Info().Int64("max_file_size", next.Upload.MaxFileSize).Msg("upload policy reloaded")
	})

	files := service.NewFileService(repo, cache.NewCache(manager.KV, detailCachePrefix, cfg.KV.TTL), publisher)

	janitor := jobs.NewJanitor(manager.Blob, repo, cfg.Janitor)
	if err := jobs.RegisterCronJobs(sched, janitor, cfg.Janitor); err != nil {
		_ = sched.Shutdown()
		_ = manager.Close()

		return nil, fmt.Errorf("register jobs: %w", err)
	}

	engine := api.NewEngine(cfg, api.Handlers{
		Files:     handle.NewFileHandlers(intake, files),
		Health:    handle.Health(manager, manager.Blob.Kind(), string(manager.MQ.Kind())),
		Scheduler: handle.NewSchedulerHandlers(sched),
	})

	return &App{
		Engine:  engine,
		config:  cfg,
		viper:   v,
		manager: manager,
		sched:   sched,
		server: &http.Server{
			Addr:    net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
			Handler: engine,
			// 上传可能持续很久，只限制请求头读取与空闲连接
			ReadHeaderTimeout: cfg.Server.GetTimeoutDuration(),
			IdleTimeout:       2 * cfg.Server.GetTimeoutDuration(),
		},
	}, nil
}

// Config 返回生效的配置.
func (a *App) Config() *configs.AppConfig { return a.config }

// ConfigFileUsed 返回实际读取的配置文件路径.
func (a *App) ConfigFileUsed() string { return a.viper.ConfigFileUsed() }

// Run 启动 HTTP 服务与定时任务，ctx 取消后优雅退出.
func (a *App) Run(ctx context.Context) error {
	l := log.Logger()
	g, gctx := errgroup.WithContext(ctx)

	a.sched.Start()

	g.Go(func() error {
		l.Info().Str("addr", a.server.Addr).Str("version", configs.AppVersion).Msg("http server listening")

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		l.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return a.server.Shutdown(shutdownCtx)
	})

	err := g.Wait()

	return errors.Join(err, a.Close())
}

// Close 释放调度器、追踪与存储资源.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return errors.Join(
		a.sched.Shutdown(),
		tracing.ShutdownTracer(ctx),
		a.manager.Close(),
	)
}
