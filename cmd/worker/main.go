package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodscroll-go/internal/config"
	"foodscroll-go/internal/infra/database"
	infraES "foodscroll-go/internal/infra/elasticsearch"
	infraKafka "foodscroll-go/internal/infra/kafka"
	infraRedis "foodscroll-go/internal/infra/redis"
	"foodscroll-go/internal/repository"
	"foodscroll-go/internal/service"
	"foodscroll-go/pkg/logger"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const reindexBatch = 200

// worker 后台任务共享的依赖
type worker struct {
	cfg       *config.Config
	videoRepo *repository.VideoRepository
	index     *infraES.VideoIndex
	reconcile *service.ReconcileService
}

func main() {
	app := &cli.App{
		Name:  "foodscroll-worker",
		Usage: "计数对账与搜索索引维护",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				Usage:   "配置文件路径",
			},
		},
		// 默认启动常驻任务
		Action: runDaemon,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "常驻运行：定时消费脏集合对账，消费互动事件刷新索引与商家主页缓存",
				Action: runDaemon,
			},
			{
				Name:   "reconcile",
				Usage:  "全量对账一次后退出",
				Action: runReconcileAll,
			},
			{
				Name:   "reindex",
				Usage:  "重建视频搜索索引",
				Action: runReindex,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		// 配置加载失败时日志尚未初始化，直接输出到 stderr
		fmt.Fprintln(os.Stderr, "worker:", err)
		os.Exit(1)
	}
}

// setup 加载配置并初始化依赖，返回的 cleanup 负责释放连接
func setup(c *cli.Context) (*worker, func(), error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, logger.FileOptions{
		Path:       cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to init redis: %w", err)
	}

	w := &worker{
		cfg:       cfg,
		videoRepo: repository.NewVideoRepository(database.Get()),
	}

	var indexer service.VideoIndexer
	if cfg.Elasticsearch.Enabled {
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			logger.Warn("Elasticsearch init failed, index refresh disabled", zap.Error(err))
		} else {
			w.index = infraES.NewVideoIndex(infraES.Get(), cfg.Elasticsearch.VideosIndex())
			indexer = w.index
		}
	}

	// 计数变化后清理商家主页缓存
	catalogCache := infraRedis.NewCatalogCache(infraRedis.Get(), cfg.Cache.CatalogTTLDuration())
	partners := service.NewPartnerService(repository.NewPartnerRepository(database.Get()), w.videoRepo, catalogCache)

	w.reconcile = service.NewReconcileService(w.videoRepo, infraRedis.NewDirtySet(infraRedis.Get()), indexer, partners)

	cleanup := func() {
		if w.index != nil {
			infraES.Close()
		}
		infraRedis.Close()
		database.Close()
		logger.Sync()
	}
	return w, cleanup, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

func runDaemon(c *cli.Context) error {
	w, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext(c.Context)
	defer stop()

	eg, groupCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		w.reconcileLoop(groupCtx)
		return nil
	})

	if w.cfg.Kafka.Enabled {
		eg.Go(func() error {
			infraKafka.StartEngagementConsumer(groupCtx,
				w.cfg.Kafka.Brokers,
				w.cfg.Kafka.EngagementTopic(),
				w.cfg.Kafka.GroupID,
				w.reconcile.HandleEngagement,
			)
			return nil
		})
	}

	logger.Info("Worker started",
		zap.Duration("reconcile_interval", w.cfg.Reconcile.IntervalDuration()),
		zap.Int("batch_size", w.cfg.Reconcile.BatchSize),
		zap.Bool("kafka", w.cfg.Kafka.Enabled),
	)

	err = eg.Wait()
	logger.Info("Worker stopped")
	return err
}

// reconcileLoop 定时消费脏集合，直到 ctx 取消
func (w *worker) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Reconcile.IntervalDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := w.reconcile.ReconcileDirty(ctx, w.cfg.Reconcile.BatchSize)
			if err != nil {
				logger.Error("Reconcile dirty videos failed", zap.Error(err))
				continue
			}
			if result.Checked > 0 {
				logger.Info("Reconcile dirty videos done",
					zap.Int("checked", result.Checked),
					zap.Int("drifted", result.Drifted),
					zap.Int("failed", result.Failed),
					zap.Int64("pending", result.Pending),
				)
			}
		}
	}
}

func runReconcileAll(c *cli.Context) error {
	w, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext(c.Context)
	defer stop()

	start := time.Now()
	result, err := w.reconcile.ReconcileAll(ctx)
	if err != nil {
		return fmt.Errorf("reconcile all: %w", err)
	}

	logger.Info("Full reconcile done",
		zap.Int("checked", result.Checked),
		zap.Int("drifted", result.Drifted),
		zap.Int("failed", result.Failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func runReindex(c *cli.Context) error {
	w, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	if w.index == nil {
		return fmt.Errorf("elasticsearch is not available")
	}

	ctx, stop := signalContext(c.Context)
	defer stop()

	if err := w.index.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	var (
		afterID         int64
		success, failed int
	)
	for {
		ids, err := w.videoRepo.ListIDsAfter(ctx, afterID, reindexBatch)
		if err != nil {
			return fmt.Errorf("list video ids: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		videos, err := w.videoRepo.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("load videos: %w", err)
		}

		ok, bad, err := w.index.BulkIndex(ctx, videos)
		if err != nil {
			return fmt.Errorf("bulk index: %w", err)
		}
		success += ok
		failed += bad
		afterID = ids[len(ids)-1]
	}

	logger.Info("Reindex done", zap.Int("success", success), zap.Int("failed", failed))
	return nil
}
