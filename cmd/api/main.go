package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"foodscroll-go/internal/api/handler"
	"foodscroll-go/internal/api/middleware"
	"foodscroll-go/internal/api/router"
	"foodscroll-go/internal/config"
	"foodscroll-go/internal/infra/database"
	infraES "foodscroll-go/internal/infra/elasticsearch"
	infraKafka "foodscroll-go/internal/infra/kafka"
	infraMinio "foodscroll-go/internal/infra/minio"
	infraRedis "foodscroll-go/internal/infra/redis"
	"foodscroll-go/internal/repository"
	"foodscroll-go/internal/service"
	"foodscroll-go/pkg/logger"

	_ "foodscroll-go/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title FoodScroll API
// @version 1.0
// @description 美食短视频互动与视频流聚合服务

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, logger.FileOptions{
		Path:       cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis（缓存、对账队列、限流）
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 可选依赖保持 nil 接口，业务层据此跳过
	var assets service.AssetVerifier
	if cfg.MinIO.Enabled {
		if err := infraMinio.Init(&cfg.MinIO); err != nil {
			logger.Warn("MinIO init failed, asset verification disabled", zap.Error(err))
		} else {
			assets = infraMinio.NewAssetVerifier(infraMinio.Get(), &cfg.MinIO)
		}
	}

	var publisher service.EventPublisher
	if cfg.Kafka.Enabled {
		producer := infraKafka.NewProducer(&cfg.Kafka)
		defer producer.Close()
		publisher = producer
	}

	var (
		indexer  service.VideoIndexer
		searcher service.VideoSearcher
	)
	if cfg.Elasticsearch.Enabled {
		// 失败则搜索降级到 DB
		if err := infraES.Init(&cfg.Elasticsearch); err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			defer infraES.Close()
			index := infraES.NewVideoIndex(infraES.Get(), cfg.Elasticsearch.VideosIndex())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := index.EnsureIndex(ctx); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
			cancel()
			indexer, searcher = index, index
		}
	}

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	videoRepo := repository.NewVideoRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	userRepo := repository.NewUserRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	redisClient := infraRedis.Get()
	catalogCache := infraRedis.NewCatalogCache(redisClient, cfg.Cache.CatalogTTLDuration())
	dirtySet := infraRedis.NewDirtySet(redisClient)

	partnerService := service.NewPartnerService(partnerRepo, videoRepo, catalogCache)
	videoService := service.NewVideoService(videoRepo, partnerService, assets, indexer)
	feedService := service.NewFeedService(videoRepo, partnerRepo, engagementRepo, cfg.Feed)
	engagementService := service.NewEngagementService(engagementRepo, publisher, dirtySet)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo, partnerService)
	searchService := service.NewSearchService(videoRepo, searcher)

	handlers := router.Handlers{
		Video:      handler.NewVideoHandler(feedService, videoService),
		Engagement: handler.NewEngagementHandler(engagementService),
		Comment:    handler.NewCommentHandler(commentService),
		Partner:    handler.NewPartnerHandler(partnerService),
		Search:     handler.NewSearchHandler(searchService),
	}

	opts := router.Options{
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
	}
	if cfg.RateLimit.Enabled {
		l, err := middleware.NewRateLimiter(cfg.RateLimit.Engagement, redisClient)
		if err != nil {
			logger.Fatal("Failed to init rate limiter", zap.Error(err))
		}
		opts.WriteLimit = middleware.RateLimit(l)
	}

	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	r.GET("/", rootHandler)
	r.GET("/readyz", readyHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, handlers, opts)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.Bool("minio", assets != nil),
		zap.Bool("kafka", publisher != nil),
		zap.Bool("elasticsearch", searcher != nil),
		zap.Bool("ratelimit", opts.WriteLimit != nil),
	)

	if err := serve(r, addr); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}

// serve 启动 HTTP 服务，收到退出信号后优雅关闭
func serve(engine *gin.Engine, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	eg, groupCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Server stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := eg.Wait()
	logger.Info("Server stopped")
	return err
}

// readyHandler 就绪检查：数据库与 Redis 都可用才对外接流量
func readyHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok", "redis": "ok"}
	status := http.StatusOK
	if err := database.Ping(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := infraRedis.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"ready": status == http.StatusOK, "checks": checks})
}

// rootHandler 根路径处理器
func rootHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to %s API", cfg.App.Name),
		"project": cfg.App.Name,
		"version": cfg.App.Version,
		"mode":    cfg.App.Mode,
		"docs":    fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.App.Port),
	})
}
