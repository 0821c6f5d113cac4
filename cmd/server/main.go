package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/config"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/api/handler"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/api/router"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/queue"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/service"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/database"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/jwt"
	applogger "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/logger"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单与分布式限流将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 通知队列：Redis 不可用时不发送通知
	var notifier service.Notifier = service.NopNotifier{}
	var taskClient *asynq.Client
	if rdb != nil {
		taskClient = asynq.NewClient(queue.RedisOpt(&cfg.Redis))
		notifier = queue.NewEmitter(taskClient, &cfg.Queue, logger)
	}

	// 6. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	var revoker service.TokenRevoker
	if rdb != nil {
		revoker = rdb
	}
	svc := service.NewService(cfg, repo, notifier, revoker, logger)

	probes := map[string]handler.Probe{"database": sqlDB.PingContext}
	if rdb != nil {
		probes["redis"] = rdb.Ping
	}
	h := handler.NewHandler(svc, probes)

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if taskClient != nil {
		taskClient.Close()
	}
	sqlDB.Close()
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
