package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/config"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/queue"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/database"
	applogger "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/logger"
)

// 通知 worker：消费 asynq 通知任务并写入 notifications 表
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 迁移由 API 进程负责，worker 只连接
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	srv := asynq.NewServer(
		queue.RedisOpt(&cfg.Redis),
		asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			Queues:      map[string]int{cfg.Queue.NotificationQueue: 1},
			Logger:      logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	queue.NewNotificationHandler(repository.NewRepository(db), logger).Register(mux)

	logger.Info("通知 worker 启动中",
		zap.Int("concurrency", cfg.Queue.Concurrency),
		zap.String("queue", cfg.Queue.NotificationQueue),
	)
	if err := srv.Start(mux); err != nil {
		logger.Fatal("worker 启动失败", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("收到关闭信号，等待进行中的任务完成...", zap.String("signal", sig.String()))

	srv.Shutdown()
	logger.Info("worker 已关闭")
}
