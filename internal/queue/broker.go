package queue

import (
	"github.com/hibiken/asynq"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/config"
)

// RedisOpt asynq broker 连接参数，与缓存共用同一个 Redis
func RedisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
