package app

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/AnjaliPai16/Welly-sub000/internal/config"
	"github.com/AnjaliPai16/Welly-sub000/internal/db"
	"github.com/AnjaliPai16/Welly-sub000/internal/logger"
	"github.com/AnjaliPai16/Welly-sub000/internal/redis"
)

type Infra struct {
	DB *db.DB

	// Redis is nil when REDIS_ADDR is unset; only the hosted login
	// flow state needs it.
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunIdentityMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	infra := &Infra{DB: &db.DB{DB: sqlDB}}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		infra.Redis = redisClient
		logger.Info("redis ready", nil)
	}

	return infra, nil
}
