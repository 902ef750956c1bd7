package app

import (
	"go.uber.org/zap"

	"socialfeedCPT/internal/config"
	"socialfeedCPT/internal/database"
	"socialfeedCPT/internal/locker"
	"socialfeedCPT/internal/repository"
	"socialfeedCPT/internal/service"
	"socialfeedCPT/internal/storage"
)

// App собирает все зависимости явно: жизненным циклом соединений
// управляет вызывающий, никаких глобальных синглтонов
func App(cfg *config.Config, log *zap.SugaredLogger) (*database.DB, *locker.RedisLocker, *service.Service, error) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		db.CloseDB()
		return nil, nil, nil, err
	}

	locks, err := locker.NewRedisLocker(cfg)
	if err != nil {
		db.CloseDB()
		return nil, nil, nil, err
	}

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, db, cfg, minioClient, locks, log)

	return db, locks, services, nil
}
