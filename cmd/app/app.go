package app

import (
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/espacios-app/reservas-api/internal/api"
	"github.com/espacios-app/reservas-api/internal/cache"
	"github.com/espacios-app/reservas-api/internal/config"
	"github.com/espacios-app/reservas-api/internal/db"
	"github.com/espacios-app/reservas-api/internal/events"
	"github.com/espacios-app/reservas-api/internal/logger"
	"github.com/espacios-app/reservas-api/internal/service"
)

func Start() {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer func() {
		_ = zap.L().Sync()
	}()

	gormDB, err := openDatabase(conf)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}

	rdb := cache.NewRedisClient(conf.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	var publisher service.EventPublisher
	if amqpPub, err := events.NewAMQPPublisher(conf.AMQP); err != nil {
		zap.L().Warn("event publisher unavailable, continuing without it", zap.Error(err))
	} else if amqpPub != nil {
		defer amqpPub.Close()
		publisher = amqpPub
	}

	server := api.NewServer(conf, gormDB, rdb, publisher)
	if err := server.Router.Run(":" + conf.API.Port); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

// openDatabase prefers a full DATABASE_URL (the form most PaaS providers
// inject) over the individual postgres config fields.
func openDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return db.OpenPostgresWithURL(url)
	}

	return db.OpenPostgres(conf.Postgres)
}
