package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wayfarer/admin-service/internal/app/admin/config"
	"wayfarer/admin-service/internal/app/admin/handler"
	"wayfarer/admin-service/internal/app/admin/infrastructure/messaging"
	"wayfarer/admin-service/internal/app/admin/processor"
	"wayfarer/admin-service/internal/app/admin/repository"
	"wayfarer/admin-service/internal/app/admin/service"
	"wayfarer/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		logger.Init("admin-service", "info")
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Инициализируем логгер
	logger.Init("admin-service", cfg.Server.LogLevel)
	logger.Info().Msg("Starting Admin Service...")

	// Подключаемся к хранилищу каталога
	store, err := newStoreRepository(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to catalog store")
	}
	defer store.Close()
	logger.Info().Str("backend", cfg.Store.Backend).Msg("Connected to catalog store")

	// Подключаемся к MongoDB для журнала действий
	// Журнал best-effort: без него сервис работает, но без истории команд
	var audit repository.AuditRepository
	mongoCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.MongoDB.URI))
	cancel()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to connect to MongoDB, audit log disabled")
	} else {
		audit = repository.NewMongoAuditRepository(mongoClient.Database(cfg.MongoDB.Database))
		logger.Info().Msg("Connected to MongoDB")
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				logger.Error().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		}()
	}

	// Инициализируем Kafka producer для уведомлений
	producer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()
	logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Kafka producer initialized")

	// Собираем сервисы
	state := service.NewCatalogState()
	catalogService := service.NewCatalogService(state)
	commandService := service.NewCommandService(state, store, producer, audit)

	// Загружаем коллекции из хранилища
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := commandService.Load(loadCtx); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("Failed to load catalog")
	}
	cancel()

	// Запускаем периодический пересчет метрик дашборда
	statsRefresher := processor.NewStatsRefresher(catalogService, cfg.Stats.CronSchedule)
	if err := statsRefresher.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start stats refresher")
	}
	defer statsRefresher.Stop()

	// Настраиваем HTTP сервер
	adminHandler := handler.NewAdminHandler(catalogService, commandService, audit)
	router := handler.SetupRouter(adminHandler)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		logger.Info().Str("address", server.Addr).Msg("Admin Service started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Admin Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Admin Service stopped")
}

// newStoreRepository создает хранилище каталога по выбранному бэкенду
func newStoreRepository(cfg *config.Config) (repository.StoreRepository, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(&repository.StoreEntry{}); err != nil {
			return nil, err
		}
		return repository.NewPostgresStoreRepository(db), nil
	default:
		return repository.NewRedisStoreRepository(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	}
}
