package factory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"

	"apunab/internal/config"
	"apunab/internal/domain"
	"apunab/internal/repository"
	"apunab/internal/service"
	"apunab/pkg/cache"
	"apunab/pkg/logger"
)

const (
	settlementWorkers   = 4
	settlementQueueSize = 64
	cacheExpiration     = 5 * time.Minute
)

type Factory interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	GetDB() *sql.DB
	GetRedisClient() *redis.Client
	GetCache() cache.Cache

	GetUserRepository() domain.UserRepository
	GetBetRepository() domain.BetRepository
	GetVenueRepository() domain.VenueRepository
	GetGameRepository() domain.GameRepository
	GetRatingRepository() domain.RatingRepository
	GetLedgerRepository() domain.LedgerRepository
	GetAuditLogRepository() domain.AuditLogRepository

	GetUserService() domain.UserService
	GetBetService() domain.BetService
	GetVenueService() domain.VenueService
	GetGameService() domain.GameService
	GetLedgerService() domain.LedgerService
	GetAuditLogService() domain.AuditLogService
}

type AppFactory struct {
	config      *config.Config
	logger      logger.Logger
	db          *sql.DB
	redisClient *redis.Client
	cache       cache.Cache
	strategy    cache.CacheStrategy

	userRepository     domain.UserRepository
	betRepository      domain.BetRepository
	venueRepository    domain.VenueRepository
	gameRepository     domain.GameRepository
	ratingRepository   domain.RatingRepository
	ledgerRepository   domain.LedgerRepository
	auditLogRepository domain.AuditLogRepository

	userService     domain.UserService
	betService      domain.BetService
	venueService    domain.VenueService
	gameService     domain.GameService
	ledgerService   domain.LedgerService
	auditLogService domain.AuditLogService
}

func NewFactory() (Factory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.LogLevel(cfg.LogLevel), nil)

	db, err := sql.Open("sqlite3", cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("veritabanı bağlantısı kurulamadı: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("veritabanı bağlantısı test edilemedi: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("Redis bağlantısı kurulamadı: %w", err)
	}

	cacheInstance := cache.NewRedisCache(redisClient, log, "apunab")
	strategy := cache.NewReadThroughStrategy(cacheInstance, log, cacheExpiration)

	factory := &AppFactory{
		config:      cfg,
		logger:      log,
		db:          db,
		redisClient: redisClient,
		cache:       cacheInstance,
		strategy:    strategy,
	}

	factory.initRepositories()
	factory.initServices()

	return factory, nil
}

func (f *AppFactory) initRepositories() {
	f.userRepository = repository.NewUserRepository(f.db, f.logger)
	f.betRepository = repository.NewBetRepository(f.db, f.logger)
	f.venueRepository = repository.NewVenueRepository(f.db, f.logger)
	f.gameRepository = repository.NewGameRepository(f.db, f.logger)
	f.ratingRepository = repository.NewRatingRepository(f.db, f.logger)
	f.ledgerRepository = repository.NewLedgerRepository(f.db, f.logger)
	f.auditLogRepository = repository.NewAuditLogRepository(f.db, f.logger)
}

func (f *AppFactory) initServices() {
	f.auditLogService = service.NewAuditLogService(f.auditLogRepository, f.logger)
	f.ledgerService = service.NewLedgerService(f.userRepository, f.ledgerRepository, f.logger)

	baseBetService := service.NewBetService(
		f.betRepository,
		f.userRepository,
		f.venueRepository,
		f.gameRepository,
		f.ledgerService,
		f.auditLogRepository,
		settlementWorkers,
		settlementQueueSize,
		f.logger,
	)
	f.betService = service.NewCachedBetService(baseBetService, f.cache, f.strategy, f.logger)

	f.userService = service.NewUserService(f.userRepository, f.betRepository, f.auditLogRepository, f.logger)
	f.gameService = service.NewGameService(f.gameRepository, f.logger)
	f.venueService = service.NewVenueService(f.venueRepository, f.ratingRepository, f.userRepository, f.gameRepository, f.logger)
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetDB() *sql.DB {
	return f.db
}

func (f *AppFactory) GetRedisClient() *redis.Client {
	return f.redisClient
}

func (f *AppFactory) GetCache() cache.Cache {
	return f.cache
}

func (f *AppFactory) GetUserRepository() domain.UserRepository {
	return f.userRepository
}

func (f *AppFactory) GetBetRepository() domain.BetRepository {
	return f.betRepository
}

func (f *AppFactory) GetVenueRepository() domain.VenueRepository {
	return f.venueRepository
}

func (f *AppFactory) GetGameRepository() domain.GameRepository {
	return f.gameRepository
}

func (f *AppFactory) GetRatingRepository() domain.RatingRepository {
	return f.ratingRepository
}

func (f *AppFactory) GetLedgerRepository() domain.LedgerRepository {
	return f.ledgerRepository
}

func (f *AppFactory) GetAuditLogRepository() domain.AuditLogRepository {
	return f.auditLogRepository
}

func (f *AppFactory) GetUserService() domain.UserService {
	return f.userService
}

func (f *AppFactory) GetBetService() domain.BetService {
	return f.betService
}

func (f *AppFactory) GetVenueService() domain.VenueService {
	return f.venueService
}

func (f *AppFactory) GetGameService() domain.GameService {
	return f.gameService
}

func (f *AppFactory) GetLedgerService() domain.LedgerService {
	return f.ledgerService
}

func (f *AppFactory) GetAuditLogService() domain.AuditLogService {
	return f.auditLogService
}
