package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/robosite/storefront/internal/cfg"
	v1Http "github.com/robosite/storefront/internal/delivery/v1/http"
	"github.com/robosite/storefront/internal/infrastructure/kafka"
	minioInfra "github.com/robosite/storefront/internal/infrastructure/minio"
	s3Repo "github.com/robosite/storefront/internal/repository/minio"
	"github.com/robosite/storefront/internal/repository/pgdb"
	pgdbConv "github.com/robosite/storefront/internal/repository/pgdb/converter"
	"github.com/robosite/storefront/internal/repository/redis"
	redisConv "github.com/robosite/storefront/internal/repository/redis/converter"
	"github.com/robosite/storefront/internal/usecase"
	"github.com/robosite/storefront/pkg/clients"
	"github.com/robosite/storefront/pkg/closer"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
	"github.com/robosite/storefront/pkg/postgres"
)

// App связывает все слои витрины: хранилища, usecase'ы, HTTP-сервер
// и outbox-воркер. Остановка идет через closer в порядке LIFO.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	db          *postgres.PgDatabase
	redisClient *clients.RedisClient
	producer    *kafka.Producer
	worker      *kafka.OutboxWorker
	imagesInfra *minioInfra.MinioInfrastructure
	httpSrv     *v1Http.Server
	closer      *closer.Closer

	shutdownCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(2 * time.Second),
	}

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.db = db
	a.closer.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.redisClient = redisClient
	a.closer.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// Репозитории
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverterImpl{})
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverterImpl{})
	userRepo := pgdb.NewUserRepo(db.Pool, pgdbConv.UserConverterImpl{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverterImpl{})

	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.ProductInfoConverterImpl{}, cfg.Redis, log)
	cartStore := redis.NewCartStore(redisClient, redisConv.CartLineConverterImpl{}, log)
	sessionStore := redis.NewSessionStore(redisClient, cfg.Redis, log)
	tokenStore := redis.NewTokenStore(redisClient, redisConv.UserConverterImpl{}, cfg.Redis, log)

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	// Фоновые задачи MinIO живут до отдельной отмены на shutdown
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	a.shutdownCancel = shutdownCancel
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, shutdownCtx)
	a.imagesInfra = imagesInfra

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Warnf("failed to ensure kafka topic: %v", err)
	}
	a.producer = producer
	a.closer.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	// Usecase'ы
	catalogUC := usecase.NewCatalogUC(productRepo, categoryRepo, cacheRepo, log)
	cartUC := usecase.NewCartUC(cartStore, catalogUC, sessionStore, log)
	authUC := usecase.NewAuthUC(userRepo, tokenStore, sessionStore, log)
	adminUC := usecase.NewAdminCatalogUC(productRepo, outboxRepo, db.Pool, imagesInfra, cacheRepo, log)

	// Outbox-воркер
	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)
	a.worker = worker
	a.closer.Add(func(ctx context.Context) error {
		worker.Stop()
		return nil
	})

	// HTTP
	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(catalogUC, cartUC, authUC, adminUC)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add(func(ctx context.Context) error {
		return a.httpSrv.Stop(ctx)
	})

	return a, nil
}

// Run запускает воркер и HTTP-сервер и блокируется до сигнала или фатальной ошибки.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	a.worker.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	}

	if err := a.imagesInfra.WaitForCleanup(shutdownCtx); err != nil {
		a.logger.Warnf("MinIO cleanup error: %v", err)
	} else {
		a.logger.Infof("MinIO cleanup completed")
	}
	a.shutdownCancel()

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
