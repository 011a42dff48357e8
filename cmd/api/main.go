package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/memonote/memonote-backend/internal/config"
	"github.com/memonote/memonote-backend/internal/handler"
	"github.com/memonote/memonote-backend/internal/middleware"
	"github.com/memonote/memonote-backend/internal/migration"
	"github.com/memonote/memonote-backend/internal/repository"
	"github.com/memonote/memonote-backend/internal/routes"
	"github.com/memonote/memonote-backend/internal/service"
	pkgcache "github.com/memonote/memonote-backend/pkg/cache"
	"github.com/memonote/memonote-backend/pkg/jwt"
	pkglogger "github.com/memonote/memonote-backend/pkg/logger"
	pkgredis "github.com/memonote/memonote-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.Init(env)
	log := pkglogger.Get()
	log.Info().Str("env", env).Strs("env_files", dotenvFiles).Msg("starting")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("connected to MySQL")

	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	// Redis is optional; the cache layer degrades to pass-through without it.
	var cacheService pkgcache.Service
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
		cacheService = pkgcache.NewService(nil)
	} else {
		log.Info().Str("host", cfg.Redis.Host).Msg("connected to Redis")
		cacheService = pkgcache.NewService(redisClient)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	memoRepo := repository.NewMemoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tagRepo := repository.NewTagRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	sysConfigRepo := repository.NewSysConfigRepository(db)
	devTokenRepo := repository.NewDevTokenRepository(db)

	// Services
	sysConfigService := service.NewSysConfigService(sysConfigRepo, cacheService)
	tagService := service.NewTagService(tagRepo, memoRepo)
	memoService := service.NewMemoService(memoRepo, userRepo, tagService)
	commentService := service.NewCommentService(commentRepo, memoRepo, userRepo, sysConfigService)
	relationService := service.NewRelationService(relationRepo, memoRepo, sysConfigService)
	statisticsService := service.NewStatisticsService(memoRepo, commentRepo, relationRepo, userRepo, tagRepo)
	authService := service.NewAuthService(userRepo, sysConfigService, jwtManager, cacheService)
	devTokenService := service.NewDevTokenService(devTokenRepo, userRepo, jwtManager)
	feedService := service.NewFeedService(memoRepo, userRepo, sysConfigService)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Memo:      handler.NewMemoHandler(memoService),
		Comment:   handler.NewCommentHandler(commentService),
		Relation:  handler.NewRelationHandler(relationService),
		Tag:       handler.NewTagHandler(tagService),
		User:      handler.NewUserHandler(statisticsService),
		DevToken:  handler.NewDevTokenHandler(devTokenService),
		Feed:      handler.NewFeedHandler(feedService),
		SysConfig: handler.NewSysConfigHandler(sysConfigService),
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		cacheStatus := "disabled"
		if cacheService.IsAvailable() {
			cacheStatus = "ok"
			if err := cacheService.Ping(c.Request.Context()); err != nil {
				cacheStatus = "down"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "memonote-backend",
			"cache":   cacheStatus,
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(router, handlers, jwtManager)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("stopped")
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	dsnCfg := mysqldriver.NewConfig()
	dsnCfg.User = cfg.Database.User
	dsnCfg.Passwd = cfg.Database.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port)
	dsnCfg.DBName = cfg.Database.Name
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.UTC
	dsnCfg.Params = map[string]string{"charset": "utf8mb4"}

	gormCfg := &gorm.Config{TranslateError: true}
	if cfg.Server.Env == "production" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(mysql.Open(dsnCfg.FormatDSN()), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Minute)

	return db, nil
}
