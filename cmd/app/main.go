package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"ecotrack/internal/api"
	"ecotrack/internal/cache"
	"ecotrack/internal/middleware"
	"ecotrack/internal/platform"
	"ecotrack/internal/repository"
	"ecotrack/internal/service"
	"ecotrack/pkg/auth"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	loc, err := cfg.Location()
	if err != nil {
		zapLogger.Fatal("Failed to load time zone", zap.Error(err))
	}
	calendar := service.NewCalendar(loc)

	client := platform.New(cfg.Platform)

	var repo service.Repository
	switch cfg.Backend.Entities {
	case EntitiesPostgres:
		pg, err := repository.New(cfg.Database)
		if err != nil {
			zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Backend.Migrate {
			if err := pg.Migrate(context.Background()); err != nil {
				zapLogger.Fatal("Failed to migrate database", zap.Error(err))
			}
		}
		repo = pg
	default:
		repo = platform.NewEntityStore(client)
	}
	zapLogger.Info("Entity store selected", zap.String("backend", cfg.Backend.Entities))

	var leaderboard service.LeaderboardCache
	if cfg.Redis.Enabled {
		rdb := cache.NewRedisClient(cfg.Redis.Config)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			zapLogger.Warn("Redis unreachable, leaderboard cache disabled", zap.Error(err))
		} else {
			leaderboard = cache.NewLeaderboardCache(rdb, cfg.Redis.TTL)
		}
		cancel()
	}

	progressService := service.NewProgressService(repo, repo, leaderboard, calendar)
	activityService := service.NewActivityService(repo, progressService, calendar)
	dashboardService := service.NewDashboardService(repo, progressService, calendar)
	profileService := service.NewProfileService(repo, progressService, calendar)
	competeService := service.NewCompeteService(repo, leaderboard)
	triviaService := service.NewTriviaService(repo, progressService)
	localService := service.NewLocalService(repo, progressService, client)
	ecoBotService := service.NewEcoBotService(client)

	sessionAuth := auth.NewSessionAuth(client)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewActivityRoutes(a, activityService, sessionAuth)
	api.NewDashboardRoutes(a, dashboardService, sessionAuth)
	api.NewProfileRoutes(a, profileService, sessionAuth)
	api.NewCompeteRoutes(a, competeService, sessionAuth)
	api.NewTriviaRoutes(a, triviaService, sessionAuth)
	api.NewLocalRoutes(a, localService, sessionAuth)
	api.NewLearnRoutes(a)
	api.NewEcoBotRoutes(a, ecoBotService, sessionAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
