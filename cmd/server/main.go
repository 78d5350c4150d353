package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shift_manager_backend/internal/config"
	"shift_manager_backend/internal/database"
	"shift_manager_backend/internal/middleware"
	"shift_manager_backend/internal/router"
	"shift_manager_backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", "console")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)
	gin.SetMode(cfg.GinMode)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	ctx := context.Background()
	if cfg.Database.AutoMigrate {
		if err := database.ApplySchema(ctx, db, cfg.Database.Driver); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply schema")
		}
	}
	if cfg.Database.Seed {
		result, err := database.Seed(ctx, db, time.Now(), database.DefaultSeedPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed database")
		}
		utils.LogInfo("Seed finished", map[string]interface{}{
			"users":   result.Users,
			"tasks":   result.Tasks,
			"shifts":  result.Shifts,
			"skipped": result.Skipped,
		})
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", "X-Request-ID"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, db)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "driver": cfg.Database.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.LogInfo("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shut down")
	}
}
