package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"AwarenessSimulator_SecurityProject/docs"
	"AwarenessSimulator_SecurityProject/internal/auth"
	"AwarenessSimulator_SecurityProject/internal/bridge"
	"AwarenessSimulator_SecurityProject/internal/config"
	"AwarenessSimulator_SecurityProject/internal/handler"
	"AwarenessSimulator_SecurityProject/internal/lms"
	"AwarenessSimulator_SecurityProject/internal/metrics"
	"AwarenessSimulator_SecurityProject/internal/middleware"
	"AwarenessSimulator_SecurityProject/internal/scenario"
	"AwarenessSimulator_SecurityProject/internal/speech"
	"AwarenessSimulator_SecurityProject/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Awareness Simulator API
// @version         1.0
// @description     채팅 / 이메일 피싱 인식 시나리오 재생 서버
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	auth.SetSigningKey(cfg.JWTSecret)

	if err := storage.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("main(): %v", err)
	}
	defer storage.CloseDB()

	registry, err := scenario.NewBuiltinRegistry()
	if err != nil {
		log.Fatalf("main(): failed to load scenario catalog: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.NewMetrics(reg)

	// 레슨 서비스가 없으면 내장 시나리오만 재생
	var lessons handler.ScriptSource
	var forwarder bridge.Forwarder
	if cfg.LMSBaseURL != "" {
		client := lms.NewClient(cfg.LMSBaseURL)
		lessons = client
		forwarder = client
	}

	var narrator speech.Narrator
	if cfg.GoogleCreds != "" {
		n, err := speech.NewGoogleNarrator(context.Background(), cfg.GoogleCreds, cfg.TTSLanguage, cfg.TTSVoice)
		if err != nil {
			log.Printf("main(): narration disabled: %v", err)
		} else {
			narrator = n
			defer n.Close()
		}
	}

	h := handler.New(handler.Deps{
		Config:   cfg,
		Registry: registry,
		Lessons:  lessons,
		Reporter: bridge.NewReporter(storage.SaveStepProgress, forwarder, m),
		Metrics:  m,
		Narrator: narrator,
		Logger:   logger,
	})

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit, cfg.RateBurst))

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", middleware.ServiceKeyMiddleware(cfg.MetricsKey), gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	h.RegisterRoutes(router)

	log.Printf("main(): listening on :%s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
