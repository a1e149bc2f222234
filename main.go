package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"auth-api/internal/user"
	"auth-api/pkg/config"
	"auth-api/pkg/jwt_generator"
	"auth-api/pkg/logger"
	"auth-api/pkg/metrics"
	"auth-api/pkg/server"
	"auth-api/pkg/session_cookie"
	"auth-api/pkg/token_cache"
)

const startupTimeout = 10 * time.Second

func main() {
	isAtRemote := os.Getenv(config.IsAtRemote)
	if isAtRemote == "" {
		// a missing .env is fine, the variables may come from the shell
		_ = godotenv.Load()
	}

	cfg, err := config.ReadConfig()
	if err != nil {
		panic(err)
	}
	cfg.Print()

	log, err := logger.NewLogger(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer func(l *zap.SugaredLogger) {
		_ = l.Sync()
	}(log)

	jwtGenerator, err := jwt_generator.NewJwtGenerator(cfg.Jwt)
	if err != nil {
		log.Fatalw(
			"failed to create jwt generator",
			zap.Error(err),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	mongoDbClient, err := user.NewMongodbClient(ctx, cfg.Mongodb)
	if err != nil {
		log.Fatalw(
			"failed to setup mongodb client",
			zap.Error(err),
		)
	}

	redisClient, err := token_cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalw(
			"failed to setup redis client",
			zap.Error(err),
		)
	}

	userRepository := user.NewRepository(mongoDbClient, cfg.Mongodb)
	err = userRepository.EnsureIndexes(ctx)
	if err != nil {
		log.Fatalw(
			"failed to ensure user indexes",
			zap.Error(err),
		)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	authMetrics := metrics.NewMetrics(registry)

	tokenCache := token_cache.NewTokenCache(redisClient, cfg.Jwt.RefreshTokenLifetime)
	cookieWriter := session_cookie.NewWriter(cfg)
	authMiddleware := user.NewAuthMiddleware(jwtGenerator, userRepository)
	userService := user.NewService(userRepository, tokenCache, jwtGenerator, authMetrics)
	userHandler := user.NewHandler(userService, cookieWriter, authMiddleware)

	var handlers []server.Handler
	handlers = append(handlers, userHandler)
	srv := server.NewServer(cfg, handlers)
	srv.OnShutdown(func(ctx context.Context) error {
		return mongoDbClient.Disconnect(ctx)
	})
	srv.OnShutdown(func(context.Context) error {
		return redisClient.Close()
	})

	app := srv.GetFiberInstance()
	app.Use(requestid.New())
	app.Use(logger.Middleware(log))
	app.Use(authMetrics.Middleware())
	app.Use(cors.New())
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).SendString("OK")
	})
	app.Get("/metrics", authMetrics.Handler())

	srv.RegisterRoutes()

	if isAtRemote == "" {
		log.Infow("server is starting", zap.String("port", cfg.ServerPort))
		err = srv.Start(context.Background())
		if err != nil {
			log.Errorw(
				"server stopped with error",
				zap.Error(err),
			)
		}
		log.Info("server stopped")
	} else {
		lambda.Start(srv.LambdaProxyHandler)
	}
}
