package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/grubdash-service/internal/config"
	"github.com/grubdash-service/internal/events"
	grpcserver "github.com/grubdash-service/internal/grpc"
	handler "github.com/grubdash-service/internal/http"
	"github.com/grubdash-service/internal/logger"
	"github.com/grubdash-service/internal/metrics"
	"github.com/grubdash-service/internal/model"
	"github.com/grubdash-service/internal/repo"
	"github.com/grubdash-service/internal/seed"
	"github.com/grubdash-service/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dishStore := repo.NewMemoryStore[*model.Dish]()
	orderStore := repo.NewMemoryStore[*model.Order]()

	if cfg.SeedFile != "" {
		data, err := seed.Load(cfg.SeedFile)
		if err != nil {
			log.Fatal("failed to load seed file", zap.Error(err))
		}
		if err := data.Apply(ctx, dishStore, orderStore); err != nil {
			log.Fatal("failed to apply seed data", zap.Error(err))
		}
		log.Info("seed data loaded",
			zap.Int("dishes", len(data.Dishes)),
			zap.Int("orders", len(data.Orders)),
		)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics := metrics.New(reg)

	opts := []service.Option{service.WithObserver(serverMetrics.ObserveRejection)}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opt)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		log.Info("connected to redis")
		opts = append(opts, service.WithPublisher(events.NewRedisPublisher(redisClient, cfg.EventPrefix)))
	} else {
		log.Info("REDIS_URL not set, events disabled")
	}

	dishService := service.NewDishService(dishStore, opts...)
	orderService := service.NewOrderService(orderStore, opts...)

	if redisClient != nil {
		consumer := events.NewConsumer(redisClient, orderService, log)
		go consumer.Subscribe(ctx, cfg.OrderStatusChannel)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(log), serverMetrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(serverMetrics.Handler()))

	handler.NewHandler(dishService, orderService).RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("starting http server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http listen", zap.Error(err))
		}
	}()

	var grpcSrv *grpc.Server
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			log.Fatal("grpc listen", zap.Error(err))
		}
		grpcSrv = grpc.NewServer()
		grpcserver.NewServer(dishService, orderService, log).Register(grpcSrv)

		go func() {
			log.Info("starting grpc server", zap.String("port", cfg.GRPCPort))
			if err := grpcSrv.Serve(lis); err != nil {
				log.Error("grpc serve", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("error closing redis connection", zap.Error(err))
		}
	}

	log.Info("server exiting")
}
