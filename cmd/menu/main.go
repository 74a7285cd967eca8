package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	myPostgresRepo "github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/db/postgres"
	myRedisRepo "github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/db/redis"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/notify"
	myHTTP "github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/app/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/app/auth/password"
	appsvc "github.com/Miraines/MoonyAndStarry/menu-service/internal/app/auth/service"
	catalogsvc "github.com/Miraines/MoonyAndStarry/menu-service/internal/app/catalog/service"
	catalogRepo "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/repo"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/db"
	lg "github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/migrate"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/infra/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg.Must("").Fatal("failed to load config", zap.Error(err))
	}

	zapLog := lg.Must(cfg.LogLevel)
	defer zapLog.Sync()

	gdb, err := db.Open(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(gdb, cfg.DatabaseDriver); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	checks := []myHTTP.Check{{Name: "database", Probe: sqlDB.PingContext}}

	var menuCache catalogRepo.MenuCache = myRedisRepo.NopMenuCache{}
	if cfg.RedisAddress != "" {
		redisCli := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCli.Close()
		menuCache = myRedisRepo.NewRedisMenuCache(redisCli, cfg.MenuCacheTTL)
		checks = append(checks, myHTTP.Check{Name: "redis", Probe: func(ctx context.Context) error {
			return redisCli.Ping(ctx).Err()
		}})
	}

	notifier, closeNotifier, err := notify.New(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to init notifier", zap.Error(err))
	}
	defer func() {
		if err := closeNotifier(); err != nil {
			zapLog.Warn("notifier close", zap.Error(err))
		}
	}()

	jwtUtil, err := jwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}

	validate := dto.NewValidator()
	authSvc := appsvc.New(
		myPostgresRepo.NewPostgresUserRepo(gdb),
		jwtUtil,
		password.NewHasher(nil),
		notifier,
		cfg,
		validate,
		zapLog,
	)
	catalogSvc := catalogsvc.New(myPostgresRepo.NewPostgresProductRepo(gdb), menuCache, validate, zapLog)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := myHTTP.NewHandler(authSvc, catalogSvc, zapLog, checks...)
	router := myHTTP.NewRouter(cfg, handler, reg, zapLog)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, cfg.HTTPAddress, router, zapLog)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
	zapLog.Info("shutdown complete")
}
