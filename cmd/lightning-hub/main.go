package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-lightning-hub/internal/config"
	"github.com/pribylovaa/go-lightning-hub/internal/credentials"
	hubhttp "github.com/pribylovaa/go-lightning-hub/internal/http"
	"github.com/pribylovaa/go-lightning-hub/internal/ledger"
	"github.com/pribylovaa/go-lightning-hub/internal/lightning"
	"github.com/pribylovaa/go-lightning-hub/internal/service"
	"github.com/pribylovaa/go-lightning-hub/internal/storage/postgres"
	"github.com/pribylovaa/go-lightning-hub/internal/tokens"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting application", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Подключение к БД c таймаутом.
	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	str, err := postgres.New(dbCtx, cfg.DB.DatabaseURL)
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	log.Info("postgres_connected")

	// Хранилище токенов: Redis для мультиинстансных развёртываний,
	// иначе in-memory.
	var tokenStore tokens.Store
	if cfg.Redis.RedisURL != "" {
		rs, err := tokens.NewRedisStore(cfg.Redis.RedisURL, "hub:tok:")
		if err != nil {
			log.Error("redis_connect_failed", slog.String("err", err.Error()))
			rootCancel()
			str.Close()
			os.Exit(1)
		}
		tokenStore = rs
		log.Info("redis_connected")
	} else {
		tokenStore = tokens.NewMemoryStore(nil)
		log.Info("token_store_memory")
	}

	// Клиент платёжной ноды.
	ln := lightning.NewLNDClient(cfg.Lightning.RESTURL, cfg.Lightning.Macaroon, cfg.Lightning.Timeout)

	// Сервисный слой.
	creds := credentials.New(str, cfg.Wallet.Partners)
	tokenManager := tokens.New(tokenStore, creds, cfg.Auth.TokenTTL, nil)
	led := ledger.New(str)
	srvc := service.New(str, creds, led, ln, cfg.Wallet)
	log.Info("service_initialized")

	var ready int32 // 0 — not ready; 1 — ready

	// Служебный HTTP: метрики и health-пробы.
	opsMux := http.NewServeMux()
	opsMux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	opsMux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	opsMux.Handle("/metrics", promhttp.Handler())

	opsSrv := &http.Server{
		Addr:              cfg.Metrics.Addr(),
		Handler:           opsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("ops_listen_start", "addr", opsSrv.Addr)
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("ops_serve_failed", slog.String("err", err.Error()))
		}
	}()

	// Публичный REST-сервер.
	router := hubhttp.NewRouter(srvc, tokenManager, hubhttp.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
	})

	apiSrv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Фоновая уборка просроченных токенов.
	startTokenJanitor(rootCtx, tokenManager, log, cfg.Auth.SweepPeriod)

	// Фоновая реконсиляция pending-транзакций с нодой.
	startReconciler(rootCtx, srvc, log, cfg.Wallet.ReconcilePeriod)

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", "addr", apiSrv.Addr)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)

	// Ожидание сигнала завершения или фатальной ошибки сервера.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	// Graceful stop с таймаутом.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
	}
	shutdownCancel()

	_ = opsSrv.Shutdown(context.Background())

	// Явная очистка перед выходом.
	rootCancel()
	_ = tokenStore.Close()
	str.Close()

	log.Info("service_stopped")
	os.Exit(0)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}

// startTokenJanitor запускает фоновую задачу, которая периодически удаляет
// просроченные пары токенов из хранилища.
func startTokenJanitor(ctx context.Context, tm *tokens.Manager, log *slog.Logger, period time.Duration) {
	if period <= 0 {
		return
	}

	go func() {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := tm.Sweep(ctx); err != nil {
					log.Error("token_janitor_failed", slog.String("err", err.Error()))
				}
			}
		}
	}()
}

// startReconciler запускает фоновую сверку pending-записей леджера
// с фактическим состоянием платёжной ноды.
func startReconciler(ctx context.Context, srvc *service.Service, log *slog.Logger, period time.Duration) {
	if period <= 0 {
		return
	}

	go func() {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := srvc.ReconcilePending(ctx); err != nil {
					log.Error("reconciler_failed", slog.String("err", err.Error()))
				}
			}
		}
	}()
}
