package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"apunab/internal/api"
	"apunab/internal/api/middleware"
	"apunab/internal/database"
	"apunab/pkg/factory"
)

func main() {
	appFactory, err := factory.NewFactory()
	if err != nil {
		fmt.Printf("Factory oluşturulamadı: %v\n", err)
		os.Exit(1)
	}

	log := appFactory.GetLogger()
	cfg := appFactory.GetConfig()
	db := appFactory.GetDB()

	defer db.Close()

	log.Info("Uygulama başlatılıyor", map[string]interface{}{"env": cfg.AppEnv})

	migrationService := database.NewMigrationService(db, log)
	if err := migrationService.RunMigrations(); err != nil {
		log.Fatal("Migrationlar uygulanamadı", map[string]interface{}{"error": err.Error()})
	}

	userService := appFactory.GetUserService()
	betService := appFactory.GetBetService()
	venueService := appFactory.GetVenueService()
	gameService := appFactory.GetGameService()
	ledgerService := appFactory.GetLedgerService()
	auditLogService := appFactory.GetAuditLogService()

	userHandler := api.NewUserHandler(userService, ledgerService, log)
	betHandler := api.NewBetHandler(betService, log)
	venueHandler := api.NewVenueHandler(venueService, log)
	gameHandler := api.NewGameHandler(gameService, log)
	auditLogHandler := api.NewAuditLogHandler(auditLogService, log)
	cacheHandler := api.NewCacheHandler(appFactory.GetCache(), log)
	healthHandler := api.NewHealthHandler(db, appFactory.GetRedisClient(), appFactory.GetCache(), log)

	mux := http.NewServeMux()

	userHandler.RegisterRoutes(mux)
	betHandler.RegisterRoutes(mux)
	venueHandler.RegisterRoutes(mux)
	gameHandler.RegisterRoutes(mux)
	auditLogHandler.RegisterRoutes(mux)
	cacheHandler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("APUNAB API'ye Hoş Geldiniz!"))
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: middleware.MetricsMiddleware(mux),
	}

	go func() {
		log.Info("HTTP sunucusu başlatılıyor", map[string]interface{}{"port": cfg.Server.Port})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP sunucusu başlatılamadı", map[string]interface{}{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Sunucu kapatılıyor...", map[string]interface{}{})

	betService.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Sunucu kapatılırken hata oluştu", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Sunucu başarıyla kapatıldı", map[string]interface{}{})
}
