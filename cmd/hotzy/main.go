package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/whitewolfwitcher/hotzy-orders/internal/config"
	"github.com/whitewolfwitcher/hotzy-orders/internal/logger"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	// Отсутствие обязательного секрета - отказ на старте,
	// а не тихая деградация в рантайме.
	if err := cfg.Validate(); err != nil {
		lg.Fatalf("Invalid configuration: %v", err)
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Инициализация приложения
	app, err := NewApp(rootCtx, cfg, lg)
	if err != nil {
		lg.Fatalf("Failed to initialize application: %v", err)
	}

	// Запуск сервера в отдельной горутине
	go func() {
		if err := app.Start(rootCtx); err != nil {
			lg.Errorf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	rootCancel()

	// Остановка приложения
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		lg.Fatalf("Shutdown error: %v", err)
	}
}
