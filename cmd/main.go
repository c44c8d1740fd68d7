package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jwchoi684/rg-manager/config"
	"github.com/jwchoi684/rg-manager/database"
	"github.com/jwchoi684/rg-manager/logging"
	"github.com/jwchoi684/rg-manager/notify"
	"github.com/jwchoi684/rg-manager/routes"
)

func main() {
	cfg := config.Load()

	flush, err := logging.Init(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer flush()

	// early fail if the DB isn't reachable
	database.Connect(cfg)

	notifier := notify.New(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg, notifier)

	addr := ":" + cfg.AppPort
	zap.L().Info("server listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
