package main

import (
	"os"

	"github.com/robosite/storefront/internal/app"
	config "github.com/robosite/storefront/internal/cfg"
	"github.com/robosite/storefront/pkg/logger"
)

//	@title			Roboturkiye Storefront API
//	@version		1.0
//	@description	REST API витрины: каталог, корзина, сессии и админ-панель каталога.

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
