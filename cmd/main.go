package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/config"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/db"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/handler"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/repository"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/service"
)

func main() {
	// 1. Конфигурация из env (.env подхватывается, если есть).
	config.LoadEnv()

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	personRepo := repository.NewGormInsuredPersonRepository(gormDB)
	typeRepo := repository.NewGormInsuranceTypeRepository(gormDB)
	insuranceRepo := repository.NewGormInsuranceRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)

	// 5. Сервисы ядра.
	personSvc := service.NewPersonService(personRepo)
	policySvc := service.NewPolicyService(personRepo, typeRepo, insuranceRepo, eventRepo)
	claimSvc := service.NewClaimService(eventRepo, insuranceRepo)
	accountSvc := service.NewAccountService(userRepo, personRepo)

	// 6. HTTP-сервер.
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(logger.New())

	handler.RegisterRoutes(
		app,
		appCfg,
		handler.NewAuthHandler(accountSvc, appCfg),
		handler.NewPersonHandler(personSvc, policySvc),
		handler.NewInsuranceHandler(policySvc),
		handler.NewEventHandler(claimSvc),
	)

	log.Printf("insurance back-office listening on %s", appCfg.HTTPAddr)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := app.Listen(appCfg.HTTPAddr); err != nil {
			log.Fatalf("http listen: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down http server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
