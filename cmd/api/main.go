package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/gateway"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/storage"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)

	//外部コラボレータは起動時に1回だけ作って注入する
	files := storage.NewLocalStorage(cfg.UploadDir, cfg.PublicURL)
	gwClient := gateway.NewHTTPClient(cfg.GatewayBaseURL, cfg.GatewayAccessToken)

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, productRepo, inventoryRepo, auditRepo, files, cfg.OrderExpiry)
	paymentUC := usecase.NewPaymentUsecase(txManager, orderRepo, auditRepo, gwClient, cfg.FrontendURL, cfg.PublicURL)
	sweeperUC := usecase.NewSweeperUsecase(txManager, orderRepo, auditRepo)

	//Handler生成
	orderH := handler.NewOrderHandler(orderUC, paymentUC)
	adminH := handler.NewAdminOrderHandler(orderUC, sweeperUC)
	webhookH := handler.NewWebhookHandler(paymentUC, cfg.GatewayWebhookSecret)
	sweepH := handler.NewSweepHandler(sweeperUC, cfg.SweepSecret)

	//Server起動
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Static("/uploads", cfg.UploadDir)

	orderH.RegisterRoutes(e, cfg)
	adminH.RegisterRoutes(e, cfg)
	webhookH.RegisterRoutes(e, cfg)
	sweepH.RegisterRoutes(e, cfg)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
