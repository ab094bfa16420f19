package main

import (
	"log"
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Dress{},
		&model.DressImage{},
		&model.DressSize{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderNumberCounter{},
		&model.User{},
		&model.UserRole{},
	); err != nil {
		log.Fatal(err)
	}

	//初期管理者の作成（冪等）
	if err := db.Seed(gormDB); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	dressRepo := infraRepo.NewDressGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	categoryUC := usecase.NewCategoryUsecase(txManager, categoryRepo)
	dressUC := usecase.NewDressUsecase(dressRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator())

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	categoryH := handler.NewCategoryHandler(categoryUC)
	dressH := handler.NewDressHandler(dressUC)
	orderH := handler.NewOrderHandler(orderUC)

	e := echo.New()
	e.HideBanner = true

	//リクエストログとpanic回収はプロセス全体で1回だけ仕込む
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	//CORSは管理UIのオリジン1つだけ許可（credentials付き）
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	authH.RegisterRoutes(e, cfg)
	categoryH.RegisterRoutes(e, cfg)
	dressH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
