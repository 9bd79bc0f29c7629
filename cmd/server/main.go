package main

import (
	"net/http"

	"smartcart-be/internal/cart"
	"smartcart-be/internal/category"
	"smartcart-be/internal/config"
	"smartcart-be/internal/db"
	"smartcart-be/internal/logger"
	"smartcart-be/internal/mail"
	"smartcart-be/internal/metrics"
	"smartcart-be/internal/order"
	"smartcart-be/internal/product"
	"smartcart-be/internal/rest"
	"smartcart-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	stats := metrics.NewStore()
	mailer := mail.NewSMTPMailer(cfg)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, mailer, stats)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, stats)

	handler := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(userSvc),
		Product:  rest.NewProductHandler(productSvc),
		Category: rest.NewCategoryHandler(categorySvc),
		Cart:     rest.NewCartHandler(cartSvc),
		Order:    rest.NewOrderHandler(orderSvc),
		User:     rest.NewUserHandler(userSvc),
	}, stats, database)

	logger.L().Info("🚀 Smart Cart API listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
