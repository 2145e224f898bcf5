package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/payment"
	"storefront/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect failed")
	}

	db := client.Database(cfg.DBName)
	log.Info().Str("database", db.Name()).Msg("mongodb connected")

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Warn().Err(err).Msg("user index warning")
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Warn().Err(err).Msg("category index warning")
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Warn().Err(err).Msg("product index warning")
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Warn().Err(err).Msg("order index warning")
	}

	gateway := payment.NewBraintreeGateway(
		cfg.Braintree.Environment,
		cfg.Braintree.MerchantID,
		cfg.Braintree.PublicKey,
		cfg.Braintree.PrivateKey,
	)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register(db))
		auth.POST("/login", handlers.Login(db, cfg.JWTSecret, cfg.TokenTTL))
		auth.POST("/forgot-password", handlers.ForgotPassword(db))

		signedIn := auth.Group("", middleware.RequireSignIn(cfg.JWTSecret))
		{
			signedIn.GET("/user-auth", handlers.AuthCheck())
			signedIn.PUT("/profile", handlers.UpdateProfile(db))
			signedIn.GET("/orders", handlers.GetOrders(db))
		}

		admin := auth.Group("", middleware.RequireSignIn(cfg.JWTSecret), middleware.RequireAdmin(db))
		{
			admin.GET("/admin-auth", handlers.AuthCheck())
			admin.GET("/all-orders", handlers.GetAllOrders(db))
			admin.PUT("/order-status/:orderId", handlers.UpdateOrderStatus(db))
		}
	}

	category := api.Group("/category")
	{
		category.GET("/get-category", handlers.GetCategories(db))
		category.GET("/single-category/:slug", handlers.GetCategoryBySlug(db))

		admin := category.Group("", middleware.RequireSignIn(cfg.JWTSecret), middleware.RequireAdmin(db))
		{
			admin.POST("/create-category", handlers.CreateCategory(db))
			admin.PUT("/update-category/:id", handlers.UpdateCategory(db))
			admin.DELETE("/delete-category/:id", handlers.DeleteCategory(db))
		}
	}

	product := api.Group("/product")
	{
		product.GET("/get-product", handlers.GetProducts(db))
		product.GET("/get-product/:slug", handlers.GetProductBySlug(db))
		product.GET("/product-photo/:pid", handlers.GetProductPhoto(db))
		product.POST("/product-filters", handlers.FilterProducts(db))
		product.GET("/product-count", handlers.ProductCount(db))
		product.GET("/product-list/:page", handlers.ProductList(db))
		product.GET("/search/:keyword", handlers.SearchProducts(db))
		product.GET("/related-product/:pid/:cid", handlers.RelatedProducts(db))
		product.GET("/product-category/:slug", handlers.ProductsByCategory(db))

		product.GET("/braintree/token", handlers.BraintreeToken(gateway))
		product.POST("/braintree/payment",
			middleware.RequireSignIn(cfg.JWTSecret),
			handlers.BraintreeCheckout(db, gateway),
		)

		admin := product.Group("", middleware.RequireSignIn(cfg.JWTSecret), middleware.RequireAdmin(db))
		{
			admin.POST("/create-product", handlers.CreateProduct(db))
			admin.PUT("/update-product/:id", handlers.UpdateProduct(db))
			admin.DELETE("/delete-product/:id", handlers.DeleteProduct(db))
		}
	}

	log.Info().Str("port", cfg.Port).Msg("storefront api listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
