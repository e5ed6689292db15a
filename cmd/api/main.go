package main

import (
	"log"
	"os"
	"time"

	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/auth"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/db"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/ingredient"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/menu"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/middleware"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/ocr"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/product"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/purchase"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/recipe"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/shoppinglist"
	"github.com/r3d3y3s79/chels-catering-financial-tracker/internal/supermarket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── OCR ─────────────────────────
	ocrClient := ocr.NewClient(os.Getenv("OCR_SERVICE_URL"))

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	ingredientRepo := ingredient.NewPostgresRepository(pgDB)
	recipeRepo := recipe.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	purchaseRepo := purchase.NewPostgresRepository(pgDB)
	supermarketRepo := supermarket.NewPostgresRepository(pgDB)
	productRepo := product.NewPostgresRepository(pgDB)
	shoppingListRepo := shoppinglist.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	ingredientService := ingredient.NewService(ingredientRepo)
	productService := product.NewService(productRepo)
	supermarketService := supermarket.NewService(supermarketRepo)

	recipeService := recipe.NewService(recipeRepo, ingredientService, ingredientService)
	menuService := menu.NewService(menuRepo, recipeService)
	purchaseService := purchase.NewService(purchaseRepo, ingredientService, authService)
	shoppingListService := shoppinglist.NewService(shoppingListRepo, ingredientService, productService)

	// ───────────────────────── HANDLERS ─────────────────────────
	ingredientHandler := ingredient.NewHandler(ingredientService, ocrClient)
	recipeHandler := recipe.NewHandler(recipeService)
	menuHandler := menu.NewHandler(menuService, ocrClient)
	purchaseHandler := purchase.NewHandler(purchaseService, ocrClient)
	supermarketHandler := supermarket.NewHandler(supermarketService)
	productHandler := product.NewHandler(productService)
	shoppingListHandler := shoppinglist.NewHandler(shoppingListService)

	// ───────────────────────── INGREDIENT ROUTES ─────────────────────────
	ingredients := r.Group("/api/ingredients")
	ingredients.Use(middleware.AuthMiddleware())
	{
		ingredients.GET("", ingredientHandler.List)
		ingredients.GET("/:id", ingredientHandler.Get)
		ingredients.POST("", ingredientHandler.Create)
		ingredients.PUT("/:id", ingredientHandler.Update)
		ingredients.DELETE("/:id", ingredientHandler.Delete)
		ingredients.POST("/:id/prices", ingredientHandler.RecordPrice)
		ingredients.POST("/barcode", ingredientHandler.Barcode)
		ingredients.POST("/ocr", ingredientHandler.OCR)
		ingredients.GET("/util/categories", ingredientHandler.ListCategories)
		ingredients.GET("/util/low-stock", ingredientHandler.LowStock)
	}

	// ───────────────────────── RECIPE ROUTES ─────────────────────────
	recipes := r.Group("/api/recipes")
	recipes.Use(middleware.AuthMiddleware())
	{
		recipes.GET("", recipeHandler.List)
		recipes.GET("/:id", recipeHandler.Get)
		recipes.POST("", recipeHandler.Create)
		recipes.PUT("/:id", recipeHandler.Update)
		recipes.DELETE("/:id", recipeHandler.Delete)
		recipes.GET("/suggestions/available", recipeHandler.SuggestAvailable)
		recipes.GET("/suggestions/profitable", recipeHandler.SuggestProfitable)
	}

	// ───────────────────────── MENU ROUTES ─────────────────────────
	menus := r.Group("/api/menus")
	menus.Use(middleware.AuthMiddleware())
	{
		menus.GET("", menuHandler.List)
		menus.GET("/:id", menuHandler.Get)
		menus.POST("", menuHandler.Create)
		menus.PUT("/:id", menuHandler.Update)
		menus.DELETE("/:id", menuHandler.Delete)
		menus.POST("/:id/items", menuHandler.AddItem)
		menus.PUT("/:id/items/:itemId", menuHandler.UpdateItem)
		menus.DELETE("/:id/items/:itemId", menuHandler.RemoveItem)
		menus.GET("/:id/analysis", menuHandler.Analyze)
		menus.GET("/analysis/profitability", menuHandler.Profitability)
		menus.POST("/ocr", menuHandler.OCR)
	}

	// ───────────────────────── PURCHASE ROUTES ─────────────────────────
	purchases := r.Group("/api/purchases")
	purchases.Use(middleware.AuthMiddleware())
	{
		purchases.GET("", purchaseHandler.List)
		purchases.GET("/:id", purchaseHandler.Get)
		purchases.POST("", purchaseHandler.Create)
		purchases.PUT("/:id", purchaseHandler.Update)
		purchases.DELETE("/:id", purchaseHandler.Delete)
		purchases.POST("/:id/items", purchaseHandler.AddItem)
		purchases.PUT("/:id/items/:itemId", purchaseHandler.UpdateItem)
		purchases.DELETE("/:id/items/:itemId", purchaseHandler.RemoveItem)
		purchases.GET("/report/monthly", purchaseHandler.MonthlyReport)
		purchases.GET("/:id/receipt", purchaseHandler.Receipt)
		purchases.POST("/receipt", purchaseHandler.OCR)
	}

	// ───────────────────────── SUPERMARKET ROUTES ─────────────────────────
	supermarkets := r.Group("/api/supermarkets")
	supermarkets.Use(middleware.AuthMiddleware())
	{
		supermarkets.GET("", supermarketHandler.List)
		supermarkets.GET("/:id", supermarketHandler.Get)
		supermarkets.POST("", supermarketHandler.Create)
		supermarkets.PUT("/:id", supermarketHandler.Update)
		supermarkets.DELETE("/:id", supermarketHandler.Delete)
		supermarkets.GET("/:id/price-history/:ingredientId", ingredientHandler.SupermarketHistory)
	}

	// ───────────────────────── PRODUCT ROUTES ─────────────────────────
	products := r.Group("/api/supermarket-products")
	products.Use(middleware.AuthMiddleware())
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.GET("/search/:query", productHandler.Search)
		products.GET("/compare/:productName", productHandler.Compare)
		products.POST("", productHandler.Create)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
	}

	// ───────────────────────── SHOPPING LIST ROUTES ─────────────────────────
	shoppingLists := r.Group("/api/shopping-lists")
	shoppingLists.Use(middleware.AuthMiddleware())
	{
		shoppingLists.GET("", shoppingListHandler.List)
		shoppingLists.GET("/:id", shoppingListHandler.Get)
		shoppingLists.GET("/status/active", shoppingListHandler.Active)
		shoppingLists.POST("", shoppingListHandler.Create)
		shoppingLists.PUT("/:id", shoppingListHandler.Update)
		shoppingLists.DELETE("/:id", shoppingListHandler.Delete)
		shoppingLists.POST("/:id/items", shoppingListHandler.AddItem)
		shoppingLists.PUT("/:id/items/:itemId", shoppingListHandler.UpdateItem)
		shoppingLists.DELETE("/:id/items/:itemId", shoppingListHandler.RemoveItem)
		shoppingLists.POST("/:id/add-product/:productId", shoppingListHandler.AddProduct)
		shoppingLists.POST("/:id/add-ingredient/:ingredientId", shoppingListHandler.AddIngredient)
		shoppingLists.POST("/:id/complete", shoppingListHandler.Complete)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Println("🚀 API running at http://localhost:" + port)
	r.Run(":" + port)
}
