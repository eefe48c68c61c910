package routes

import (
	"github.com/ViniMagaa/cyberlevel-sub001/backend/config"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/controllers"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/middleware"
	"github.com/ViniMagaa/cyberlevel-sub001/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)
	responsibleMiddleware := middleware.ResponsibleMiddleware(db, cfg)

	// Prometheus metrics
	app.Get("/metrics", utils.MetricsHandler())

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Module routes
	moduleController := controllers.NewModuleController(db, cfg)
	modules := app.Group("/api/modules", authMiddleware)
	modules.Get("/", moduleController.GetModules)
	modules.Get("/:id", moduleController.GetModuleDetails)

	// Activity routes
	activityController := controllers.NewActivityController(db, cfg)
	activities := app.Group("/api/activities", authMiddleware)
	activities.Get("/:id", activityController.GetActivity)
	activities.Post("/:id/start", activityController.StartActivity)
	activities.Post("/:id/complete", activityController.CompleteActivity)

	// Stats routes
	statsController := controllers.NewStatsController(db, cfg)
	stats := app.Group("/api/stats", authMiddleware)
	stats.Get("/dashboard", statsController.GetDashboard)
	stats.Get("/ranking", statsController.GetRanking)

	// Article routes (public reads)
	articleController := controllers.NewArticleController(db, cfg)
	app.Get("/api/articles", articleController.GetArticles)
	app.Get("/api/articles/:slug", articleController.GetArticleBySlug)

	// Store routes
	storeController := controllers.NewStoreController(db, cfg)
	store := app.Group("/api/store", authMiddleware)
	store.Get("/products", storeController.GetProducts)
	store.Post("/orders", storeController.CreateOrder)
	store.Get("/orders", storeController.GetMyOrders)

	// Responsible routes
	responsibleController := controllers.NewResponsibleController(db, cfg)
	responsible := app.Group("/api/responsible", authMiddleware, responsibleMiddleware)
	responsible.Get("/learners", responsibleController.GetLearners)
	responsible.Post("/learners", responsibleController.LinkLearner)

	// Admin routes for content
	adminModules := app.Group("/api/admin/modules", authMiddleware, adminMiddleware)
	adminModules.Post("/", moduleController.CreateModule)
	adminModules.Put("/:id", moduleController.UpdateModule)
	adminModules.Post("/:id/activities", moduleController.AddActivity)
	adminModules.Put("/:id/activities/:activityId", moduleController.UpdateActivity)

	adminArticles := app.Group("/api/admin/articles", authMiddleware, adminMiddleware)
	adminArticles.Post("/", articleController.CreateArticle)
	adminArticles.Put("/:id", articleController.UpdateArticle)
	adminArticles.Delete("/:id", articleController.DeleteArticle)

	// Admin routes for the store
	adminStore := app.Group("/api/admin/store", authMiddleware, adminMiddleware)
	adminStore.Post("/products", storeController.CreateProduct)
	adminStore.Put("/products/:id", storeController.UpdateProduct)
	adminStore.Put("/orders/:id/status", storeController.UpdateOrderStatus)
}
