package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/config"
	"content-studio-backend/internal/handlers"
	"content-studio-backend/internal/middleware"
	"content-studio-backend/internal/models"
	"content-studio-backend/internal/repository"
	"content-studio-backend/internal/sections"
	"content-studio-backend/internal/service"
	"content-studio-backend/internal/storage"
	"content-studio-backend/pkg/cache"
	"content-studio-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	db    *gorm.DB
	cache *cache.Cache
	store storage.BlobStore

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	router *gin.Engine
	server *http.Server
}

type repositoryContainer struct {
	Section  repository.SectionRepository
	Business repository.BusinessRepository
	Product  repository.ProductRepository
	Article  repository.ArticleRepository
}

type serviceContainer struct {
	Section  *service.SectionService
	Business *service.BusinessService
	Product  *service.ProductService
	Article  *service.ArticleService
}

type handlerContainer struct {
	Section  *handlers.SectionHandler
	Business *handlers.BusinessHandler
	Product  *handlers.ProductHandler
	Article  *handlers.ArticleHandler
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.runMigrations(); err != nil {
		return nil, err
	}

	if err := app.createIndexes(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		return nil, err
	}

	if err := app.initStorage(); err != nil {
		return nil, err
	}

	app.initRepositories()
	app.initServices()
	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(
		&models.Section{},
		&models.Business{},
		&models.Product{},
		&models.Article{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) createIndexes() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Creating database indexes", nil)

	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_sections_type ON sections(type)",
		"CREATE INDEX IF NOT EXISTS idx_sections_payload ON sections USING GIN (payload)",
		"CREATE INDEX IF NOT EXISTS idx_businesses_published ON businesses(published) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_products_published ON products(published) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published) WHERE published = true",
		"CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC)",
	}

	for _, stmt := range statements {
		if err := a.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func (a *Application) initCache() error {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableCache && a.cfg.EnableRedis)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	a.cache = c
	return nil
}

func (a *Application) initStorage() error {
	switch a.cfg.StorageBackend {
	case "memory":
		a.store = storage.NewMemoryStore(a.cfg.ContainerPrefix)
		logger.Warn("Using in-memory blob storage, objects will not survive a restart", nil)
	default:
		store, err := storage.NewMinIOStore(
			a.cfg.MinIOEndpoint,
			a.cfg.MinIOAccessKey,
			a.cfg.MinIOSecretKey,
			a.cfg.MinIOBucket,
			a.cfg.ContainerPrefix,
			a.cfg.MinIOUseSSL,
		)
		if err != nil {
			return err
		}
		a.store = store
	}
	return nil
}

func (a *Application) initRepositories() {
	a.repositories = repositoryContainer{
		Section:  repository.NewSectionRepository(a.db),
		Business: repository.NewBusinessRepository(a.db),
		Product:  repository.NewProductRepository(a.db),
		Article:  repository.NewArticleRepository(a.db),
	}
}

func (a *Application) initServices() {
	adapter := assets.NewAdapter(a.store)
	resolver := sections.NewResolver(adapter, nil)

	sectionService := service.NewSectionService(a.repositories.Section, resolver, nil)
	entitySections := service.NewEntitySections(a.repositories.Section, sectionService, adapter)

	a.services = serviceContainer{
		Section:  sectionService,
		Business: service.NewBusinessService(a.repositories.Business, entitySections, a.cache, nil),
		Product:  service.NewProductService(a.repositories.Product, entitySections, a.cache, nil),
		Article:  service.NewArticleService(a.repositories.Article, entitySections, a.cache, nil),
	}
}

func (a *Application) initHandlers() {
	a.handlers = handlerContainer{
		Section:  handlers.NewSectionHandler(a.services.Section),
		Business: handlers.NewBusinessHandler(a.services.Business),
		Product:  handlers.NewProductHandler(a.services.Product),
		Article:  handlers.NewArticleHandler(a.services.Article),
	}
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	router.Use(middleware.RequestIDMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		{
			public.GET("/businesses", a.handlers.Business.GetAll)
			public.GET("/businesses/:id", a.handlers.Business.GetByID)
			public.GET("/businesses/slug/:slug", a.handlers.Business.GetBySlug)

			public.GET("/products", a.handlers.Product.GetAll)
			public.GET("/products/:id", a.handlers.Product.GetByID)
			public.GET("/products/slug/:slug", a.handlers.Product.GetBySlug)

			public.GET("/articles", a.handlers.Article.GetAll)
			public.GET("/articles/:id", a.handlers.Article.GetByID)
			public.GET("/articles/slug/:slug", a.handlers.Article.GetBySlug)

			public.GET("/sections/:id", a.handlers.Section.GetByID)
			public.GET("/section-types", a.handlers.Section.GetAvailableTypes)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(a.cfg.JWTSecret))
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/businesses", a.handlers.Business.Create)
			admin.PUT("/businesses/:id", a.handlers.Business.Update)
			admin.DELETE("/businesses/:id", a.handlers.Business.Delete)

			admin.POST("/products", a.handlers.Product.Create)
			admin.PUT("/products/:id", a.handlers.Product.Update)
			admin.DELETE("/products/:id", a.handlers.Product.Delete)

			admin.POST("/articles", a.handlers.Article.Create)
			admin.PUT("/articles/:id", a.handlers.Article.Update)
			admin.DELETE("/articles/:id", a.handlers.Article.Delete)

			admin.POST("/sections/clone", a.handlers.Section.Clone)
			admin.DELETE("/sections/:id", a.handlers.Section.Delete)
		}
	}

	a.router = router
}
