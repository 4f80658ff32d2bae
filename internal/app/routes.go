package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parathan/blog-core/internal/middleware"
	"github.com/parathan/blog-core/internal/modules/auth"
	"github.com/parathan/blog-core/internal/modules/category"
	"github.com/parathan/blog-core/internal/modules/contact"
	"github.com/parathan/blog-core/internal/modules/mastercategory"
	"github.com/parathan/blog-core/internal/modules/newsletter"
	"github.com/parathan/blog-core/internal/modules/portfolio"
	"github.com/parathan/blog-core/internal/modules/post"
	pkgredis "github.com/parathan/blog-core/internal/pkg/redis"
	"github.com/parathan/blog-core/internal/pkg/response"
	"github.com/parathan/blog-core/internal/pkg/storage"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	cfg := a.cfg
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// optional auth first so the rate limiter can exempt logged-in traffic
	r.Use(middleware.OptionalAuth())
	r.Use(middleware.RateLimit(rc.Raw()))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong", "time": time.Now().Format(time.RFC3339)})
	})
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	// uploads are served straight off disk when the local provider is active
	if local, ok := a.store.(*storage.Local); ok {
		r.Static("/uploads", local.Dir())
	}

	api := r.Group("/api")

	auth.NewHandler(auth.NewService(db, a.mailer, a.logger, cfg.WebURL), cfg.IsDev()).RegisterRoutes(api, authMW)
	mastercategory.NewHandler(mastercategory.NewService(db)).RegisterRoutes(api, authMW)
	category.NewHandler(category.NewService(db)).RegisterRoutes(api, authMW)
	post.NewHandler(post.NewService(db), a.store, cfg.Upload).RegisterRoutes(api, authMW)
	portfolio.NewHandler(portfolio.NewService(db)).RegisterRoutes(api, authMW)
	contact.NewHandler(contact.NewService(db, a.mailer, a.logger)).RegisterRoutes(api, authMW)
	newsletter.NewHandler(newsletter.NewService(db, a.mailer, a.logger, cfg.AppURL, cfg.WebURL)).RegisterRoutes(api, authMW)
}
