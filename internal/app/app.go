package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/config"
	"github.com/parathan/blog-core/internal/database"
	"github.com/parathan/blog-core/internal/middleware"
	"github.com/parathan/blog-core/internal/pkg/jwt"
	"github.com/parathan/blog-core/internal/pkg/mail"
	pkgredis "github.com/parathan/blog-core/internal/pkg/redis"
	"github.com/parathan/blog-core/internal/pkg/storage"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.Config
	router *gin.Engine
	db     *gorm.DB
	store  storage.Provider
	mailer *mail.Sender
	logger *zap.Logger
}

// New initializes the application: config → DB → Redis → storage → routes.
func New(logger *zap.Logger, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if cfg.JWTSecret != "" {
		jwt.SetSecret(cfg.JWTSecret)
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.Redis.URLValue())
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	mailer := mail.New(cfg.Mail)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if cfg.IsDev() {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		webHost := extractOriginHost(cfg.WebURL)
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return matchOriginPattern(webHost, extractOriginHost(origin))
		}
	}
	router.Use(cors.New(corsConfig))

	app := &App{
		cfg:    cfg,
		router: router,
		db:     db,
		store:  store,
		mailer: mailer,
		logger: logger,
	}
	app.registerRoutes(rc)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }
