package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/migrations"
	"taskboard/internal/repository"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	ServiceName     = "taskboard"
	shutdownTimeout = 5 * time.Second
)

// Version is stamped at build time with -ldflags "-X taskboard/internal/server.Version=...".
var Version = "dev"

type Server struct {
	Engine *gin.Engine
	DB     *database.DB
	Config *config.Config
	log    *log.Logger
}

// Init connects to the database, applies migrations when enabled and builds
// the HTTP engine. It fails fast when the database is unreachable.
func Init(ctx context.Context, cfg *config.Config, l *log.Logger) (*Server, error) {
	db, err := database.Open(ctx, cfg.DSN(), database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnectTimeout:  cfg.DBConnectTimeout,
		QueryTimeout:    cfg.DBQueryTimeout,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	l.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if cfg.RunMigrations {
		if err := migrate(cfg, l); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return New(cfg, db, l, prometheus.NewRegistry()), nil
}

func migrate(cfg *config.Config, l *log.Logger) error {
	m, err := migrations.New(cfg.DatabaseURL(), l.WithPrefix("migrate"))
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			l.Warn("closing migrator", "err", err)
		}
	}()
	return m.Up()
}

// New wires repositories, handlers and middleware around db. Metrics are
// registered on reg and served from /metrics.
func New(cfg *config.Config, db *database.DB, l *log.Logger, reg *prometheus.Registry) *Server {
	gin.SetMode(cfg.GinMode)
	r := gin.New()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		l.Error("panic recovered", "method", c.Request.Method, "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.ErrorResponse{Error: "internal server error"})
	}))
	r.Use(middleware.RequestLogger(l.WithPrefix("http")))
	r.Use(middleware.NewMetrics(reg).Middleware())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	boardUserRepo := repository.NewBoardUserRepository(db)
	listRepo := repository.NewListRepository(db)
	cardRepo := repository.NewCardRepository(db)
	cardUserRepo := repository.NewCardUserRepository(db)

	// Initialize handlers
	hl := l.WithPrefix("handler")
	userHandler := handler.NewUserHandler(userRepo, hl)
	boardHandler := handler.NewBoardHandler(boardRepo, hl)
	boardUserHandler := handler.NewBoardUserHandler(boardUserRepo, hl)
	listHandler := handler.NewListHandler(listRepo, hl)
	cardHandler := handler.NewCardHandler(cardRepo, hl)
	cardUserHandler := handler.NewCardUserHandler(cardUserRepo, hl)

	handler.NewHealthHandler(ServiceName, Version, db).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Users
	r.GET("/users", userHandler.List)
	r.POST("/users", userHandler.Create)

	// Boards and memberships
	r.GET("/boards", boardHandler.List)
	r.POST("/boards", boardHandler.Create)
	r.GET("/boards/:boardId/users", boardUserHandler.List)
	r.POST("/boards/:boardId/users", boardUserHandler.Create)

	// Lists
	r.GET("/boards/:boardId/lists", listHandler.List)
	r.POST("/boards/:boardId/lists", listHandler.Create)

	// Cards and ownerships
	r.GET("/lists/:listId/cards", cardHandler.List)
	r.POST("/lists/:listId/cards", cardHandler.Create)
	r.GET("/cards/:cardId/users", cardUserHandler.List)
	r.POST("/cards/:cardId/users", cardUserHandler.Create)

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		log:    l,
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// closes the connection pool.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = s.DB.Close()
			return fmt.Errorf("failed to listen: %w", err)
		}
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		shutdownErr = fmt.Errorf("server forced to shutdown: %w", shutdownErr)
	}
	if err := s.DB.Close(); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("close database: %w", err))
	}
	if shutdownErr == nil {
		s.log.Info("server exited properly")
	}
	return shutdownErr
}
