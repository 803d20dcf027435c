package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/P-E-E-K-A/peeka/docs"
	"github.com/P-E-E-K-A/peeka/internal/adapters/cache"
	httpHandlers "github.com/P-E-E-K-A/peeka/internal/adapters/http"
	"github.com/P-E-E-K-A/peeka/internal/adapters/repository"
	"github.com/P-E-E-K-A/peeka/internal/application/services"
	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/config"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/database"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
	cache  *cache.Store
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, localCache *cache.Store, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}

	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Repositories
	userRepo := repository.NewUserRepository(db.DB)
	profileRepo := repository.NewProfileRepository(db.DB)
	listRepo := repository.NewListRepository(db.DB)
	noteRepo := repository.NewNoteRepository(db.DB)
	widgetRepo := repository.NewWidgetRepository(db.DB)
	settingsRepo := repository.NewSettingsRepository(db.DB)
	authRepo := repository.NewAuthRepository(db.DB)

	// Services
	authService := services.NewAuthService(userRepo, profileRepo, settingsRepo, authRepo, cfg.JWT, appLogger)
	listService := services.NewListService(listRepo, localCache, appLogger)
	noteService := services.NewNoteService(noteRepo, localCache, appLogger)
	pluginService := services.NewPluginService(widgetRepo, appLogger)
	layoutService := services.NewLayoutService(localCache, appLogger)
	settingsService := services.NewSettingsService(settingsRepo, localCache, appLogger)

	// Handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	userHandler := httpHandlers.NewUserHandler(userRepo, profileRepo, appLogger)
	listHandler := httpHandlers.NewListHandler(listService, appLogger)
	noteHandler := httpHandlers.NewNoteHandler(noteService, appLogger)
	widgetHandler := httpHandlers.NewWidgetHandler(pluginService, appLogger)
	layoutHandler := httpHandlers.NewLayoutHandler(layoutService, pluginService, appLogger)
	settingsHandler := httpHandlers.NewSettingsHandler(settingsService, appLogger)
	dashboardHandler := httpHandlers.NewDashboardHandler(listService, noteService, pluginService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
		cache:  localCache,
	}

	server.setupMiddleware()
	server.setupRoutes(
		authHandler, userHandler, listHandler, noteHandler,
		widgetHandler, layoutHandler, settingsHandler, dashboardHandler,
		authService,
	)

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	authHandler *httpHandlers.AuthHandler,
	userHandler *httpHandlers.UserHandler,
	listHandler *httpHandlers.ListHandler,
	noteHandler *httpHandlers.NoteHandler,
	widgetHandler *httpHandlers.WidgetHandler,
	layoutHandler *httpHandlers.LayoutHandler,
	settingsHandler *httpHandlers.SettingsHandler,
	dashboardHandler *httpHandlers.DashboardHandler,
	authService *services.AuthService,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes (public)
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.RefreshToken)
	authGroup.POST("/logout", authHandler.Logout, s.authMiddleware(authService))

	// User routes (authenticated)
	userGroup := v1.Group("/users", s.authMiddleware(authService))
	userGroup.GET("/me", userHandler.GetCurrentUser)
	userGroup.GET("/me/profile", userHandler.GetProfile)
	userGroup.PUT("/me/profile", userHandler.UpdateProfile)

	// List-backed widget routes (authenticated)
	listGroup := v1.Group("/lists", s.authMiddleware(authService))
	listGroup.GET("/:kind", listHandler.GetItems)
	listGroup.POST("/:kind", listHandler.AddItem)
	listGroup.POST("/:kind/:id/toggle", listHandler.ToggleItem)
	listGroup.DELETE("/:kind/completed", listHandler.ClearCompleted)
	listGroup.DELETE("/:kind/:id", listHandler.DeleteItem)

	// Note routes (authenticated)
	noteGroup := v1.Group("/notes", s.authMiddleware(authService))
	noteGroup.GET("", noteHandler.GetNotes)
	noteGroup.POST("", noteHandler.CreateNote)
	noteGroup.PUT("/:id", noteHandler.UpdateNote)
	noteGroup.DELETE("/:id", noteHandler.DeleteNote)

	// Widget routes (authenticated)
	widgetGroup := v1.Group("/widgets", s.authMiddleware(authService))
	widgetGroup.GET("", widgetHandler.ListWidgets)
	widgetGroup.POST("", widgetHandler.ImportWidget)
	widgetGroup.GET("/:id", widgetHandler.GetWidget)
	widgetGroup.POST("/:id/toggle", widgetHandler.ToggleWidget)
	widgetGroup.DELETE("/:id", widgetHandler.RemoveWidget)

	// Layout routes (authenticated)
	layoutGroup := v1.Group("/layouts", s.authMiddleware(authService))
	layoutGroup.GET("", layoutHandler.GetLayouts)
	layoutGroup.PUT("", layoutHandler.SaveLayouts)
	layoutGroup.POST("/reset", layoutHandler.ResetLayouts)

	// Settings routes (authenticated)
	settingsGroup := v1.Group("/settings", s.authMiddleware(authService))
	settingsGroup.GET("", settingsHandler.GetSettings)
	settingsGroup.PATCH("", settingsHandler.UpdateSettings)

	// Dashboard aggregate (authenticated)
	v1.GET("/dashboard", dashboardHandler.GetDashboard, s.authMiddleware(authService))
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// statusForError maps domain sentinel errors to HTTP status codes.
func statusForError(err error) (int, bool) {
	switch {
	case errors.Is(err, entities.ErrItemNotFound),
		errors.Is(err, entities.ErrNoteNotFound),
		errors.Is(err, entities.ErrWidgetNotFound),
		errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrSettingsNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, entities.ErrEmptyText),
		errors.Is(err, entities.ErrInvalidURL),
		errors.Is(err, entities.ErrInsecureURL),
		errors.Is(err, entities.ErrUnknownListKind),
		errors.Is(err, entities.ErrInvalidSetting):
		return http.StatusBadRequest, true
	case errors.Is(err, entities.ErrUnauthorized),
		errors.Is(err, entities.ErrNoOwner):
		return http.StatusUnauthorized, true
	}
	return 0, false
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if ve, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": ve.Error()}
		} else if status, ok := statusForError(err); ok {
			code = status
			msg = map[string]string{"message": err.Error()}
		} else {
			msg = map[string]string{"message": err.Error()}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
