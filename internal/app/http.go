package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/cludy/internal/config"
	v1 "github.com/balkashynov/cludy/internal/delivery/http/v1"
	"github.com/balkashynov/cludy/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT

	authService := services.NewAuthService(
		globalLogger,
		globalDB,
		jwtCfg.Issuer,
		[]byte(jwtCfg.SecretKey),
		jwtCfg.TokenTTL,
	)
	taskService := services.NewTaskService(globalLogger, globalDB)
	sessionService := services.NewSessionService(globalLogger, globalDB)

	h := v1.New(globalLogger, authService, taskService, sessionService)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authRouter := api.Group("/auth")
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/login", h.HandleLogin)
	authRouter.GET("/me", h.HandleRequireAuthMiddleware, h.HandleMe)

	taskRouter := api.Group("/tasks", h.HandleOptionalAuthMiddleware)
	taskRouter.GET("", h.HandleGetTasks)
	taskRouter.POST("", h.HandleCreateTask)
	taskRouter.GET("/:id", h.HandleGetTask)
	taskRouter.PUT("/:id", h.HandleUpdateTask)
	taskRouter.DELETE("/:id", h.HandleDeleteTask)

	sessionRouter := api.Group("/sessions")
	sessionRouter.GET("/stats", h.HandleRequireAuthMiddleware, h.HandleGetStats)
	sessionRouter.GET("", h.HandleOptionalAuthMiddleware, h.HandleGetSessions)
	sessionRouter.POST("", h.HandleOptionalAuthMiddleware, h.HandleCreateSession)
	sessionRouter.GET("/task/:taskId", h.HandleOptionalAuthMiddleware, h.HandleGetTaskSessions)
	sessionRouter.PUT("/:id/complete", h.HandleOptionalAuthMiddleware, h.HandleCompleteSession)
}
