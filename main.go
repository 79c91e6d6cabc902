package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mediafeed/app/comment"
	"mediafeed/app/news"
	"mediafeed/app/user"
	"mediafeed/app/videopost"
	"mediafeed/infra/postgres"
	"mediafeed/infra/rabbitmq"
	"mediafeed/internal/middleware"
	"mediafeed/pkg/config"
	"mediafeed/pkg/events"
	"mediafeed/pkg/httperror"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

// statusCoder lets a response pick its own success status, 200 otherwise.
type statusCoder interface {
	StatusCode() int
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ReqHeaderParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_headers",
				"Invalid headers",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		if sc, ok := any(res).(statusCoder); ok {
			return c.Status(sc.StatusCode()).JSON(res)
		}

		return c.JSON(res)
	}
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config", zap.Any("appConfig", appConfig))

	app := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
	})

	app.Use(middleware.NewRequestTraceMiddleware())

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.PostgresSSLMode,
	)
	defer pgRepository.Close()

	// Event publishing is best effort: without a broker the API still serves,
	// only the denormalized counters go stale.
	var eventPublisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Warn("Event publishing disabled", zap.Error(err))
		} else {
			eventPublisher = publisher
			defer publisher.Close()
		}
	}

	listUsersHandler := user.NewListUsersHandler(pgRepository)
	getUserHandler := user.NewGetUserHandler(pgRepository)

	createNewsHandler := news.NewCreateNewsHandler(pgRepository)
	getNewsHandler := news.NewGetNewsHandler(pgRepository, pgRepository)
	listNewsHandler := news.NewListNewsHandler(pgRepository)
	updateNewsHandler := news.NewUpdateNewsHandler(pgRepository)
	deleteNewsHandler := news.NewDeleteNewsHandler(pgRepository)

	createVideoPostHandler := videopost.NewCreateVideoPostHandler(pgRepository)
	getVideoPostHandler := videopost.NewGetVideoPostHandler(pgRepository, pgRepository)
	listVideoPostsHandler := videopost.NewListVideoPostsHandler(pgRepository)
	updateVideoPostHandler := videopost.NewUpdateVideoPostHandler(pgRepository)
	deleteVideoPostHandler := videopost.NewDeleteVideoPostHandler(pgRepository)

	createCommentHandler := comment.NewCreateCommentHandler(pgRepository, eventPublisher)
	getCommentHandler := comment.NewGetCommentHandler(pgRepository)
	updateCommentHandler := comment.NewUpdateCommentHandler(pgRepository, eventPublisher)
	deleteCommentHandler := comment.NewDeleteCommentHandler(pgRepository, eventPublisher)
	listRepliesHandler := comment.NewListRepliesHandler(pgRepository)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"pool":   pgRepository.GetPoolStats(),
		})
	})

	publicRoutes := app.Group("/api/v1")

	publicRoutes.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": appConfig.ServiceName,
			"version": "v1",
			"resources": []string{
				"/api/v1/users",
				"/api/v1/news",
				"/api/v1/video-posts",
				"/api/v1/comments",
			},
		})
	})

	publicRoutes.Get("/users", handle[user.ListUsersRequest, user.ListUsersResponse](listUsersHandler))
	publicRoutes.Get("/users/:id", handle[user.GetUserRequest, user.GetUserResponse](getUserHandler))

	publicRoutes.Get("/news", handle[news.ListNewsRequest, news.ListNewsResponse](listNewsHandler))
	publicRoutes.Get("/news/:id", handle[news.GetNewsRequest, news.GetNewsResponse](getNewsHandler))
	publicRoutes.Post("/news", handle[news.CreateNewsRequest, news.CreateNewsResponse](createNewsHandler))
	publicRoutes.Put("/news/:id", handle[news.UpdateNewsRequest, news.UpdateNewsResponse](updateNewsHandler))
	publicRoutes.Delete("/news/:id", handle[news.DeleteNewsRequest, news.DeleteNewsResponse](deleteNewsHandler))

	publicRoutes.Get("/video-posts", handle[videopost.ListVideoPostsRequest, videopost.ListVideoPostsResponse](listVideoPostsHandler))
	publicRoutes.Get("/video-posts/:id", handle[videopost.GetVideoPostRequest, videopost.GetVideoPostResponse](getVideoPostHandler))
	publicRoutes.Post("/video-posts", handle[videopost.CreateVideoPostRequest, videopost.CreateVideoPostResponse](createVideoPostHandler))
	publicRoutes.Put("/video-posts/:id", handle[videopost.UpdateVideoPostRequest, videopost.UpdateVideoPostResponse](updateVideoPostHandler))
	publicRoutes.Delete("/video-posts/:id", handle[videopost.DeleteVideoPostRequest, videopost.DeleteVideoPostResponse](deleteVideoPostHandler))

	publicRoutes.Post("/comments", handle[comment.CreateCommentRequest, comment.CreateCommentResponse](createCommentHandler))
	publicRoutes.Get("/comments/:id", handle[comment.GetCommentRequest, comment.GetCommentResponse](getCommentHandler))
	publicRoutes.Get("/comments/:id/replies", handle[comment.ListRepliesRequest, comment.ListRepliesResponse](listRepliesHandler))
	publicRoutes.Put("/comments/:id", handle[comment.UpdateCommentRequest, comment.UpdateCommentResponse](updateCommentHandler))
	publicRoutes.Delete("/comments/:id", handle[comment.DeleteCommentRequest, comment.DeleteCommentResponse](deleteCommentHandler))

	// Start server in a goroutine
	go func() {
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	// Shutdown with 5 second timeout
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
