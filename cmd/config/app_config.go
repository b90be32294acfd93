package config

import (
	"Meal-Planner-Backend/internal/api/handlers"
	"Meal-Planner-Backend/internal/api/presenters"
	"Meal-Planner-Backend/internal/api/routes"
	"Meal-Planner-Backend/internal/middleware"
	"Meal-Planner-Backend/internal/utils"
	"Meal-Planner-Backend/internal/utils/mailing"
	"Meal-Planner-Backend/internal/utils/storage"
	"Meal-Planner-Backend/pkg/favorite"
	"Meal-Planner-Backend/pkg/jwt"
	"Meal-Planner-Backend/pkg/menu"
	"Meal-Planner-Backend/pkg/recipe"
	"Meal-Planner-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Dependencies holds the outbound collaborators of the app. Nil fields are built from config.
type Dependencies struct {
	JWTService   jwt.JWTService
	Storage      storage.AwsS3
	Mailer       mailing.Mailer
	RecipeClient recipe.RecipeClient
	LogOutput    io.Writer
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	return NewAppWithDependencies(db, Dependencies{})
}

func NewAppWithDependencies(db *gorm.DB, deps Dependencies) (*fiber.App, error) {
	utils.InitValidator()
	validator := utils.Validate

	if err := deps.fill(); err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ALLOW_ORIGINS"))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     deps.LogOutput,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX"),
		Expiration: utils.GetConfigDuration("RATE_LIMIT_WINDOW"),
		LimitReached: func(c *fiber.Ctx) error {
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, "too many requests", nil)
		},
	}))

	// Repository
	userRepository := user.NewUserRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)

	// Service
	userService := user.NewUserService(userRepository, deps.JWTService, deps.Storage)
	menuService := menu.NewMenuService(menuRepository, userService, deps.Mailer, utils.GetConfig("APP_URL"))
	favoriteService := favorite.NewFavoriteService(favoriteRepository, userService)
	recipeService := recipe.NewRecipeService(deps.RecipeClient)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator, deps.JWTService, utils.GetConfigBool("COOKIE_SECURE"))
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		MenuHandler:     menuHandler,
		FavoriteHandler: favoriteHandler,
		RecipeHandler:   recipeHandler,
		Middleware:      middlewares,
		JWTService:      deps.JWTService,
	}
	routesConfig.Setup()
	return app, nil
}

func (d *Dependencies) fill() error {
	if d.JWTService == nil {
		secret := utils.GetConfig("JWT_SECRET")
		if secret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		d.JWTService = jwt.NewJWTService(secret, utils.GetConfigDuration("JWT_TTL"))
	}

	if d.Storage == nil {
		s3, err := storage.NewAwsS3(context.Background(), storage.LoadS3Config())
		if err != nil {
			return err
		}
		d.Storage = s3
	}

	if d.Mailer == nil {
		d.Mailer = mailing.NewMailer(mailing.LoadMailConfig())
	}

	if d.RecipeClient == nil {
		tokens := recipe.NewTokenCache(recipe.NewClientCredentialsConfig(
			utils.GetConfig("FATSECRET_CLIENT_ID"),
			utils.GetConfig("FATSECRET_CLIENT_SECRET"),
			utils.GetConfig("FATSECRET_TOKEN_URL"),
		))
		d.RecipeClient = recipe.NewRecipeClient(recipe.ClientConfig{
			BaseURL:    utils.GetConfig("FATSECRET_API_URL"),
			Timeout:    utils.GetConfigDuration("FATSECRET_TIMEOUT"),
			MaxRetries: uint64(utils.GetConfigInt("FATSECRET_MAX_RETRIES")),
		}, tokens)
	}

	if d.LogOutput == nil {
		output, err := openLogOutput(utils.GetConfig("LOG_FILE"))
		if err != nil {
			return err
		}
		d.LogOutput = output
	}
	return nil
}

// openLogOutput opens the access log file; "-" or an empty path logs to stdout.
func openLogOutput(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	return file, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		return presenters.ErrorResponse(c, status, fiberErr.Message, nil)
	}
	return presenters.ErrorResponse(c, status, "internal server error", err)
}
