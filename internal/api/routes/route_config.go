package routes

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/internal/api/handlers"
	"Meal-Planner-Backend/internal/middleware"
	"Meal-Planner-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	MenuHandler     handlers.MenuHandler
	FavoriteHandler handlers.FavoriteHandler
	RecipeHandler   handlers.RecipeHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Favorites()
	c.MenuList()
	c.FoodSecret()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	c.App.Post("/api/login", c.UserHandler.Login)
	c.App.Post("/api/logout", c.UserHandler.Logout)
	c.App.Get("/api/auth/check-auth", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.CheckAuth)
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	admin := c.Middleware.RoleMiddleware(domain.RoleAdmin)

	user := c.App.Group("/api/users")
	{
		user.Post("", c.UserHandler.Register)

		// caller scoped, registered before the admin :id routes
		user.Get("/userdata", auth, c.UserHandler.GetUserData)
		user.Put("/updateuserdata", auth, c.UserHandler.UpdateUserData)
		user.Put("/avatar", auth, c.UserHandler.UploadAvatar)

		user.Get("", auth, admin, c.UserHandler.GetAccounts)
		user.Get("/:id", auth, admin, c.UserHandler.GetAccount)
		user.Put("/:id", auth, admin, c.UserHandler.UpdateAccount)
		user.Put("/:id/status", auth, admin, c.UserHandler.UpdateAccountStatus)
	}
}

func (c *Config) Favorites() {
	favorites := c.App.Group("/api/favorites", c.Middleware.AuthMiddleware(c.JWTService))
	favorites.Get("", c.FavoriteHandler.GetFavorites)
	favorites.Get("/:recipeId", c.FavoriteHandler.CheckFavorite)
	favorites.Post("", c.FavoriteHandler.AddFavorite)
	favorites.Delete("/:recipeId", c.FavoriteHandler.RemoveFavorite)
}

func (c *Config) MenuList() {
	menu := c.App.Group("/api/menuList")

	// the share token is the credential here
	menu.Get("/shared/:token", c.MenuHandler.GetSharedMenu)

	auth := c.Middleware.AuthMiddleware(c.JWTService)
	menu.Post("", auth, c.MenuHandler.CreateMenu)
	menu.Get("", auth, c.MenuHandler.GetMenus)
	menu.Get("/fetch", auth, c.MenuHandler.FetchMenu)
	menu.Put("/updateMeal", auth, c.MenuHandler.UpdateMeal)
	menu.Delete("/delete", auth, c.MenuHandler.DeleteMenu)
	menu.Put("/extend", auth, c.MenuHandler.ExtendMenu)
	menu.Post("/share", auth, c.MenuHandler.ShareMenu)
	menu.Post("/share/email", auth, c.MenuHandler.ShareMenuByEmail)
	menu.Post("/unshare", auth, c.MenuHandler.UnshareMenu)
	menu.Get("/check-share/:menuId", auth, c.MenuHandler.CheckShare)
	menu.Post("/copy-shared", auth, c.MenuHandler.CopySharedMenu)
}

func (c *Config) FoodSecret() {
	foodSecret := c.App.Group("/foodSecret", c.Middleware.AuthMiddleware(c.JWTService))
	foodSecret.Get("/search", c.RecipeHandler.SearchRecipes)
	foodSecret.Get("/search/recipes", c.RecipeHandler.GetRecipes)
	foodSecret.Get("/search/random", c.RecipeHandler.GetRandomRecipe)
}
