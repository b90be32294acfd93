package config

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/internal/testutil"
	"Meal-Planner-Backend/pkg/jwt"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRecipes struct{}

func (stubRecipes) Search(_ context.Context, query string, maxResults, page int) (domain.RecipeSearchResponse, error) {
	if query == "fail" {
		return domain.RecipeSearchResponse{}, domain.ErrRecipeProvider
	}
	return domain.RecipeSearchResponse{
		Recipes:      []domain.RecipeSummary{{ID: "42", Name: "Pancakes"}},
		TotalResults: 1,
		MaxResults:   maxResults,
		PageNumber:   page,
	}, nil
}

func (stubRecipes) GetRecipe(_ context.Context, id string) (domain.Recipe, error) {
	if id == "404" {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}
	return domain.Recipe{ID: id, Name: "Recipe " + id}, nil
}

type stubStorage struct{}

func (stubStorage) UploadFile(_ context.Context, name string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	return folder + "/" + name + ".png", nil
}
func (stubStorage) GetPublicLinkKey(key string) string { return "https://cdn.example.com/" + key }
func (stubStorage) Enabled() bool                      { return true }

type stubMailer struct{ sent int }

func (m *stubMailer) SendMail(string, string, string) error { m.sent++; return nil }
func (m *stubMailer) Enabled() bool                         { return true }

type env struct {
	app *fiber.App
	db  *gorm.DB
	jwt jwt.JWTService
}

func newEnv(t *testing.T) env {
	t.Helper()
	t.Setenv("RATE_LIMIT_MAX", "10000")
	db := testutil.NewDB(t)
	jwtService := jwt.NewJWTService("test-secret", time.Hour)

	app, err := NewAppWithDependencies(db, Dependencies{
		JWTService:   jwtService,
		Storage:      stubStorage{},
		Mailer:       &stubMailer{},
		RecipeClient: stubRecipes{},
		LogOutput:    io.Discard,
	})
	require.NoError(t, err)
	return env{app: app, db: db, jwt: jwtService}
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func (e env) do(t *testing.T, method, path string, body any, token string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func (e env) signup(t *testing.T, email, phone string) string {
	t.Helper()
	resp, _ := e.do(t, fiber.MethodPost, "/api/users", map[string]string{
		"email": email, "password": "Secret#123", "name": "Ana", "lastName": "Lee", "phoneNumber": phone,
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = e.do(t, fiber.MethodPost, "/api/login", map[string]string{"email": email, "password": "Secret#123"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			assert.True(t, cookie.HttpOnly)
			return cookie.Value
		}
	}
	t.Fatal("login did not set the token cookie")
	return ""
}

func TestPing(t *testing.T) {
	e := newEnv(t)
	resp, err := e.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegister_WeakPasswordEnumeratesRules(t *testing.T) {
	e := newEnv(t)
	resp, body := e.do(t, fiber.MethodPost, "/api/users", map[string]string{
		"email": "a@example.com", "password": "abc", "name": "Ana", "lastName": "Lee", "phoneNumber": "123456789",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.ElementsMatch(t, []string{"min_length", "uppercase", "digit", "special"}, body.Errors["password"])
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "a@example.com", "123456789")

	resp, body := e.do(t, fiber.MethodPost, "/api/users", map[string]string{
		"email": "a@example.com", "password": "Secret#123", "name": "B", "lastName": "C", "phoneNumber": "987654321",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body.Code)
}

func TestAuth_CookieAndLogout(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@example.com", "123456789")

	req := httptest.NewRequest(fiber.MethodGet, "/api/auth/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := e.do(t, fiber.MethodGet, "/api/auth/check-auth", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", body.Code)

	resp, _ = e.do(t, fiber.MethodPost, "/api/logout", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			assert.Empty(t, cookie.Value)
		}
	}
}

func TestLogin_DeactivatedAccountGets403(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "a@example.com", "123456789")
	admin, _ := testutil.CreateAccount(t, e.db, "admin@example.com", domain.RoleAdmin)
	adminToken, err := e.jwt.GenerateToken(admin)
	require.NoError(t, err)

	resp, body := e.do(t, fiber.MethodGet, "/api/users", nil, adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	accounts := decode[[]domain.UserResponse](t, body.Data)
	var target string
	for _, account := range accounts {
		if account.Email == "a@example.com" {
			target = account.AccountID
		}
	}
	require.NotEmpty(t, target)

	resp, _ = e.do(t, fiber.MethodPut, "/api/users/"+target+"/status", map[string]string{"status": "deactivated"}, adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = e.do(t, fiber.MethodPost, "/api/login", map[string]string{"email": "a@example.com", "password": "Secret#123"}, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Code)

	resp, _ = e.do(t, fiber.MethodPost, "/api/login", map[string]string{"email": "a@example.com", "password": "Wrong#123"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@example.com", "123456789")

	resp, body := e.do(t, fiber.MethodGet, "/api/users", nil, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Code)

	resp, body = e.do(t, fiber.MethodGet, "/api/users/userdata", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "a@example.com", decode[domain.UserResponse](t, body.Data).Email)

	resp, body = e.do(t, fiber.MethodPut, "/api/users/updateuserdata", map[string]string{"name": "Anna"}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Anna", decode[domain.UserResponse](t, body.Data).Name)
}

func TestMenuList_WeekOneFlow(t *testing.T) {
	e := newEnv(t)
	owner := e.signup(t, "owner@example.com", "123456789")
	other := e.signup(t, "other@example.com", "987654321")

	resp, body := e.do(t, fiber.MethodPost, "/api/menuList", map[string]any{"name": "Week 1", "number": 7}, owner)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	menuID := decode[domain.MenuSummary](t, body.Data).ID

	resp, _ = e.do(t, fiber.MethodPut, "/api/menuList/updateMeal", map[string]any{
		"menuId": menuID, "dayIndex": 0, "mealType": "Breakfast", "recipeId": "42",
	}, owner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = e.do(t, fiber.MethodPut, "/api/menuList/updateMeal", map[string]any{
		"menuId": menuID, "dayIndex": 9, "mealType": "Breakfast", "recipeId": "42",
	}, owner)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	resp, body = e.do(t, fiber.MethodPost, "/api/menuList/share", map[string]string{"menuId": menuID}, owner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	shareToken := decode[domain.ShareMenuResponse](t, body.Data).Token

	// the shared view needs no session
	resp, body = e.do(t, fiber.MethodGet, "/api/menuList/shared/"+shareToken, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Week 1", decode[domain.SharedMenuResponse](t, body.Data).Menu.Name)

	resp, body = e.do(t, fiber.MethodPost, "/api/menuList/copy-shared", map[string]string{"token": shareToken}, other)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	copyID := decode[domain.CopySharedResponse](t, body.Data).MenuID

	resp, body = e.do(t, fiber.MethodGet, "/api/menuList/fetch?menuId="+copyID, nil, other)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []domain.MealSlot{{RecipeID: "42", DayIndex: 0, MealType: "Breakfast"}}, decode[[]domain.MealSlot](t, body.Data))

	// owner-scoped routes hide other users' plans
	resp, body = e.do(t, fiber.MethodGet, "/api/menuList/fetch?menuId="+menuID, nil, other)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)

	resp, body = e.do(t, fiber.MethodGet, "/api/menuList/check-share/"+menuID, nil, owner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	status := decode[domain.ShareStatusResponse](t, body.Data)
	require.NotNil(t, status.Token)
	assert.Equal(t, shareToken, *status.Token)

	resp, _ = e.do(t, fiber.MethodPost, "/api/menuList/unshare", map[string]string{"menuId": menuID}, owner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = e.do(t, fiber.MethodGet, "/api/menuList/shared/"+shareToken, nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = e.do(t, fiber.MethodPut, "/api/menuList/extend", map[string]any{"menuId": menuID, "additionalDays": 3}, owner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, decode[domain.ExtendMenuResponse](t, body.Data).DayCount)

	resp, body = e.do(t, fiber.MethodPost, "/api/menuList/share/email", map[string]string{"menuId": menuID, "email": "friend@example.com"}, owner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[domain.ShareMenuResponse](t, body.Data).Token)

	resp, _ = e.do(t, fiber.MethodDelete, "/api/menuList/delete?menuId="+menuID, nil, owner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = e.do(t, fiber.MethodGet, "/api/menuList/fetch?menuId="+menuID, nil, owner)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = e.do(t, fiber.MethodGet, "/api/menuList", nil, owner)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]domain.MenuSummary](t, body.Data))
}

func TestMenuList_RequiresSession(t *testing.T) {
	e := newEnv(t)
	resp, body := e.do(t, fiber.MethodGet, "/api/menuList", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", body.Code)
}

func TestFavorites_Routes(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@example.com", "123456789")

	resp, _ := e.do(t, fiber.MethodPost, "/api/favorites", map[string]string{"recipeId": "42"}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := e.do(t, fiber.MethodGet, "/api/favorites/42", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decode[domain.FavoriteCheckResponse](t, body.Data).IsFavorite)

	resp, _ = e.do(t, fiber.MethodDelete, "/api/favorites/42", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = e.do(t, fiber.MethodGet, "/api/favorites", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[domain.FavoriteListResponse](t, body.Data).RecipeIDs)
}

func TestFoodSecret_Routes(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@example.com", "123456789")

	resp, _ := e.do(t, fiber.MethodGet, "/foodSecret/search?query=soup", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := e.do(t, fiber.MethodGet, "/foodSecret/search?query=soup&max_results=5&page_number=2", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	search := decode[domain.RecipeSearchResponse](t, body.Data)
	assert.Equal(t, 5, search.MaxResults)
	assert.Equal(t, 2, search.PageNumber)

	resp, body = e.do(t, fiber.MethodGet, "/foodSecret/search?query=fail", nil, token)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_ERROR", body.Code)

	resp, body = e.do(t, fiber.MethodGet, "/foodSecret/search/recipes?ids=1,404,3", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	recipes := decode[[]domain.Recipe](t, body.Data)
	require.Len(t, recipes, 2)
	assert.Equal(t, "1", recipes[0].ID)
	assert.Equal(t, "3", recipes[1].ID)

	resp, body = e.do(t, fiber.MethodGet, "/foodSecret/search/random", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "42", decode[domain.Recipe](t, body.Data).ID)
}
