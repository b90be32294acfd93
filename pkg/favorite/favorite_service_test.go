package favorite_test

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/internal/testutil"
	"Meal-Planner-Backend/pkg/favorite"
	"Meal-Planner-Backend/pkg/jwt"
	"Meal-Planner-Backend/pkg/user"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, favorite.FavoriteService, domain.Identity) {
	t.Helper()
	db := testutil.NewDB(t)
	userService := user.NewUserService(user.NewUserRepository(db), jwt.NewJWTService("secret", time.Hour), nil)
	identity, _ := testutil.CreateAccount(t, db, "fav@example.com", domain.RoleUser)
	return db, favorite.NewFavoriteService(favorite.NewFavoriteRepository(db), userService), identity
}

func TestAdd_IsIdempotent(t *testing.T) {
	db, service, identity := setup(t)
	ctx := context.Background()

	require.NoError(t, service.Add(ctx, identity, domain.FavoriteRequest{RecipeID: "42"}))
	require.NoError(t, service.Add(ctx, identity, domain.FavoriteRequest{RecipeID: " 42 "}))

	var count int64
	require.NoError(t, db.Model(&entities.FavoriteRecipe{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	check, err := service.Check(ctx, identity, "42")
	require.NoError(t, err)
	assert.True(t, check.IsFavorite)
}

func TestList_AndRemove(t *testing.T) {
	_, service, identity := setup(t)
	ctx := context.Background()

	list, err := service.List(ctx, identity)
	require.NoError(t, err)
	assert.NotNil(t, list.RecipeIDs)
	assert.Empty(t, list.RecipeIDs)

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, service.Add(ctx, identity, domain.FavoriteRequest{RecipeID: id}))
	}
	require.NoError(t, service.Remove(ctx, identity, "2"))
	// removing something that is not a favorite is a no-op
	require.NoError(t, service.Remove(ctx, identity, "404"))

	list, err = service.List(ctx, identity)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "3"}, list.RecipeIDs)

	check, err := service.Check(ctx, identity, "2")
	require.NoError(t, err)
	assert.False(t, check.IsFavorite)
}

func TestFavorites_ArePerUser(t *testing.T) {
	db, service, identity := setup(t)
	ctx := context.Background()
	other, _ := testutil.CreateAccount(t, db, "other@example.com", domain.RoleUser)

	require.NoError(t, service.Add(ctx, identity, domain.FavoriteRequest{RecipeID: "7"}))

	check, err := service.Check(ctx, other, "7")
	require.NoError(t, err)
	assert.False(t, check.IsFavorite)
}

func TestFavorites_Validation(t *testing.T) {
	_, service, identity := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, service.Add(ctx, identity, domain.FavoriteRequest{RecipeID: "  "}), domain.ErrRecipeIDRequired)
	assert.ErrorIs(t, service.Remove(ctx, identity, ""), domain.ErrRecipeIDRequired)
	_, err := service.Check(ctx, identity, "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	unknown := domain.Identity{AccountID: uuid.New()}
	assert.ErrorIs(t, service.Add(ctx, unknown, domain.FavoriteRequest{RecipeID: "1"}), domain.ErrUserNotFound)
}
