package favorite

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/pkg/user"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

type (
	FavoriteService interface {
		List(ctx context.Context, identity domain.Identity) (domain.FavoriteListResponse, error)
		Check(ctx context.Context, identity domain.Identity, recipeID string) (domain.FavoriteCheckResponse, error)
		Add(ctx context.Context, identity domain.Identity, req domain.FavoriteRequest) error
		Remove(ctx context.Context, identity domain.Identity, recipeID string) error
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
		userService        user.UserService
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository, userService user.UserService) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		userService:        userService,
	}
}

func (s *favoriteService) List(ctx context.Context, identity domain.Identity) (domain.FavoriteListResponse, error) {
	userID, err := s.userService.ResolveUserID(ctx, identity)
	if err != nil {
		return domain.FavoriteListResponse{}, err
	}

	recipeIDs, err := s.favoriteRepository.GetFavoriteRecipeIDs(ctx, userID)
	if err != nil {
		log.Errorw("list favorites failed", "user_id", userID, "error", err)
		return domain.FavoriteListResponse{}, domain.ErrInternal
	}
	return domain.FavoriteListResponse{RecipeIDs: recipeIDs}, nil
}

func (s *favoriteService) Check(ctx context.Context, identity domain.Identity, recipeID string) (domain.FavoriteCheckResponse, error) {
	recipeID = strings.TrimSpace(recipeID)
	if recipeID == "" {
		return domain.FavoriteCheckResponse{}, domain.ErrRecipeIDRequired
	}
	userID, err := s.userService.ResolveUserID(ctx, identity)
	if err != nil {
		return domain.FavoriteCheckResponse{}, err
	}

	isFavorite, err := s.favoriteRepository.IsFavorite(ctx, userID, recipeID)
	if err != nil {
		log.Errorw("check favorite failed", "user_id", userID, "error", err)
		return domain.FavoriteCheckResponse{}, domain.ErrInternal
	}
	return domain.FavoriteCheckResponse{IsFavorite: isFavorite}, nil
}

func (s *favoriteService) Add(ctx context.Context, identity domain.Identity, req domain.FavoriteRequest) error {
	recipeID := strings.TrimSpace(req.RecipeID)
	if recipeID == "" {
		return domain.ErrRecipeIDRequired
	}
	userID, err := s.userService.ResolveUserID(ctx, identity)
	if err != nil {
		return err
	}

	if err := s.favoriteRepository.AddFavorite(ctx, userID, recipeID); err != nil {
		log.Errorw("add favorite failed", "user_id", userID, "error", err)
		return domain.ErrInternal
	}
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, identity domain.Identity, recipeID string) error {
	recipeID = strings.TrimSpace(recipeID)
	if recipeID == "" {
		return domain.ErrRecipeIDRequired
	}
	userID, err := s.userService.ResolveUserID(ctx, identity)
	if err != nil {
		return err
	}

	if err := s.favoriteRepository.RemoveFavorite(ctx, userID, recipeID); err != nil {
		log.Errorw("remove favorite failed", "user_id", userID, "error", err)
		return domain.ErrInternal
	}
	return nil
}
