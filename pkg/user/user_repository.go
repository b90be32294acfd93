package user

import (
	"Meal-Planner-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateAccount(ctx context.Context, account *entities.Account, user *entities.User) error
		GetAccountByEmail(ctx context.Context, email string) (*entities.Account, error)
		GetAccountByID(ctx context.Context, accountID uuid.UUID) (*entities.Account, error)
		GetAccounts(ctx context.Context) ([]*entities.Account, error)
		GetUserIDByAccountID(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error)
		EmailExists(ctx context.Context, email string) (bool, error)
		PhoneExists(ctx context.Context, phone string, exceptUserID uuid.UUID) (bool, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		UpdateAccountProfile(ctx context.Context, account *entities.Account, user *entities.User) error
		UpdateAccountStatus(ctx context.Context, accountID uuid.UUID, status string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateAccount inserts the account and its profile together; neither is kept if the other fails.
func (r *userRepository) CreateAccount(ctx context.Context, account *entities.Account, user *entities.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(account).Error; err != nil {
			return err
		}
		user.AccountID = account.ID
		if err := tx.Omit("Account").Create(user).Error; err != nil {
			return err
		}
		account.User = user
		return nil
	})
}

func (r *userRepository) GetAccountByEmail(ctx context.Context, email string) (*entities.Account, error) {
	var account entities.Account
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("email = ?", email).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *userRepository) GetAccountByID(ctx context.Context, accountID uuid.UUID) (*entities.Account, error) {
	var account entities.Account
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", accountID).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *userRepository) GetAccounts(ctx context.Context) ([]*entities.Account, error) {
	var accounts []*entities.Account
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at asc").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *userRepository) GetUserIDByAccountID(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("account_id = ?", accountID).
		First(&user).Error; err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) PhoneExists(ctx context.Context, phone string, exceptUserID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("phone_number = ?", phone)
	if exceptUserID != uuid.Nil {
		query = query.Where("id <> ?", exceptUserID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":         user.Name,
			"last_name":    user.LastName,
			"phone_number": user.PhoneNumber,
			"avatar_url":   user.AvatarURL,
		}).Error
}

func (r *userRepository) UpdateAccountProfile(ctx context.Context, account *entities.Account, user *entities.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Account{}).
			Where("id = ?", account.ID).
			Update("role", account.Role).Error; err != nil {
			return err
		}
		return tx.Model(&entities.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"name":         user.Name,
				"last_name":    user.LastName,
				"phone_number": user.PhoneNumber,
			}).Error
	})
}

func (r *userRepository) UpdateAccountStatus(ctx context.Context, accountID uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Account{}).
		Where("id = ?", accountID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
