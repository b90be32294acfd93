package user

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/internal/utils"
	"Meal-Planner-Backend/internal/utils/storage"
	"Meal-Planner-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetProfile(ctx context.Context, identity domain.Identity) (domain.UserResponse, error)
		UpdateProfile(ctx context.Context, identity domain.Identity, req domain.UpdateUserRequest) (domain.UserResponse, error)
		UploadAvatar(ctx context.Context, identity domain.Identity, req domain.UploadAvatarRequest) (domain.UserResponse, error)
		ResolveUserID(ctx context.Context, identity domain.Identity) (uuid.UUID, error)

		ListAccounts(ctx context.Context) ([]domain.UserResponse, error)
		GetAccount(ctx context.Context, accountID string) (domain.UserResponse, error)
		UpdateAccount(ctx context.Context, accountID string, req domain.AdminUpdateAccountRequest) (domain.UserResponse, error)
		SetAccountStatus(ctx context.Context, identity domain.Identity, accountID string, req domain.UpdateStatusRequest) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.PhoneNumber)

	fields := domain.FieldErrors{}
	if violations := utils.PasswordViolations(req.Password); len(violations) > 0 {
		fields.Add("password", violations...)
	}
	if !utils.IsValidPhone(phone) {
		fields.Add("phoneNumber", "phone")
	}
	if !fields.Empty() {
		return domain.RegisterResponse{}, fields
	}

	if err := s.checkUnique(ctx, email, phone, uuid.Nil); err != nil {
		return domain.RegisterResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, fmt.Errorf("%w: hashing password", domain.ErrInternal)
	}

	account := &entities.Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Status:       domain.StatusActivated,
	}
	user := &entities.User{
		Name:        strings.TrimSpace(req.Name),
		LastName:    strings.TrimSpace(req.LastName),
		PhoneNumber: phone,
	}

	if err := s.userRepository.CreateAccount(ctx, account, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if uniqueErr := s.checkUnique(ctx, email, phone, uuid.Nil); uniqueErr != nil {
				return domain.RegisterResponse{}, uniqueErr
			}
			return domain.RegisterResponse{}, domain.ErrEmailTaken
		}
		log.Errorw("register account failed", "error", err)
		return domain.RegisterResponse{}, domain.ErrInternal
	}

	return domain.RegisterResponse{
		AccountID: account.ID.String(),
		UserID:    user.ID.String(),
		Email:     account.Email,
	}, nil
}

func (s *userService) checkUnique(ctx context.Context, email, phone string, exceptUserID uuid.UUID) error {
	if email != "" {
		taken, err := s.userRepository.EmailExists(ctx, email)
		if err != nil {
			log.Errorw("email lookup failed", "error", err)
			return domain.ErrInternal
		}
		if taken {
			return domain.ErrEmailTaken
		}
	}
	if phone != "" {
		taken, err := s.userRepository.PhoneExists(ctx, phone, exceptUserID)
		if err != nil {
			log.Errorw("phone lookup failed", "error", err)
			return domain.ErrInternal
		}
		if taken {
			return domain.ErrPhoneTaken
		}
	}
	return nil
}

// Login checks the password before the account status so a deactivated account is only revealed to its owner.
func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	account, err := s.userRepository.GetAccountByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if isNotFound(err) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		log.Errorw("login lookup failed", "error", err)
		return domain.LoginResponse{}, domain.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	if account.Status == domain.StatusDeactivated {
		return domain.LoginResponse{}, domain.ErrAccountDeactivated
	}

	token, err := s.jwtService.GenerateToken(domain.Identity{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
	})
	if err != nil {
		log.Errorw("signing session token failed", "error", err)
		return domain.LoginResponse{}, domain.ErrInternal
	}

	return domain.LoginResponse{Role: account.Role, Token: token}, nil
}

func (s *userService) loadAccount(ctx context.Context, accountID uuid.UUID) (*entities.Account, error) {
	account, err := s.userRepository.GetAccountByID(ctx, accountID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrAccountNotFound
		}
		log.Errorw("account lookup failed", "account_id", accountID, "error", err)
		return nil, domain.ErrInternal
	}
	if account.User == nil {
		return nil, domain.ErrUserNotFound
	}
	return account, nil
}

func (s *userService) ResolveUserID(ctx context.Context, identity domain.Identity) (uuid.UUID, error) {
	userID, err := s.userRepository.GetUserIDByAccountID(ctx, identity.AccountID)
	if err != nil {
		if isNotFound(err) {
			return uuid.Nil, domain.ErrUserNotFound
		}
		log.Errorw("resolve user failed", "account_id", identity.AccountID, "error", err)
		return uuid.Nil, domain.ErrInternal
	}
	return userID, nil
}

func (s *userService) GetProfile(ctx context.Context, identity domain.Identity) (domain.UserResponse, error) {
	account, err := s.loadAccount(ctx, identity.AccountID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(account), nil
}

func (s *userService) UpdateProfile(ctx context.Context, identity domain.Identity, req domain.UpdateUserRequest) (domain.UserResponse, error) {
	account, err := s.loadAccount(ctx, identity.AccountID)
	if err != nil {
		return domain.UserResponse{}, err
	}

	if err := s.applyProfile(ctx, account.User, req.Name, req.LastName, req.PhoneNumber); err != nil {
		return domain.UserResponse{}, err
	}
	if err := s.userRepository.UpdateUser(ctx, account.User); err != nil {
		return domain.UserResponse{}, s.mapWriteError(err, "update profile")
	}
	return toUserResponse(account), nil
}

func (s *userService) applyProfile(ctx context.Context, user *entities.User, name, lastName, phone string) error {
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if lastName = strings.TrimSpace(lastName); lastName != "" {
		user.LastName = lastName
	}
	if phone = strings.TrimSpace(phone); phone != "" && phone != user.PhoneNumber {
		if !utils.IsValidPhone(phone) {
			fields := domain.FieldErrors{}
			fields.Add("phoneNumber", "phone")
			return fields
		}
		if err := s.checkUnique(ctx, "", phone, user.ID); err != nil {
			return err
		}
		user.PhoneNumber = phone
	}
	return nil
}

func (s *userService) mapWriteError(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrPhoneTaken
	}
	log.Errorw(op+" failed", "error", err)
	return domain.ErrInternal
}

func (s *userService) UploadAvatar(ctx context.Context, identity domain.Identity, req domain.UploadAvatarRequest) (domain.UserResponse, error) {
	if req.Image == nil {
		return domain.UserResponse{}, domain.ErrInvalidImageFormat
	}
	if req.Image.Size > domain.MaxAvatarSize {
		return domain.UserResponse{}, domain.ErrImageTooLarge
	}
	if s.s3 == nil || !s.s3.Enabled() {
		return domain.UserResponse{}, domain.ErrAvatarStorageMissing
	}

	account, err := s.loadAccount(ctx, identity.AccountID)
	if err != nil {
		return domain.UserResponse{}, err
	}

	objectKey, err := s.s3.UploadFile(
		ctx,
		uuid.New().String(),
		req.Image,
		"avatars/"+account.User.ID.String(),
		storage.AllowImage...,
	)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return domain.UserResponse{}, domain.ErrInvalidImageFormat
		}
		log.Errorw("avatar upload failed", "user_id", account.User.ID, "error", err)
		return domain.UserResponse{}, fmt.Errorf("%w: avatar upload failed", domain.ErrUpstream)
	}

	account.User.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.userRepository.UpdateUser(ctx, account.User); err != nil {
		return domain.UserResponse{}, s.mapWriteError(err, "save avatar")
	}
	return toUserResponse(account), nil
}

func (s *userService) ListAccounts(ctx context.Context) ([]domain.UserResponse, error) {
	accounts, err := s.userRepository.GetAccounts(ctx)
	if err != nil {
		log.Errorw("list accounts failed", "error", err)
		return nil, domain.ErrInternal
	}

	result := make([]domain.UserResponse, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, toUserResponse(account))
	}
	return result, nil
}

func (s *userService) GetAccount(ctx context.Context, accountID string) (domain.UserResponse, error) {
	id, err := domain.ParseID(accountID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	account, err := s.loadAccount(ctx, id)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(account), nil
}

func (s *userService) UpdateAccount(ctx context.Context, accountID string, req domain.AdminUpdateAccountRequest) (domain.UserResponse, error) {
	id, err := domain.ParseID(accountID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	account, err := s.loadAccount(ctx, id)
	if err != nil {
		return domain.UserResponse{}, err
	}

	if req.Role != "" {
		if req.Role != domain.RoleUser && req.Role != domain.RoleAdmin {
			return domain.UserResponse{}, domain.ErrInvalidRole
		}
		account.Role = req.Role
	}
	if err := s.applyProfile(ctx, account.User, req.Name, req.LastName, req.PhoneNumber); err != nil {
		return domain.UserResponse{}, err
	}

	if err := s.userRepository.UpdateAccountProfile(ctx, account, account.User); err != nil {
		return domain.UserResponse{}, s.mapWriteError(err, "update account")
	}
	return toUserResponse(account), nil
}

func (s *userService) SetAccountStatus(ctx context.Context, identity domain.Identity, accountID string, req domain.UpdateStatusRequest) (domain.UserResponse, error) {
	id, err := domain.ParseID(accountID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if req.Status != domain.StatusActivated && req.Status != domain.StatusDeactivated {
		return domain.UserResponse{}, domain.ErrInvalidStatus
	}
	if id == identity.AccountID && req.Status == domain.StatusDeactivated {
		return domain.UserResponse{}, domain.ErrSelfDeactivation
	}

	if err := s.userRepository.UpdateAccountStatus(ctx, id, req.Status); err != nil {
		if isNotFound(err) {
			return domain.UserResponse{}, domain.ErrAccountNotFound
		}
		log.Errorw("update account status failed", "account_id", id, "error", err)
		return domain.UserResponse{}, domain.ErrInternal
	}

	account, err := s.loadAccount(ctx, id)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(account), nil
}

func toUserResponse(account *entities.Account) domain.UserResponse {
	res := domain.UserResponse{
		AccountID: account.ID.String(),
		Email:     account.Email,
		Role:      account.Role,
		Status:    account.Status,
		CreatedAt: account.CreatedAt,
	}
	if account.User != nil {
		res.UserID = account.User.ID.String()
		res.Name = account.User.Name
		res.LastName = account.User.LastName
		res.PhoneNumber = account.User.PhoneNumber
		res.AvatarURL = account.User.AvatarURL
	}
	return res
}
