package domain

import (
	"fmt"
	"mime/multipart"
	"time"
)

const (
	MaxAvatarSize = 5 << 20
)

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessLogout        = "logout successful"
	MessageSuccessCheckAuth     = "authenticated"
	MessageSuccessGetUser       = "success get user data"
	MessageSuccessUpdateUser    = "user data updated successfully"
	MessageSuccessUploadAvatar  = "avatar uploaded successfully"
	MessageSuccessGetAccounts   = "success get accounts"
	MessageSuccessUpdateAccount = "account updated successfully"
	MessageSuccessUpdateStatus  = "account status updated successfully"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetUser       = "failed to get user data"
	MessageFailedUpdateUser    = "failed to update user data"
	MessageFailedUploadAvatar  = "failed to upload avatar"
	MessageFailedGetAccounts   = "failed to get accounts"
	MessageFailedUpdateAccount = "failed to update account"
	MessageFailedUpdateStatus  = "failed to update account status"

	ErrInvalidCredentials   = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	ErrAccountDeactivated   = fmt.Errorf("%w: account is deactivated", ErrForbidden)
	ErrAdminRequired        = fmt.Errorf("%w: admin role required", ErrForbidden)
	ErrEmailTaken           = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrPhoneTaken           = fmt.Errorf("%w: phone number already in use", ErrConflict)
	ErrUserNotFound         = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrAccountNotFound      = fmt.Errorf("%w: account not found", ErrNotFound)
	ErrInvalidRole          = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrInvalidStatus        = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrSelfDeactivation     = fmt.Errorf("%w: admins cannot deactivate their own account", ErrValidation)
	ErrInvalidImageFormat   = fmt.Errorf("%w: invalid image format", ErrValidation)
	ErrImageTooLarge        = fmt.Errorf("%w: image is too large", ErrValidation)
	ErrAvatarStorageMissing = fmt.Errorf("%w: avatar storage is not configured", ErrUpstream)
)

type (
	RegisterRequest struct {
		Email       string `json:"email" validate:"required,email,max=255"`
		Password    string `json:"password" validate:"required,password"`
		Name        string `json:"name" validate:"required,max=100"`
		LastName    string `json:"lastName" validate:"required,max=100"`
		PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	}

	RegisterResponse struct {
		AccountID string `json:"accountId"`
		UserID    string `json:"userId"`
		Email     string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Role  string `json:"role"`
		Token string `json:"-"`
	}

	CheckAuthResponse struct {
		IsAuthenticated bool `json:"isAuthenticated"`
	}

	UserResponse struct {
		AccountID   string    `json:"accountId"`
		UserID      string    `json:"userId"`
		Email       string    `json:"email"`
		Role        string    `json:"role"`
		Status      string    `json:"status"`
		Name        string    `json:"name"`
		LastName    string    `json:"lastName"`
		PhoneNumber string    `json:"phoneNumber"`
		AvatarURL   string    `json:"avatarUrl,omitempty"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	UpdateUserRequest struct {
		Name        string `json:"name" validate:"omitempty,max=100"`
		LastName    string `json:"lastName" validate:"omitempty,max=100"`
		PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
	}

	UploadAvatarRequest struct {
		Image *multipart.FileHeader `form:"image" validate:"required"`
	}

	AdminUpdateAccountRequest struct {
		Name        string `json:"name" validate:"omitempty,max=100"`
		LastName    string `json:"lastName" validate:"omitempty,max=100"`
		PhoneNumber string `json:"phoneNumber" validate:"omitempty,phone"`
		Role        string `json:"role" validate:"omitempty,oneof=user admin"`
	}

	UpdateStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=activated deactivated"`
	}
)
