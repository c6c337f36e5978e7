package identity

import (
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains credentials for a login attempt
type LoginInput struct {
	Username string
	Password string
	IP       string
}

// LoginResult contains the issued tokens and the signed-in user
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput contains the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the new token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput identifies the session being terminated
type LogoutInput struct {
	UserID      uuid.UUID
	TokenID     string // JTI of the access token being revoked
	TokenExpiry time.Time
}

// ChangePasswordInput carries a password change request
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UserInfo is the API view of an account
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Admin       bool       `json:"admin"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserRequest represents a request to create an account
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"max=150"`
	Admin       bool   `json:"admin"`
}

// UpdateUserRequest represents a request to update an account
type UpdateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=150"`
	Active      *bool   `json:"active"`
}

// ToUserInfo converts a domain User to its API view
func ToUserInfo(u *identity.User) UserInfo {
	displayName := u.DisplayName
	if displayName == "" {
		displayName = u.Username
	}
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: displayName,
		Admin:       u.Admin,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToUserInfos converts a slice of users
func ToUserInfos(users []identity.User) []UserInfo {
	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = ToUserInfo(&users[i])
	}
	return infos
}
