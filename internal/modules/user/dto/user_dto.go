package dto

import (
	"time"

	"github.com/normcontrol/corrector/internal/entity"
)

type CreateUserRequest struct {
	FirstName  string `json:"first_name" binding:"required,max=100"`
	Surname    string `json:"surname" binding:"required,max=100"`
	Patronymic string `json:"patronymic" binding:"required,max=100"`
	Login      string `json:"login" binding:"required,min=3,max=50"`
	Password   string `json:"password" binding:"required,max=255"`

	TgUsername       string `json:"tg_username" binding:"max=100"`
	IsTgSubscribed   bool   `json:"is_tg_subscribed"`
	IsAdmin          bool   `json:"is_admin"`
	Theme            string `json:"theme" binding:"omitempty,oneof=Dark Light"`
	NotificationPush bool   `json:"notification_push"`
}

// UpdateUserRequest applies a sparse merge; the password is replaced
// only when supplied, non-empty and different from the stored value.
type UpdateUserRequest struct {
	FirstName  *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	Surname    *string `json:"surname" binding:"omitempty,min=1,max=100"`
	Patronymic *string `json:"patronymic" binding:"omitempty,min=1,max=100"`
	Password   *string `json:"password" binding:"omitempty,max=255"`

	TgUsername       *string `json:"tg_username" binding:"omitempty,max=100"`
	IsTgSubscribed   *bool   `json:"is_tg_subscribed"`
	IsAdmin          *bool   `json:"is_admin"`
	Theme            *string `json:"theme" binding:"omitempty,oneof=Dark Light"`
	NotificationPush *bool   `json:"notification_push"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *entity.User `json:"user"`
}
