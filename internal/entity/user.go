package entity

import (
	"time"
)

const (
	ThemeDark  = "Dark"
	ThemeLight = "Light"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FirstName  string `gorm:"size:100;not null" json:"first_name"`
	Surname    string `gorm:"size:100;not null" json:"surname"`
	Patronymic string `gorm:"size:100;not null" json:"patronymic"`
	Login      string `gorm:"size:50;uniqueIndex;not null" json:"login"`
	// Stored and compared as plaintext for compatibility with existing
	// clients. Never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	TgUsername     string `gorm:"size:100" json:"tg_username"`
	IsTgSubscribed bool   `gorm:"not null;default:false" json:"is_tg_subscribed"`
	IsAdmin        bool   `gorm:"not null;default:false" json:"is_admin"`

	Theme            string `gorm:"size:20;not null;default:'Light'" json:"theme"`
	NotificationPush bool   `gorm:"not null;default:false" json:"notification_push"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Documents []Document `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"documents,omitempty"`
	Reviews   []Review   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"reviews,omitempty"`
}
