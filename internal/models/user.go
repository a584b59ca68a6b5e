package models

import "time"

// User зарегистрированный пользователь. Password хранит bcrypt хеш и
// никогда не сериализуется.
type User struct {
	ID        uint      `json:"ID" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	Username  string    `json:"username" gorm:"size:64;not null"`
	Email     string    `json:"email" gorm:"size:256;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:128;not null"`
}
