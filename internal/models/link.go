package models

import "time"

// CodeLength длина короткого кода ссылки.
const CodeLength = 8

// MaxFaviconSize максимальный размер сохраняемой иконки в байтах.
const MaxFaviconSize = 50 * 1024

// DefaultFaviconMIME используется когда сервер не сообщил тип иконки.
const DefaultFaviconMIME = "image/x-icon"

// Link структура модели хранения короткой ссылки. Владелец задается либо
// через UserID, либо через VisitorUUID (см. OwnerKey).
type Link struct {
	ID          uint       `json:"ID" gorm:"primarykey"`
	CreatedAt   time.Time  `json:"date"`
	UpdatedAt   time.Time  `json:"-"`
	UserID      *uint      `json:"-" gorm:"index"`
	VisitorUUID *string    `json:"-" gorm:"index"`
	Destination string     `json:"UrlFromUser" gorm:"size:2048;not null"`
	Code        string     `json:"urlCode" gorm:"size:16;uniqueIndex;not null"`
	ShortURL    string     `json:"shortUrl"`
	Clicks      uint64     `json:"clicks" gorm:"not null;default:0"`
	Status      LinkStatus `json:"status" gorm:"size:32"`

	LastStatusCheck *time.Time `json:"lastStatusCheck"`

	FaviconURL         *string    `json:"-"`
	FaviconImage       []byte     `json:"-"`
	FaviconMIME        string     `json:"-" gorm:"size:64"`
	FaviconLastChecked *time.Time `json:"-"`
}

// Owner возвращает ключ владельца ссылки.
func (l *Link) Owner() OwnerKey {
	if l.VisitorUUID != nil {
		return AnonymousOwner(*l.VisitorUUID)
	}
	if l.UserID != nil {
		return RegisteredOwner(*l.UserID)
	}
	return OwnerKey{}
}

// HasFavicon сообщает, сохранена ли у ссылки иконка.
func (l *Link) HasFavicon() bool {
	return len(l.FaviconImage) > 0
}
