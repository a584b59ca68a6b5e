package models

// Префиксы пути короткой ссылки. Зарегистрированные пользователи получают
// ссылки вида /a/{code}, анонимные посетители /b/{code}.
const (
	RegisteredPathPrefix = "/a/"
	AnonymousPathPrefix  = "/b/"
)

// OwnerKey идентифицирует владельца ссылки. Заполнено ровно одно из полей:
// UserID для зарегистрированного пользователя, VisitorUUID для анонимного
// посетителя.
type OwnerKey struct {
	UserID      *uint
	VisitorUUID *string
}

// RegisteredOwner возвращает ключ зарегистрированного пользователя.
func RegisteredOwner(userID uint) OwnerKey {
	return OwnerKey{UserID: &userID}
}

// AnonymousOwner возвращает ключ анонимного посетителя.
func AnonymousOwner(visitorUUID string) OwnerKey {
	return OwnerKey{VisitorUUID: &visitorUUID}
}

func (o OwnerKey) IsAnonymous() bool {
	return o.VisitorUUID != nil
}

// PathPrefix возвращает префикс пути короткой ссылки для данного владельца.
func (o OwnerKey) PathPrefix() string {
	if o.IsAnonymous() {
		return AnonymousPathPrefix
	}
	return RegisteredPathPrefix
}

// Owns проверяет принадлежит ли ссылка данному владельцу.
func (o OwnerKey) Owns(l *Link) bool {
	if o.IsAnonymous() {
		return l.VisitorUUID != nil && *l.VisitorUUID == *o.VisitorUUID
	}
	return l.UserID != nil && o.UserID != nil && *l.UserID == *o.UserID
}
