package models

// LinkStatus результат последней проверки доступности ссылки.
type LinkStatus string

const (
	StatusActive            LinkStatus = "Active"
	StatusInactive          LinkStatus = "Inactive"
	StatusNotFound          LinkStatus = "NotFound"
	StatusServerError       LinkStatus = "ServerError"
	StatusRestricted        LinkStatus = "Restricted"
	StatusTimeout           LinkStatus = "Timeout"
	StatusRateLimited       LinkStatus = "RateLimited"
	StatusDomainNotFound    LinkStatus = "DomainNotFound"
	StatusConnectionRefused LinkStatus = "ConnectionRefused"
	StatusUnknown           LinkStatus = "Unknown"
)
