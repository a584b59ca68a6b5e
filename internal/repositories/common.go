package repositories

// FaviconUpdate поля частичного обновления иконки ссылки. Пустое значение
// (nil SourceURL, nil Image) фиксирует неудачную попытку: временная метка
// все равно обновляется, чтобы не опрашивать источник на каждом листинге.
type FaviconUpdate struct {
	SourceURL *string
	Image     []byte
	MIMEType  string
}
