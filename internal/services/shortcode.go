package services

import (
	"crypto/rand"

	"github.com/Brayzonn/shortlink/internal/models"
)

const codeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode возвращает случайный URL-безопасный код длины models.CodeLength.
// Глобальная уникальность не гарантируется: хранилище отвечает за уникальный
// индекс, вызывающий повторяет генерацию при коллизии.
//
// Байты вне наибольшего кратного len(codeCharset) отбрасываются, иначе
// остаток от деления перекашивал бы распределение к началу алфавита.
func GenerateCode() string {
	const limit = byte(256 / len(codeCharset) * len(codeCharset))

	code := make([]byte, 0, models.CodeLength)
	buf := make([]byte, models.CodeLength)
	for len(code) < models.CodeLength {
		_, _ = rand.Read(buf)
		for _, b := range buf {
			if b >= limit {
				continue
			}
			code = append(code, codeCharset[int(b)%len(codeCharset)])
			if len(code) == models.CodeLength {
				break
			}
		}
	}
	return string(code)
}
