package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// UserRole роль зарегистрированного пользователя в токене.
const UserRole = "user"

// UserJWTExpireDuration срок действия токена пользователя.
const UserJWTExpireDuration = 30 * 24 * time.Hour

// VisitorClaims представляет данные JWT токена посетителя.
type VisitorClaims struct {
	jwt.RegisteredClaims
	UUID string
}

// UserClaims представляет данные JWT токена зарегистрированного пользователя.
type UserClaims struct {
	jwt.RegisteredClaims
	Role   string `json:"role"`
	UserID uint   `json:"UserId"`
}

// GenerateVisitorJWT создает JWT токен для посетителя.
//
// Параметры:
//   - uuid: уникальный идентификатор посетителя
//   - expire: срок действия токена
//   - key: ключ для подписи токена
//
// Возвращает:
//   - string: сгенерированный JWT токен
//   - error: ошибка генерации токена
func GenerateVisitorJWT(uuid string, expire time.Duration, key []byte) (string, error) {
	visitorClaims := VisitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
		UUID: uuid,
	}
	token, err := generateJWT(visitorClaims, key)
	if err != nil {
		return "", fmt.Errorf("generating visitor jwt token: %w", err)
	}
	return token, nil
}

// ValidateVisitorJWT проверяет JWT токен посетителя.
//
// Параметры:
//   - tokenString: JWT токен в виде строки
//   - key: ключ для проверки подписи
//
// Возвращает:
//   - *jwt.Token: проверенный токен
//   - error: ошибка проверки (ErrTokenExpired если истек срок действия)
func ValidateVisitorJWT(tokenString string, key []byte) (*jwt.Token, error) {
	token, err := validateJWT(tokenString, new(VisitorClaims), key)
	if err != nil {
		return nil, fmt.Errorf("validating visitor jwt token: %w", err)
	}

	_, ok := token.Claims.(*VisitorClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return token, nil
}

// GenerateUserJWT создает JWT токен зарегистрированного пользователя
// с ролью UserRole и сроком действия UserJWTExpireDuration.
func GenerateUserJWT(userID uint, key []byte) (string, error) {
	userClaims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(UserJWTExpireDuration)),
		},
		Role:   UserRole,
		UserID: userID,
	}
	token, err := generateJWT(userClaims, key)
	if err != nil {
		return "", fmt.Errorf("generating user jwt token: %w", err)
	}
	return token, nil
}

// ValidateUserJWT проверяет JWT токен пользователя и роль в нем.
//
// Возвращает:
//   - *UserClaims: данные токена
//   - error: ошибка проверки (ErrTokenExpired если истек срок действия)
func ValidateUserJWT(tokenString string, key []byte) (*UserClaims, error) {
	token, err := validateJWT(tokenString, new(UserClaims), key)
	if err != nil {
		return nil, fmt.Errorf("validating user jwt token: %w", err)
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if claims.Role != UserRole {
		return nil, ErrWrongRole
	}
	return claims, nil
}

// generateJWT создает JWT токен с указанными данными.
func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating jwt token: %w", err)
	}

	return tokenString, nil
}

// validateJWT проверяет JWT токен.
func validateJWT(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parsing jwt token `%s`: %w", tokenString, err)
	}

	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}

	return token, nil
}
